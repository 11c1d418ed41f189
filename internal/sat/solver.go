package sat

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Result is the three-way outcome of a solve attempt.
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Model records the truth value the solver found for every variable, in
// the 0-based internal numbering.
type Model []Sign

// Value returns the sign assigned to v.
func (m Model) Value(v Variable) Sign {
	return m[v]
}

// Outcome is the result of a Solve call together with a model when the
// formula is satisfiable.
type Outcome struct {
	Result Result
	Model  Model
	Stats  SearchStats
}

// SearchStats accumulates counters describing one Solve run, independent
// of its outcome. They are surfaced to callers for diagnostics; the search
// itself reads only Conflicts, to enforce Config.MaxConflicts.
type SearchStats struct {
	Decisions     int64
	Propagations  int64
	Conflicts     int64
	Restarts      int64
	LearnedClauses int64
	Elapsed       time.Duration
}

// Config holds the tunables a caller may set before solving. DefaultConfig
// returns a Config with every field set; NewSolver uses the fields as
// given and fills in only a nil Logger.
type Config struct {
	// RandomBranchProb is the probability, per decision, of picking a
	// uniformly random unassigned variable instead of the VSIDS maximum.
	RandomBranchProb float64
	// RestartUnit scales the Luby sequence into a conflict-count
	// threshold: the solver restarts after RestartUnit*luby.Next()
	// conflicts since the last restart.
	RestartUnit int
	// Seed drives the random source used for epsilon-greedy branching, so
	// that two runs over the same input and Seed make identical choices.
	Seed int64
	// MaxConflicts aborts the search once this many conflicts have been
	// seen, returning Unknown. A negative value means unbounded.
	MaxConflicts int64
	// Logger receives structured diagnostics. It is never used for the
	// solver's result, which callers read off the returned Outcome.
	Logger *logrus.Logger
}

// DefaultConfig returns the standard configuration. Callers that change
// only some fields should start from it, since NewSolver does not replace
// zero-valued fields other than Logger.
func DefaultConfig() Config {
	return Config{
		RandomBranchProb: 0.02,
		RestartUnit:      100,
		Seed:             1,
		MaxConflicts:     -1,
		Logger:           logrus.StandardLogger(),
	}
}

// Solver is a CDCL solver over a fixed set of variables, built from
// 2-watched-literal propagation, first-UIP conflict-driven learning,
// VSIDS branching with phase saving, and Luby-sequence restarts.
type Solver struct {
	cfg Config
	log *logrus.Entry

	store *ClauseStore
	watch *WatchIndex
	trail *Trail
	asg   *Assignments
	heap  *ActivityHeap
	luby  *Luby
	an    *conflictAnalyzer
	rng   *rand.Rand

	numVars int
	unsat   bool

	conflictsSinceRestart int
	restartThreshold      int

	propScratch []ClauseId

	stats SearchStats
}

// NewSolver returns a solver over numVars variables (0-based internally;
// callers speaking DIMACS translate at the boundary) configured with cfg.
func NewSolver(numVars int, cfg Config) *Solver {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	s := &Solver{
		cfg:     cfg,
		log:     cfg.Logger.WithField("component", "sat"),
		store:   NewClauseStore(numVars * 2),
		watch:   NewWatchIndex(numVars),
		trail:   NewTrail(numVars),
		asg:     NewAssignments(numVars),
		heap:    NewActivityHeap(numVars),
		luby:    NewLuby(),
		an:      newConflictAnalyzer(numVars),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		numVars: numVars,
	}
	s.restartThreshold = cfg.RestartUnit * s.luby.Next()
	return s
}

// NumVariables reports how many variables the solver was built over.
func (s *Solver) NumVariables() int {
	return s.numVars
}

// AddClause adds a clause of the original formula. Tautologies and
// clauses already satisfied at level 0 are silently dropped; clauses with
// a literal already false at level 0 have that literal removed. A clause
// that simplifies to empty marks the instance unsatisfiable; a clause that
// simplifies to a single literal is asserted immediately as a level-0
// invariant.
func (s *Solver) AddClause(lits []Literal) {
	if s.unsat {
		return
	}
	simplified, skip := simplifyInputClause(lits, s.asg)
	if skip {
		return
	}
	switch len(simplified) {
	case 0:
		s.unsat = true
	case 1:
		if !s.assertInvariant(simplified[0], NoClause) {
			s.unsat = true
		}
	default:
		_, res := s.store.Add(simplified, false, s.watch, s.asg)
		s.applyAddResult(res)
	}
}

// applyAddResult records whatever store.Add's establishment pass found.
// StatusImplied always carries a literal that is currently unassigned (the
// clause logic only reports it once every other literal is settled), so it
// is always safe to enqueue at the trail's current decision level via
// enqueuePropagated — level 0 when called from AddClause (before any
// decision has been made) and the post-backjump level when called from
// learn (where the learned clause is unit by construction at that level).
func (s *Solver) applyAddResult(res UpdateResult) {
	switch res.Status {
	case StatusConflict:
		s.unsat = true
	case StatusImplied:
		lastID := ClauseId(s.store.Len() - 1)
		s.enqueuePropagated(res.Literal, lastID)
	}
}

// assertInvariant pushes l onto the level-0 segment of the trail. It
// reports false if l's variable already carries the opposite value at
// level 0, which makes the instance unsatisfiable.
func (s *Solver) assertInvariant(l Literal, ant ClauseId) bool {
	v := s.asg.Value(l)
	if v == LTrue {
		return true
	}
	if v == LFalse {
		return false
	}
	s.asg.assign(l, 0, ant)
	s.trail.PushInvariant(l)
	return true
}

func simplifyInputClause(raw []Literal, a *Assignments) (lits []Literal, skip bool) {
	seen := make(map[Literal]bool, len(raw))
	out := make([]Literal, 0, len(raw))
	for _, l := range raw {
		if seen[l.Opposite()] {
			return nil, true
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		switch a.Value(l) {
		case LTrue:
			return nil, true
		case LFalse:
			continue
		default:
			out = append(out, l)
		}
	}
	return out, false
}

// Solve runs the search until it reaches a verdict, ctx is cancelled, or
// (through ctx's deadline) a caller-imposed timeout elapses. It may be
// called at most once per Solver.
func (s *Solver) Solve(ctx context.Context) (out Outcome) {
	start := time.Now()
	defer func() {
		s.stats.Elapsed = time.Since(start)
		out.Stats.Elapsed = s.stats.Elapsed
	}()

	if s.unsat {
		return Outcome{Result: Unsat, Stats: s.stats}
	}

	checkEvery := 1000
	sinceCheck := 0

	for {
		sinceCheck++
		if sinceCheck >= checkEvery {
			sinceCheck = 0
			if err := ctx.Err(); err != nil {
				s.log.WithError(err).Debug("search cancelled before reaching a verdict")
				return Outcome{Result: Unknown, Stats: s.stats}
			}
		}
		if s.cfg.MaxConflicts >= 0 && s.stats.Conflicts >= s.cfg.MaxConflicts {
			s.log.Debug("search abandoned after reaching the configured conflict budget")
			return Outcome{Result: Unknown, Stats: s.stats}
		}

		conflict, hasConflict := s.propagateAll()
		if !hasConflict {
			if s.asg.Count() == s.numVars {
				model := s.buildModel()
				s.log.WithFields(logrus.Fields{
					"decisions":   s.stats.Decisions,
					"conflicts":   s.stats.Conflicts,
					"restarts":    s.stats.Restarts,
				}).Debug("search found a satisfying assignment")
				return Outcome{Result: Sat, Model: model, Stats: s.stats}
			}
			s.branch()
			continue
		}

		s.stats.Conflicts++
		if s.trail.DecisionLevel() == 0 {
			s.log.Debug("conflict at decision level 0, formula is unsatisfiable")
			return Outcome{Result: Unsat, Stats: s.stats}
		}

		s.heap.Decay()

		restart := false
		s.conflictsSinceRestart++
		if s.conflictsSinceRestart >= s.restartThreshold {
			restart = true
			s.conflictsSinceRestart = 0
			s.restartThreshold = s.cfg.RestartUnit * s.luby.Next()
			s.stats.Restarts++
		}

		learned, jump := s.an.analyze(s.trail, s.asg, s.store, conflict)
		if restart {
			jump = 0
		}
		s.backtrackTo(jump)
		s.learn(learned)
	}
}

// propagateAll drains the trail, applying unit propagation, until either
// it is exhausted (no conflict) or some clause's watches both go false
// (conflict, clause id returned).
func (s *Solver) propagateAll() (ClauseId, bool) {
	for s.trail.HasPending() {
		s.stats.Propagations++
		l := s.trail.Next()
		notL := l.Opposite()

		batch := s.watch.Snapshot(notL, s.propScratch)
		s.propScratch = batch

		for i := 0; i < len(batch); i++ {
			id := batch[i]
			res := s.store.Get(id).update(s.watch, s.asg, id, notL)
			switch res.Status {
			case StatusOk:
				// already re-registered by update()
			case StatusImplied:
				s.enqueuePropagated(res.Literal, id)
			case StatusConflict:
				s.watch.Restore(notL, batch[i+1:])
				return id, true
			}
		}
	}
	return NoClause, false
}

// enqueuePropagated records a literal implied by propagation. The literal
// is guaranteed unassigned at the moment its owning clause decided to
// imply it, so this never discovers a conflict by itself.
func (s *Solver) enqueuePropagated(l Literal, ant ClauseId) {
	level := s.trail.DecisionLevel()
	s.asg.assign(l, level, ant)
	if level == 0 {
		s.trail.PushInvariant(l)
	} else {
		s.trail.PushDecision(l)
	}
}

// branch picks an unassigned variable and a polarity for it, opens a new
// decision level, and pushes the literal onto the trail. Variables popped
// or sampled off the heap while already assigned (because propagation
// settled them after they were queued) are discarded rather than
// reinserted; they return to the heap only when backtracking unassigns
// them again.
func (s *Solver) branch() {
	var v Variable
	var ok bool

	if s.rng.Float64() < s.cfg.RandomBranchProb {
		for !ok {
			rv, rok := s.heap.Random(s.rng)
			if !rok {
				break
			}
			s.heap.Remove(rv)
			if !s.asg.IsAssigned(rv) {
				v, ok = rv, true
			}
		}
	}
	for !ok {
		v, ok = s.heap.Pop()
		if !ok {
			panicInvariant("branch called with no unassigned variables and no pending propagation")
		}
		if s.asg.IsAssigned(v) {
			ok = false
		}
	}

	sign := s.asg.PhaseOf(v)
	l := NewLiteral(v, sign)

	s.stats.Decisions++
	s.trail.NewDecisionLevel()
	s.asg.assign(l, s.trail.DecisionLevel(), NoClause)
	s.trail.PushDecision(l)
}

// backtrackTo undoes every decision above level, returning each variable
// it unassigns to the activity heap.
func (s *Solver) backtrackTo(level int) {
	undone := s.trail.TruncateDecisionsTo(level)
	for i := len(undone) - 1; i >= 0; i-- {
		v := undone[i].Var()
		s.asg.unassign(v)
		s.heap.Push(v)
	}
}

// learn stores a clause produced by conflict analysis and applies
// whatever it immediately implies. A unit learned clause is asserted as a
// level-0 invariant instead of being added to the clause store.
func (s *Solver) learn(lits []Literal) {
	s.stats.LearnedClauses++
	if len(lits) == 1 {
		if !s.assertInvariant(lits[0], NoClause) {
			s.unsat = true
		}
		return
	}

	lbd := s.computeLBD(lits)
	id, res := s.store.Add(lits, true, s.watch, s.asg)
	s.store.Get(id).lbd = lbd
	s.log.WithFields(logrus.Fields{
		"size": len(lits),
		"lbd":  lbd,
	}).Debug("learned a new clause")
	s.applyAddResult(res)
}

// computeLBD returns the number of distinct decision levels represented
// among lits, a diagnostic-only measure of a learned clause's quality; it
// never influences search decisions since this solver performs no
// clause-database reduction.
func (s *Solver) computeLBD(lits []Literal) int {
	levels := make(map[int]struct{}, len(lits))
	for _, l := range lits {
		levels[s.asg.LevelOf(l.Var())] = struct{}{}
	}
	return len(levels)
}

func (s *Solver) buildModel() Model {
	m := make(Model, s.numVars)
	for v := 0; v < s.numVars; v++ {
		if s.asg.IsAssigned(Variable(v)) {
			m[v] = s.asg.PhaseOf(Variable(v))
		} else {
			m[v] = Positive
		}
	}
	return m
}
