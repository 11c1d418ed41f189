package sat

// ClauseKind distinguishes the two physical representations a clause can
// take. Binary clauses never move their watches once created; Many clauses
// keep the two watched literals in positions 0 and 1 and shuffle the
// remaining positions as propagation requires.
type ClauseKind uint8

const (
	KindBinary ClauseKind = iota
	KindMany
)

// UpdateStatus is the outcome of reconsidering a clause after one of its
// watched literals was falsified.
type UpdateStatus uint8

const (
	StatusOk UpdateStatus = iota
	StatusConflict
	StatusImplied
)

// UpdateResult reports what a clause update found. Literal is only
// meaningful when Status is StatusImplied.
type UpdateResult struct {
	Status  UpdateStatus
	Literal Literal
}

var (
	okResult       = UpdateResult{Status: StatusOk}
	conflictResult = UpdateResult{Status: StatusConflict}
)

func impliedResult(l Literal) UpdateResult {
	return UpdateResult{Status: StatusImplied, Literal: l}
}

// Clause is a CNF clause. Two-literal clauses are stored inline (no
// backing slice, no watch movement); clauses of three or more literals
// keep a mutable literal slice whose first two entries are always the
// watched pair.
type Clause struct {
	kind ClauseKind
	a, b Literal // used when kind == KindBinary
	lits []Literal // used when kind == KindMany; lits[0], lits[1] are watched

	learnt bool
	lbd    int
}

// Literals returns the clause's literals. For a Many clause the returned
// slice aliases internal storage and must not be retained across a call
// that might move the clause's watches.
func (c *Clause) Literals() []Literal {
	if c.kind == KindBinary {
		return []Literal{c.a, c.b}
	}
	return c.lits
}

// Len reports the number of literals in the clause.
func (c *Clause) Len() int {
	if c.kind == KindBinary {
		return 2
	}
	return len(c.lits)
}

// IsLearnt reports whether the clause was derived by conflict analysis
// rather than supplied as part of the original formula.
func (c *Clause) IsLearnt() bool {
	return c.learnt
}

// establishBinary registers the clause's permanent watches and evaluates
// it against the current assignment. Binary clauses are always watched on
// both of their literals for their entire lifetime.
func (c *Clause) establishBinary(w *WatchIndex, a *Assignments, id ClauseId) UpdateResult {
	w.Add(c.a, id)
	w.Add(c.b, id)
	va, vb := a.Value(c.a), a.Value(c.b)
	switch {
	case va == LTrue || vb == LTrue:
		return okResult
	case va == LFalse && vb == LFalse:
		return conflictResult
	case va == LFalse:
		return impliedResult(c.b)
	case vb == LFalse:
		return impliedResult(c.a)
	default:
		return okResult
	}
}

// establishMany picks an initial pair of non-false literals to watch,
// scanning left to right, and reports the clause's status under the
// current assignment. It is used once, when the clause is first added to
// the store.
func (c *Clause) establishMany(w *WatchIndex, a *Assignments, id ClauseId) UpdateResult {
	lits := c.lits
	write := 0
	for read := 0; read < len(lits) && write < 2; read++ {
		if a.Value(lits[read]) != LFalse {
			lits[write], lits[read] = lits[read], lits[write]
			write++
		}
	}

	switch write {
	case 2:
		w.Add(lits[0], id)
		w.Add(lits[1], id)
		return okResult
	case 1:
		w.Add(lits[0], id)
		w.Add(lits[1], id)
		if a.Value(lits[0]) == LUnknown {
			return impliedResult(lits[0])
		}
		return okResult
	default:
		w.Add(lits[0], id)
		w.Add(lits[1], id)
		return conflictResult
	}
}

// update reconsiders the clause after `trigger`, one of its two watched
// literals, was just falsified. It searches positions 2.. for a
// replacement watch; when none is found it reports whether the clause is
// now satisfied through its other watch, unit on it, or in conflict. The
// clause always re-registers exactly one watch entry before returning,
// whether that is `trigger` itself (unchanged) or a newly chosen literal.
func (c *Clause) update(w *WatchIndex, a *Assignments, id ClauseId, trigger Literal) UpdateResult {
	if c.kind == KindBinary {
		return c.updateBinary(w, a, id, trigger)
	}
	return c.updateMany(w, a, id, trigger)
}

func (c *Clause) updateBinary(w *WatchIndex, a *Assignments, id ClauseId, trigger Literal) UpdateResult {
	w.Add(trigger, id)
	va, vb := a.Value(c.a), a.Value(c.b)
	switch {
	case va == LTrue || vb == LTrue:
		return okResult
	case va == LFalse && vb == LFalse:
		return conflictResult
	case va == LFalse:
		return impliedResult(c.b)
	default:
		return impliedResult(c.a)
	}
}

func (c *Clause) updateMany(w *WatchIndex, a *Assignments, id ClauseId, trigger Literal) UpdateResult {
	lits := c.lits
	if lits[0] == trigger {
		lits[0], lits[1] = lits[1], lits[0]
	}
	// lits[1] == trigger, currently false.

	if a.Value(lits[0]) == LTrue {
		w.Add(trigger, id)
		return okResult
	}

	for i := 2; i < len(lits); i++ {
		if a.Value(lits[i]) != LFalse {
			lits[1], lits[i] = lits[i], lits[1]
			w.Add(lits[1], id)
			return okResult
		}
	}

	w.Add(trigger, id)
	if a.Value(lits[0]) == LFalse {
		return conflictResult
	}
	return impliedResult(lits[0])
}
