package sat

import (
	"context"
	"testing"
)

func solveClauses(t *testing.T, numVars int, clauses [][]Literal) Outcome {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Logger.SetOutput(testLogWriter{t})
	s := NewSolver(numVars, cfg)
	for _, c := range clauses {
		s.AddClause(c)
	}
	return s.Solve(context.Background())
}

// testLogWriter discards solver diagnostics during tests instead of
// printing them through the default logger output.
type testLogWriter struct{ t *testing.T }

func (testLogWriter) Write(p []byte) (int, error) { return len(p), nil }

func verifySatisfies(t *testing.T, clauses [][]Literal, m Model) {
	t.Helper()
	for _, c := range clauses {
		satisfied := false
		for _, l := range c {
			if (l.IsPositive() && m.Value(l.Var()) == Positive) ||
				(!l.IsPositive() && m.Value(l.Var()) == Negative) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			t.Errorf("clause %v not satisfied by model %v", c, m)
		}
	}
}

func TestSolveUnitClauseIsSatisfiable(t *testing.T) {
	clauses := [][]Literal{{PositiveLiteral(0)}}
	out := solveClauses(t, 1, clauses)
	if out.Result != Sat {
		t.Fatalf("Result = %v, want Sat", out.Result)
	}
	verifySatisfies(t, clauses, out.Model)
}

func TestSolveContradictingUnitsIsUnsat(t *testing.T) {
	clauses := [][]Literal{
		{PositiveLiteral(0)},
		{NegativeLiteral(0)},
	}
	out := solveClauses(t, 1, clauses)
	if out.Result != Unsat {
		t.Fatalf("Result = %v, want Unsat", out.Result)
	}
}

func TestSolveRequiresBranchingAndPropagation(t *testing.T) {
	// (x0 v x1) ^ (!x0 v x2) ^ (!x1 v !x2)
	clauses := [][]Literal{
		{PositiveLiteral(0), PositiveLiteral(1)},
		{NegativeLiteral(0), PositiveLiteral(2)},
		{NegativeLiteral(1), NegativeLiteral(2)},
	}
	out := solveClauses(t, 3, clauses)
	if out.Result != Sat {
		t.Fatalf("Result = %v, want Sat", out.Result)
	}
	verifySatisfies(t, clauses, out.Model)
}

func TestSolvePigeonholeTwoIntoOneIsUnsat(t *testing.T) {
	// Two pigeons (x0, x1), one hole: at least one of each must be true,
	// but they cannot both be true (they'd share the hole).
	clauses := [][]Literal{
		{PositiveLiteral(0)},
		{PositiveLiteral(1)},
		{NegativeLiteral(0), NegativeLiteral(1)},
	}
	out := solveClauses(t, 2, clauses)
	if out.Result != Unsat {
		t.Fatalf("Result = %v, want Unsat", out.Result)
	}
}

func TestSolveRequiresConflictDrivenLearning(t *testing.T) {
	// A small unsatisfiable instance with no unit clause, so AddClause
	// cannot refute it: every combination of x0 and x1 is forbidden by one
	// clause. The solver has to decide, reach a conflict at decision level
	// 1, learn a unit clause, backjump to level 0 and conflict there.
	clauses := [][]Literal{
		{PositiveLiteral(0), PositiveLiteral(1)},
		{PositiveLiteral(0), NegativeLiteral(1)},
		{NegativeLiteral(0), PositiveLiteral(1)},
		{NegativeLiteral(0), NegativeLiteral(1)},
	}
	out := solveClauses(t, 2, clauses)
	if out.Result != Unsat {
		t.Fatalf("Result = %v, want Unsat", out.Result)
	}
}

func TestSolveMaxConflictsReturnsUnknown(t *testing.T) {
	// A small satisfiable formula. The conflict budget is checked before
	// the first propagation, so capping conflicts at zero must yield
	// Unknown.
	clauses := [][]Literal{
		{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)},
		{NegativeLiteral(0), PositiveLiteral(1), NegativeLiteral(2)},
		{PositiveLiteral(0), NegativeLiteral(1), PositiveLiteral(2)},
		{NegativeLiteral(0), NegativeLiteral(1), NegativeLiteral(2)},
		{PositiveLiteral(0), PositiveLiteral(1), NegativeLiteral(2)},
		{NegativeLiteral(0), NegativeLiteral(1), PositiveLiteral(2)},
	}
	cfg := DefaultConfig()
	cfg.Logger.SetOutput(testLogWriter{t})
	cfg.MaxConflicts = 0
	s := NewSolver(3, cfg)
	for _, c := range clauses {
		s.AddClause(c)
	}
	out := s.Solve(context.Background())
	if out.Result != Unknown {
		t.Fatalf("Result = %v, want Unknown", out.Result)
	}
}

func TestLearnEnqueuesImpliedLiteralAtCurrentLevelNotInvariant(t *testing.T) {
	// Simulates having backjumped to decision level 2 (rather than 0) and
	// then learning a clause that is immediately unit there. The implied
	// literal must land in the trail's decision segment at level 2, not be
	// mislabeled a level-0 invariant, so that backtracking below level 2
	// later undoes it.
	cfg := DefaultConfig()
	cfg.Logger.SetOutput(testLogWriter{t})
	s := NewSolver(3, cfg)

	s.trail.NewDecisionLevel()
	s.asg.assign(PositiveLiteral(1), s.trail.DecisionLevel(), NoClause)
	s.trail.PushDecision(PositiveLiteral(1))

	s.trail.NewDecisionLevel()
	s.asg.assign(PositiveLiteral(2), s.trail.DecisionLevel(), NoClause)
	s.trail.PushDecision(PositiveLiteral(2))

	if s.trail.DecisionLevel() != 2 {
		t.Fatalf("DecisionLevel() = %d, want 2", s.trail.DecisionLevel())
	}

	// {x0 v !x1} is unit on x0 once x1 is true, which it is at level 2.
	s.learn([]Literal{PositiveLiteral(0), NegativeLiteral(1)})

	if !s.asg.IsAssigned(Variable(0)) {
		t.Fatalf("variable 0 was not assigned by learn()")
	}
	if lvl := s.asg.LevelOf(Variable(0)); lvl != 2 {
		t.Fatalf("LevelOf(0) = %d, want 2 (the current decision level), not a level-0 invariant", lvl)
	}

	// Backtracking below level 2 must undo it, which only happens if it
	// landed in the trail's decision segment rather than its invariant one.
	s.backtrackTo(1)
	if s.asg.IsAssigned(Variable(0)) {
		t.Fatalf("variable 0 is still assigned after backtracking below its level; it was wrongly recorded as a level-0 invariant")
	}
	if !s.heap.Contains(Variable(0)) {
		t.Fatalf("variable 0 was not returned to the activity heap after backtracking")
	}
}
