package sat

import "testing"

func TestTrailPropagationOrderDrainsInvariantFirst(t *testing.T) {
	tr := NewTrail(8)
	tr.PushInvariant(PositiveLiteral(0))
	tr.PushInvariant(PositiveLiteral(1))
	tr.NewDecisionLevel()
	tr.PushDecision(PositiveLiteral(2))

	var got []Literal
	for tr.HasPending() {
		got = append(got, tr.Next())
	}

	want := []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}
	if len(got) != len(want) {
		t.Fatalf("drained %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("drain order[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTrailTruncateDecisionsTo(t *testing.T) {
	tr := NewTrail(8)
	tr.PushInvariant(PositiveLiteral(0))

	tr.NewDecisionLevel()
	tr.PushDecision(PositiveLiteral(1))
	tr.PushDecision(PositiveLiteral(2))

	tr.NewDecisionLevel()
	tr.PushDecision(PositiveLiteral(3))

	tr.NewDecisionLevel()
	tr.PushDecision(PositiveLiteral(4))

	undone := tr.TruncateDecisionsTo(1)
	want := []Literal{PositiveLiteral(3), PositiveLiteral(4)}
	if len(undone) != len(want) {
		t.Fatalf("TruncateDecisionsTo(1) undone = %v, want %v", undone, want)
	}
	for i := range want {
		if undone[i] != want[i] {
			t.Errorf("undone[%d] = %v, want %v", i, undone[i], want[i])
		}
	}
	if tr.DecisionLevel() != 1 {
		t.Errorf("DecisionLevel() = %d, want 1", tr.DecisionLevel())
	}
	if tr.DecisionLen() != 2 {
		t.Errorf("DecisionLen() = %d, want 2", tr.DecisionLen())
	}
}

func TestAssignmentsValueTracksVariablePolarity(t *testing.T) {
	a := NewAssignments(2)
	a.assign(NegativeLiteral(0), 1, NoClause)

	if got := a.Value(NegativeLiteral(0)); got != LTrue {
		t.Errorf("Value(NegativeLiteral(0)) = %v, want LTrue", got)
	}
	if got := a.Value(PositiveLiteral(0)); got != LFalse {
		t.Errorf("Value(PositiveLiteral(0)) = %v, want LFalse", got)
	}
	if got := a.Value(PositiveLiteral(1)); got != LUnknown {
		t.Errorf("Value(PositiveLiteral(1)) = %v, want LUnknown", got)
	}

	a.unassign(Variable(0))
	if got := a.Value(PositiveLiteral(0)); got != LUnknown {
		t.Errorf("Value(PositiveLiteral(0)) after unassign = %v, want LUnknown", got)
	}
	if got := a.PhaseOf(Variable(0)); got != Negative {
		t.Errorf("PhaseOf(0) after unassign = %v, want Negative (phase saved)", got)
	}
}
