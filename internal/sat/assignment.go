package sat

// Assignments holds, for every variable, its current truth value, the
// decision level at which it was set, the clause that implied it (or
// NoClause for a decision or an input unit), and the sign it last held
// (phase saving), which survives unassignment.
type Assignments struct {
	value      []LBool
	level      []int32
	antecedent []ClauseId
	phase      []Sign
	count      int
}

// NewAssignments returns an assignment table for n variables, all
// unassigned, with an arbitrary initial phase.
func NewAssignments(n int) *Assignments {
	a := &Assignments{
		value:      make([]LBool, n),
		level:      make([]int32, n),
		antecedent: make([]ClauseId, n),
		phase:      make([]Sign, n),
	}
	for i := range a.antecedent {
		a.level[i] = -1
		a.antecedent[i] = NoClause
	}
	return a
}

// Value reports the current truth value of literal l.
func (a *Assignments) Value(l Literal) LBool {
	v := a.value[l.Var()]
	if v == LUnknown {
		return LUnknown
	}
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// IsAssigned reports whether v currently has a value.
func (a *Assignments) IsAssigned(v Variable) bool {
	return a.value[v] != LUnknown
}

// LevelOf returns the decision level at which v was assigned, or -1 if it
// is currently unassigned.
func (a *Assignments) LevelOf(v Variable) int {
	return int(a.level[v])
}

// AntecedentOf returns the clause that implied v's current value, or
// NoClause if v was a decision, an input unit, or is unassigned.
func (a *Assignments) AntecedentOf(v Variable) ClauseId {
	return a.antecedent[v]
}

// PhaseOf returns the sign v last held, for phase-saving branch selection.
func (a *Assignments) PhaseOf(v Variable) Sign {
	return a.phase[v]
}

// Count returns the number of currently assigned variables.
func (a *Assignments) Count() int {
	return a.count
}

// NumVars returns the table's capacity.
func (a *Assignments) NumVars() int {
	return len(a.value)
}

// assign records l as true at the given level with the given antecedent.
func (a *Assignments) assign(l Literal, level int, ant ClauseId) {
	v := l.Var()
	if l.IsPositive() {
		a.value[v] = LTrue
	} else {
		a.value[v] = LFalse
	}
	a.level[v] = int32(level)
	a.antecedent[v] = ant
	a.phase[v] = l.Sign()
	a.count++
}

// unassign clears v's value, leaving its saved phase untouched.
func (a *Assignments) unassign(v Variable) {
	a.value[v] = LUnknown
	a.level[v] = -1
	a.antecedent[v] = NoClause
	a.count--
}
