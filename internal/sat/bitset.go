package sat

// VarSet is a reset-able set of variable ids, backed by a per-variable
// timestamp so that Clear is O(1) regardless of how many members were added.
// The conflict analyzer's seen-set reuses one of these across solver
// iterations instead of allocating a fresh map.
type VarSet struct {
	addedAt   []uint32
	timestamp uint32
}

// NewVarSet returns a VarSet with capacity for n variables.
func NewVarSet(n int) *VarSet {
	return &VarSet{addedAt: make([]uint32, n)}
}

// Contains reports whether v is currently a member.
func (vs *VarSet) Contains(v Variable) bool {
	return vs.addedAt[v] == vs.timestamp && vs.timestamp != 0
}

// Add inserts v into the set.
func (vs *VarSet) Add(v Variable) {
	vs.addedAt[v] = vs.timestamp
}

// Clear empties the set in O(1).
func (vs *VarSet) Clear() {
	vs.timestamp++
	if vs.timestamp == 0 { // wrapped around
		vs.timestamp = 1
		for i := range vs.addedAt {
			vs.addedAt[i] = 0
		}
	}
}
