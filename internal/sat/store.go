package sat

// ClauseId is a stable index into a ClauseStore. Clauses are never moved or
// freed once added, so a ClauseId remains valid (and meaningful as an
// antecedent) for the lifetime of the solver.
type ClauseId int32

// NoClause is the antecedent of a decision literal or of a variable that
// has never been assigned.
const NoClause ClauseId = -1

// ClauseStore owns every clause known to the solver, original and learnt
// alike, in one append-only slice indexed by ClauseId.
type ClauseStore struct {
	clauses []Clause
}

// NewClauseStore returns an empty store with room for capacityHint clauses.
func NewClauseStore(capacityHint int) *ClauseStore {
	return &ClauseStore{clauses: make([]Clause, 0, capacityHint)}
}

// Len reports how many clauses the store holds.
func (st *ClauseStore) Len() int {
	return len(st.clauses)
}

// Get returns a pointer to the clause identified by id. The pointer is
// valid until the next Add call, since Add may grow the backing slice.
func (st *ClauseStore) Get(id ClauseId) *Clause {
	return &st.clauses[id]
}

// Add stores a clause of two or more literals, registers its initial
// watches, and evaluates it against the current assignment. lits must
// already satisfy the store's invariants: no duplicate variables, no
// tautologies, length at least two. Learnt clauses are expected to carry
// their asserting literal at position 0.
func (st *ClauseStore) Add(lits []Literal, learnt bool, w *WatchIndex, a *Assignments) (ClauseId, UpdateResult) {
	if len(lits) < 2 {
		panicInvariant("clause store received a clause with fewer than two literals")
	}

	c := Clause{learnt: learnt}
	if len(lits) == 2 {
		c.kind = KindBinary
		c.a, c.b = lits[0], lits[1]
	} else {
		c.kind = KindMany
		c.lits = append([]Literal(nil), lits...)
		if learnt {
			// The asserting literal already sits at position 0; move the
			// literal from the highest decision level into position 1 so
			// the clause watches the most recently falsified literal and
			// fires as soon as the solver backjumps into its level.
			maxLevel, pos := -1, 1
			for i := 1; i < len(c.lits); i++ {
				if lvl := a.LevelOf(c.lits[i].Var()); lvl > maxLevel {
					maxLevel, pos = lvl, i
				}
			}
			c.lits[1], c.lits[pos] = c.lits[pos], c.lits[1]
		}
	}

	id := ClauseId(len(st.clauses))
	st.clauses = append(st.clauses, c)
	cp := &st.clauses[id]

	var res UpdateResult
	if cp.kind == KindBinary {
		res = cp.establishBinary(w, a, id)
	} else {
		res = cp.establishMany(w, a, id)
	}
	return id, res
}
