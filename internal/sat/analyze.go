package sat

// conflictAnalyzer turns a conflicting clause into a learned clause and a
// backjump level via first-UIP resolution. It keeps its scratch state
// (seen-set and literal buffer) across calls so that analysis does not
// allocate on the hot path.
type conflictAnalyzer struct {
	seen *VarSet
	buf  []Literal
}

func newConflictAnalyzer(numVars int) *conflictAnalyzer {
	return &conflictAnalyzer{seen: NewVarSet(numVars)}
}

// analyze resolves the conflicting clause back through the trail to its
// first unique implication point, returning the learned clause (with the
// UIP's negation at position 0) and the level to backjump to.
func (an *conflictAnalyzer) analyze(trail *Trail, assignments *Assignments, store *ClauseStore, conflict ClauseId) ([]Literal, int) {
	level := trail.DecisionLevel()
	an.seen.Clear()
	an.buf = append(an.buf[:0], 0) // placeholder for the UIP

	k := 0
	backjump := 0

	considerLiteral := func(lit Literal) {
		v := lit.Var()
		if an.seen.Contains(v) {
			return
		}
		an.seen.Add(v)
		lvl := assignments.LevelOf(v)
		if lvl == level {
			k++
			return
		}
		an.buf = append(an.buf, lit)
		if lvl > backjump {
			backjump = lvl
		}
	}

	curClause := conflict
	haveExclusion := false
	var exclude Variable

	idx := trail.DecisionLen() - 1
	var uip Literal

	for {
		for _, lit := range store.Get(curClause).Literals() {
			if haveExclusion && lit.Var() == exclude {
				continue
			}
			considerLiteral(lit)
		}
		if k == 0 {
			panicInvariant("conflict analysis found no literal at the current decision level")
		}

		var t Literal
		for {
			if idx < 0 {
				panicInvariant("conflict analysis walked off the trail before reaching the UIP")
			}
			t = trail.DecisionAt(idx)
			idx--
			if an.seen.Contains(t.Var()) {
				break
			}
		}

		k--
		if k == 0 {
			uip = t
			break
		}

		ant := assignments.AntecedentOf(t.Var())
		if ant == NoClause {
			panicInvariant("conflict analysis reached a decision literal before the UIP")
		}
		curClause = ant
		haveExclusion = true
		exclude = t.Var()
	}

	an.buf[0] = uip.Opposite()
	learned := append([]Literal(nil), an.buf...)
	return learned, backjump
}
