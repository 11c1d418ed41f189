package sat

import "fmt"

// InternalInvariantViolation signals that the solver observed a state its
// own invariants rule out, e.g. a conflict-analysis walk running off the
// trail or a clause reaching the store with fewer than two literals.
// Library callers see this as a panic rather than a returned error, since
// by definition it means a bug rather than a bad input.
type InternalInvariantViolation struct {
	Msg string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("sat: internal invariant violation: %s", e.Msg)
}

func panicInvariant(msg string) {
	panic(&InternalInvariantViolation{Msg: msg})
}
