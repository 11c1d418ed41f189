package sat

// WatchIndex maps a literal to the clauses that currently watch it. Entry
// W[l] is consulted exactly when l is falsified, i.e. when its negation is
// pushed onto the trail.
type WatchIndex struct {
	lists [][]ClauseId
}

// NewWatchIndex returns a watch index sized for numVars variables.
func NewWatchIndex(numVars int) *WatchIndex {
	return &WatchIndex{lists: make([][]ClauseId, numVars*2)}
}

// Add registers id as a watcher of l.
func (w *WatchIndex) Add(l Literal, id ClauseId) {
	w.lists[l.Code()] = append(w.lists[l.Code()], id)
}

// ListFor returns the clauses currently watching l, for diagnostics and
// invariant checks; callers must not mutate the result.
func (w *WatchIndex) ListFor(l Literal) []ClauseId {
	return w.lists[l.Code()]
}

// Snapshot copies the current watchers of l into scratch, clears l's list,
// and returns the copy. The caller is expected to reconsider each watcher
// and have it re-register itself via Add before the propagation step
// completes.
func (w *WatchIndex) Snapshot(l Literal, scratch []ClauseId) []ClauseId {
	out := append(scratch[:0], w.lists[l.Code()]...)
	w.lists[l.Code()] = w.lists[l.Code()][:0]
	return out
}

// Restore re-adds a batch of watchers to l's list without going through
// individual Add calls, used to put back watchers that a propagation step
// never got to examine because an earlier one in the same batch produced a
// conflict.
func (w *WatchIndex) Restore(l Literal, ids []ClauseId) {
	w.lists[l.Code()] = append(w.lists[l.Code()], ids...)
}
