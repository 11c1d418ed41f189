package sat

import "math/rand"

// rescaleThreshold is the activity ceiling past which every activity
// (and the bump itself) is scaled down together. Scaling preserves the
// heap's relative order, so no reheapify is needed afterward.
const rescaleThreshold = 1e100

// ActivityHeap is an array-backed max-heap over variables, ordered by
// VSIDS activity, with a parallel position table so that an activity bump
// can relocate an already-queued variable in O(log n) instead of forcing a
// linear scan. It also supports picking a uniformly random member, used by
// the solver's epsilon-greedy branching rule.
type ActivityHeap struct {
	heap     []Variable
	pos      []int32 // pos[v] = index of v in heap, or -1 if absent
	activity []float64
	bump     float64
}

// NewActivityHeap returns a heap over n variables, all present with zero
// activity.
func NewActivityHeap(n int) *ActivityHeap {
	h := &ActivityHeap{
		heap:     make([]Variable, n),
		pos:      make([]int32, n),
		activity: make([]float64, n),
		bump:     1.0,
	}
	for i := 0; i < n; i++ {
		h.heap[i] = Variable(i)
		h.pos[i] = int32(i)
	}
	return h
}

// Len reports how many variables are currently queued.
func (h *ActivityHeap) Len() int {
	return len(h.heap)
}

// Contains reports whether v is currently queued.
func (h *ActivityHeap) Contains(v Variable) bool {
	return h.pos[v] != -1
}

// Bump increases v's activity and, if v is queued, restores the heap
// property around its new position.
func (h *ActivityHeap) Bump(v Variable) {
	h.activity[v] += h.bump
	if h.activity[v] > rescaleThreshold {
		h.rescale()
	}
	if h.Contains(v) {
		h.siftUp(int(h.pos[v]))
		h.siftDown(int(h.pos[v]))
	}
}

// Decay increases the bump applied by future Bump calls, which has the
// same relative effect as decaying every existing activity but costs O(1)
// instead of O(n).
func (h *ActivityHeap) Decay() {
	h.bump /= 0.95
}

func (h *ActivityHeap) rescale() {
	const inv = 1e-100
	for i := range h.activity {
		h.activity[i] *= inv
	}
	h.bump *= inv
}

// Push re-inserts v; it is a no-op if v is already queued.
func (h *ActivityHeap) Push(v Variable) {
	if h.Contains(v) {
		return
	}
	h.push(v)
}

func (h *ActivityHeap) push(v Variable) {
	idx := len(h.heap)
	h.heap = append(h.heap, v)
	h.pos[v] = int32(idx)
	h.siftUp(idx)
}

// Pop removes and returns the variable with the highest activity.
func (h *ActivityHeap) Pop() (Variable, bool) {
	if len(h.heap) == 0 {
		return 0, false
	}
	top := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	h.pos[top] = -1
	if last > 0 {
		h.siftDown(0)
	}
	return top, true
}

// Remove takes v out of the heap if it is currently queued; it is a no-op
// otherwise.
func (h *ActivityHeap) Remove(v Variable) {
	if !h.Contains(v) {
		return
	}
	idx := int(h.pos[v])
	last := len(h.heap) - 1
	h.swap(idx, last)
	h.heap = h.heap[:last]
	h.pos[v] = -1
	if idx < last {
		h.siftUp(idx)
		h.siftDown(idx)
	}
}

// Random returns a uniformly random queued variable, using rng.
func (h *ActivityHeap) Random(rng *rand.Rand) (Variable, bool) {
	if len(h.heap) == 0 {
		return 0, false
	}
	return h.heap[rng.Intn(len(h.heap))], true
}

func (h *ActivityHeap) greater(i, j int) bool {
	vi, vj := h.heap[i], h.heap[j]
	if h.activity[vi] != h.activity[vj] {
		return h.activity[vi] > h.activity[vj]
	}
	return vi < vj
}

func (h *ActivityHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i]] = int32(i)
	h.pos[h.heap[j]] = int32(j)
}

func (h *ActivityHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.greater(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *ActivityHeap) siftDown(i int) {
	n := len(h.heap)
	for {
		l, r := 2*i+1, 2*i+2
		largest := i
		if l < n && h.greater(l, largest) {
			largest = l
		}
		if r < n && h.greater(r, largest) {
			largest = r
		}
		if largest == i {
			break
		}
		h.swap(i, largest)
		i = largest
	}
}
