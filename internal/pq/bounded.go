// Package pq implements the heap-based selectors: a fixed-capacity heap that
// evicts its weakest item, and an unbounded baseline built on container/heap.
package pq

import (
	topnerrors "github.com/axt/topnselect/errors"
	"github.com/axt/topnselect/internal/order"
)

// BoundedHeap keeps the best Cap() items pushed into it.
//
// It is an index-based binary heap over two parallel arrays. The order is
// inverted relative to "better": the root is always the weakest kept item, so
// a candidate that does not beat the root is rejected in O(1) and a winner
// replaces it in O(log K).
type BoundedHeap struct {
	ids    []int32
	scores []float64
}

// NewBoundedHeap creates an empty heap holding at most capacity items.
func NewBoundedHeap(capacity int) *BoundedHeap {
	capacity = max(capacity, 0)
	return &BoundedHeap{
		ids:    make([]int32, 0, capacity),
		scores: make([]float64, 0, capacity),
	}
}

// Len returns the number of kept items.
func (h *BoundedHeap) Len() int { return len(h.ids) }

// Cap returns the capacity fixed at construction.
func (h *BoundedHeap) Cap() int { return cap(h.ids) }

// Push offers an item and reports whether it was kept.
func (h *BoundedHeap) Push(id int32, score float64) bool {
	if cap(h.ids) == 0 {
		return false
	}
	if len(h.ids) == cap(h.ids) {
		if !order.Better(id, score, h.ids[0], h.scores[0]) {
			return false
		}
		h.removeRoot()
	}
	h.ids = append(h.ids, id)
	h.scores = append(h.scores, score)
	h.up(len(h.ids) - 1)
	return true
}

// Peek returns the weakest kept item.
func (h *BoundedHeap) Peek() (int32, float64, error) {
	if len(h.ids) == 0 {
		return 0, 0, topnerrors.ErrEmptyStructure
	}
	return h.ids[0], h.scores[0], nil
}

// RemoveRoot drops the weakest kept item.
func (h *BoundedHeap) RemoveRoot() error {
	if len(h.ids) == 0 {
		return topnerrors.ErrEmptyStructure
	}
	h.removeRoot()
	return nil
}

func (h *BoundedHeap) removeRoot() {
	n := len(h.ids) - 1
	h.swap(0, n)
	h.ids = h.ids[:n]
	h.scores = h.scores[:n]
	h.down(0, n)
}

// IDs returns a copy of the kept identifiers in heap order.
func (h *BoundedHeap) IDs() []int32 {
	out := make([]int32, len(h.ids))
	copy(out, h.ids)
	return out
}

// Scores returns a copy of the kept scores in heap order.
func (h *BoundedHeap) Scores() []float64 {
	out := make([]float64, len(h.scores))
	copy(out, h.scores)
	return out
}

func (h *BoundedHeap) swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
	h.scores[i], h.scores[j] = h.scores[j], h.scores[i]
}

// less reports whether item i belongs above item j, i.e. i ranks after j.
func (h *BoundedHeap) less(i, j int) bool {
	return order.Better(h.ids[j], h.scores[j], h.ids[i], h.scores[i])
}

func (h *BoundedHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *BoundedHeap) down(i, n int) {
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
}
