package pq

import (
	"container/heap"

	"github.com/axt/topnselect/internal/order"
	"github.com/axt/topnselect/internal/quickselect"
)

// HeapSelector keeps the best topN items in a BoundedHeap. Memory is O(topN)
// regardless of how many items are sunk.
type HeapSelector struct {
	heap *BoundedHeap
}

// NewHeapSelector creates a selector keeping topN items.
func NewHeapSelector(topN int) *HeapSelector {
	return &HeapSelector{heap: NewBoundedHeap(topN)}
}

// Sink offers one item to the heap.
func (s *HeapSelector) Sink(id int32, score float64) {
	s.heap.Push(id, score)
}

// TopN returns the kept identifiers in heap order, which is not rank order.
// Asking for fewer than are kept selects the best n of them.
func (s *HeapSelector) TopN(n int) []int32 {
	if n <= 0 || s.heap.Len() == 0 {
		return []int32{}
	}
	ids := s.heap.IDs()
	if n >= len(ids) {
		return ids
	}
	scores := s.heap.Scores()
	if err := quickselect.Narrow(scores, ids, n, -1, quickselect.PivotMiddle); err != nil {
		panic(err)
	}
	return ids[:n]
}

// Heap exposes the underlying heap.
func (s *HeapSelector) Heap() *BoundedHeap { return s.heap }

type entry struct {
	id    int32
	score float64
}

// entryHeap orders entries best first under order.Better.
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	return order.Better(h[i].id, h[i].score, h[j].id, h[j].score)
}
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// BaselineHeap inserts every sunk item into an unbounded priority queue and
// answers queries by popping. Memory is O(M) and each Sink costs O(log M).
//
// It is the only selector whose result is in rank order. Queries consume the
// popped items: later queries and sinks start from what is left.
type BaselineHeap struct {
	items entryHeap
}

// NewBaselineHeap creates an empty baseline selector with room for
// initialCapacity items before the queue reallocates.
func NewBaselineHeap(initialCapacity int) *BaselineHeap {
	return &BaselineHeap{items: make(entryHeap, 0, max(initialCapacity, 0))}
}

// Sink pushes one item.
func (b *BaselineHeap) Sink(id int32, score float64) {
	heap.Push(&b.items, entry{id: id, score: score})
}

// TopN pops up to n items and returns their identifiers best first.
func (b *BaselineHeap) TopN(n int) []int32 {
	n = min(max(n, 0), b.items.Len())
	out := make([]int32, n)
	for i := range n {
		out[i] = heap.Pop(&b.items).(entry).id
	}
	return out
}

// Len returns the number of items still queued.
func (b *BaselineHeap) Len() int { return b.items.Len() }
