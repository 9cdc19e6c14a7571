package quickselect

import "math"

const (
	// DefaultLoadFactor sizes the fixed buffer relative to N.
	DefaultLoadFactor = 1.5

	// DefaultMinCapacity is the smallest fixed buffer ever allocated.
	DefaultMinCapacity = 10
)

// FixedCapacity returns the buffer size used for a fixed selector keeping
// topN items: max(minCapacity, floor(loadFactor*topN)), and never less than
// topN+1 so a compaction always frees at least one slot. The scaled size is
// clamped to math.MaxInt32, the largest id count a buffer can address.
func FixedCapacity(topN int, loadFactor float64, minCapacity int) int {
	scaled := min(loadFactor*float64(topN), math.MaxInt32)
	c := max(minCapacity, int(scaled))
	return max(c, topN+1)
}

// FixedSelector keeps a fixed-size buffer. When the buffer fills up it is
// compacted: the narrowing loop moves the current top N to the front and the
// write cursor drops back to N, discarding the rest. The O(capacity) cost of
// a compaction is spread over the capacity-N appends that follow it.
type FixedSelector struct {
	pivot  Pivot
	topN   int
	ids    []int32
	scores []float64

	cursor      int // next write position, never above len(ids)
	compactions int
}

// NewFixedSelector creates a fixed-buffer selector. The pivot must be valid
// and loadFactor positive.
func NewFixedSelector(p Pivot, topN int, loadFactor float64, minCapacity int) *FixedSelector {
	capacity := FixedCapacity(topN, loadFactor, minCapacity)
	return &FixedSelector{
		pivot:  p,
		topN:   topN,
		ids:    make([]int32, capacity),
		scores: make([]float64, capacity),
	}
}

// Sink appends one item, compacting first if the buffer is full.
func (s *FixedSelector) Sink(id int32, score float64) {
	if s.cursor == len(s.ids) {
		s.compact()
	}
	s.scores[s.cursor] = score
	s.ids[s.cursor] = id
	s.cursor++
}

func (s *FixedSelector) compact() {
	if err := Narrow(s.scores, s.ids, s.topN, -1, s.pivot); err != nil {
		panic(err)
	}
	s.cursor = s.topN
	s.compactions++
}

// TopN returns the identifiers of the best min(n, Len()) items seen so far,
// in no particular order. It narrows the live part of the buffer first, so a
// query between compactions is still exact.
//
// Once a compaction has discarded items only the best topN are known, so
// larger requests are capped at topN.
func (s *FixedSelector) TopN(n int) []int32 {
	if n <= 0 || s.cursor == 0 {
		return []int32{}
	}
	k := min(n, s.cursor)
	if s.compactions > 0 {
		k = min(k, s.topN)
	}
	if err := Narrow(s.scores[:s.cursor], s.ids[:s.cursor], k, -1, s.pivot); err != nil {
		panic(err)
	}
	out := make([]int32, k)
	copy(out, s.ids[:k])
	return out
}

// Len returns the number of occupied buffer slots.
func (s *FixedSelector) Len() int { return s.cursor }

// Cap returns the buffer capacity.
func (s *FixedSelector) Cap() int { return len(s.ids) }

// Compactions returns how many times the buffer has been compacted.
func (s *FixedSelector) Compactions() int { return s.compactions }
