package quickselect

// DefaultInitialCapacity is the starting capacity of the unbounded selector's
// buffers when the caller does not size them.
const DefaultInitialCapacity = 25000

// Selector keeps every sunk item and selects the top N on demand.
//
// Sink is an amortized O(1) append. TopN copies the buffers and runs the
// narrowing loop on the copy, so it costs O(M) expected time per query and
// leaves the ingested data untouched. The returned identifiers are the top N
// as a set; their order is unspecified.
type Selector struct {
	pivot Pivot
	items *DualArray
}

// NewSelector creates an unbounded selector. The pivot must be valid.
func NewSelector(p Pivot, initialCapacity int) *Selector {
	return &Selector{
		pivot: p,
		items: NewDualArray(initialCapacity),
	}
}

// Sink appends one item.
func (s *Selector) Sink(id int32, score float64) {
	s.items.Append(id, score)
}

// TopN returns the identifiers of the min(n, Len()) best items.
func (s *Selector) TopN(n int) []int32 {
	if n <= 0 || s.items.Len() == 0 {
		return []int32{}
	}
	ids, scores := s.items.Snapshot()
	if err := Narrow(scores, ids, n, -1, s.pivot); err != nil {
		panic(err)
	}
	return ids[:min(n, len(ids))]
}

// Len returns the number of sunk items.
func (s *Selector) Len() int { return s.items.Len() }

// Items exposes the backing array.
func (s *Selector) Items() *DualArray { return s.items }
