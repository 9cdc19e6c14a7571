package quickselect

import (
	"fmt"

	topnerrors "github.com/axt/topnselect/errors"
)

// minGrowStep is the capacity the first reallocation jumps to. Past it the
// capacity doubles.
const minGrowStep = 10

// DualArray is an append-only pair of parallel buffers holding identifiers and
// scores. Both buffers always have the same logical length.
//
// Growth is done by hand rather than through append so the allocation pattern
// is fixed: the capacity becomes 10 while fewer than 10 items are stored and
// doubles after that.
type DualArray struct {
	ids    []int32
	scores []float64
	n      int
	grows  int // number of reallocations so far
}

// NewDualArray creates an empty array with room for initialCapacity items.
func NewDualArray(initialCapacity int) *DualArray {
	initialCapacity = max(initialCapacity, 0)
	return &DualArray{
		ids:    make([]int32, initialCapacity),
		scores: make([]float64, initialCapacity),
	}
}

// Append adds one item at the end. Amortized O(1).
func (a *DualArray) Append(id int32, score float64) {
	if a.n >= len(a.ids) {
		newCap := 2 * a.n
		if a.n < minGrowStep {
			newCap = minGrowStep
		}
		a.grow(newCap)
	}
	a.ids[a.n] = id
	a.scores[a.n] = score
	a.n++
}

func (a *DualArray) grow(newCap int) {
	ids := make([]int32, newCap)
	scores := make([]float64, newCap)
	copy(ids, a.ids[:a.n])
	copy(scores, a.scores[:a.n])
	a.ids = ids
	a.scores = scores
	a.grows++
}

// Set overwrites the item at position i.
func (a *DualArray) Set(i int, id int32, score float64) error {
	if i < 0 || i >= a.n {
		return fmt.Errorf("%w: %d not in [0, %d)", topnerrors.ErrIndexOutOfRange, i, a.n)
	}
	a.ids[i] = id
	a.scores[i] = score
	return nil
}

// At returns the item at position i.
func (a *DualArray) At(i int) (int32, float64, error) {
	if i < 0 || i >= a.n {
		return 0, 0, fmt.Errorf("%w: %d not in [0, %d)", topnerrors.ErrIndexOutOfRange, i, a.n)
	}
	return a.ids[i], a.scores[i], nil
}

// Len returns the number of stored items.
func (a *DualArray) Len() int { return a.n }

// Cap returns the current capacity of both buffers.
func (a *DualArray) Cap() int { return len(a.ids) }

// Grows returns how many times the buffers were reallocated.
func (a *DualArray) Grows() int { return a.grows }

// Snapshot returns copies of the stored identifiers and scores. The caller
// may reorder the copies freely.
func (a *DualArray) Snapshot() ([]int32, []float64) {
	ids := make([]int32, a.n)
	scores := make([]float64, a.n)
	copy(ids, a.ids[:a.n])
	copy(scores, a.scores[:a.n])
	return ids, scores
}
