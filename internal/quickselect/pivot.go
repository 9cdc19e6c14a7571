// Package quickselect implements the partition-based top-N selectors: the
// partition primitive, the pivot strategies, the narrowing loop and the two
// selectors built on them (unbounded snapshot-then-select and the amortized
// fixed buffer).
//
// Every routine works on a pair of parallel slices (scores, ids) and orders
// them by score descending with ascending id as the tie-break. Selection is
// destructive: the slices are reordered in place.
package quickselect

import (
	"fmt"
	"math/rand/v2"

	topnerrors "github.com/axt/topnselect/errors"
)

// Pivot identifies how the narrowing loop picks a pivot position.
type Pivot uint8

const (
	// PivotMiddle picks the middle of the range, rounding up.
	PivotMiddle Pivot = 0

	// PivotMedian3 picks among three positional midpoints. The choice looks
	// at the positions only, never at the values stored there.
	PivotMedian3 Pivot = 1

	// PivotRandom picks a uniformly random position from the shared,
	// unseeded source. Results are not reproducible between runs.
	PivotRandom Pivot = 2
)

// String returns the pivot strategy name.
func (p Pivot) String() string {
	switch p {
	case PivotMiddle:
		return "middle"
	case PivotMedian3:
		return "median3"
	case PivotRandom:
		return "random"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the implemented strategies.
func (p Pivot) Valid() bool {
	return p <= PivotRandom
}

// ParsePivot maps a strategy name back to its Pivot.
func ParsePivot(name string) (Pivot, error) {
	switch name {
	case "middle":
		return PivotMiddle, nil
	case "median3":
		return PivotMedian3, nil
	case "random":
		return PivotRandom, nil
	}
	return 0, fmt.Errorf("%w: %q", topnerrors.ErrUnimplementedStrategy, name)
}

// position returns the pivot position for the inclusive range [left, right].
// Callers guarantee left < right.
func (p Pivot) position(left, right int) (int, error) {
	switch p {
	case PivotMiddle:
		return middlePivot(left, right), nil
	case PivotMedian3:
		return median3Pivot(left, right), nil
	case PivotRandom:
		return randomPivot(left, right), nil
	}
	return 0, fmt.Errorf("%w: %d", topnerrors.ErrUnimplementedStrategy, uint8(p))
}

func middlePivot(left, right int) int {
	return int(uint(left+right+1) >> 1)
}

// median3Pivot selects among the midpoints of [left,right], [left,mid] and
// [mid,right] by comparing the positions themselves.
func median3Pivot(left, right int) int {
	pivot := middlePivot(left, right)
	pivot2 := middlePivot(left, pivot)
	pivot3 := middlePivot(pivot, right)
	if pivot2 > pivot {
		if pivot3 > pivot {
			if pivot2 > pivot3 {
				pivot = pivot3
			} else {
				pivot = pivot2
			}
		}
	} else {
		if pivot3 < pivot {
			if pivot2 > pivot3 {
				pivot = pivot2
			} else {
				pivot = pivot3
			}
		}
	}
	return pivot
}

func randomPivot(left, right int) int {
	return left + int(rand.Float64()*float64(right-left))
}
