// Package order defines the total order shared by every selector: score
// descending, then identifier ascending.
package order

import (
	"cmp"
	"slices"
)

// Better reports whether (idA, scoreA) ranks strictly before (idB, scoreB).
func Better(idA int32, scoreA float64, idB int32, scoreB float64) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return idA < idB
}

// Compare returns -1 if a ranks before b, +1 if after, 0 if equal.
func Compare(idA int32, scoreA float64, idB int32, scoreB float64) int {
	if c := cmp.Compare(scoreB, scoreA); c != 0 {
		return c
	}
	return cmp.Compare(idA, idB)
}

// TopN returns the first n identifiers in rank order by fully sorting a copy
// of the input. It is the reference the selectors are checked against.
func TopN(ids []int32, scores []float64, n int) []int32 {
	if n <= 0 || len(ids) == 0 {
		return []int32{}
	}
	idx := make([]int, len(ids))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		return Compare(ids[a], scores[a], ids[b], scores[b])
	})
	n = min(n, len(ids))
	out := make([]int32, n)
	for i := range n {
		out[i] = ids[idx[i]]
	}
	return out
}

// SameSet reports whether a and b hold the same identifiers as multisets.
func SameSet(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	sa := slices.Clone(a)
	sb := slices.Clone(b)
	slices.Sort(sa)
	slices.Sort(sb)
	return slices.Equal(sa, sb)
}
