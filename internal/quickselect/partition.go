package quickselect

import "fmt"

// Partition rearranges scores[left:right+1] and ids[left:right+1] around the
// item at position pivot and returns the pivot's final position.
//
// Afterwards every position before the returned one holds an item ranking
// strictly before the pivot (higher score, or equal score and smaller id),
// and every position after it holds an item ranking at or after the pivot.
func Partition(scores []float64, ids []int32, left, right, pivot int) int {
	pivotScore := scores[pivot]
	pivotID := ids[pivot]

	swap(scores, ids, pivot, right)

	store := left
	for i := left; i < right; i++ {
		if scores[i] > pivotScore || (scores[i] == pivotScore && ids[i] < pivotID) {
			swap(scores, ids, store, i)
			store++
		}
	}
	swap(scores, ids, right, store)

	return store
}

func swap(scores []float64, ids []int32, i, j int) {
	scores[i], scores[j] = scores[j], scores[i]
	ids[i], ids[j] = ids[j], ids[i]
}

// Narrow reorders scores and ids so that the first topN positions of the
// range [0, right] hold the topN best items of that range, in no particular
// order. A negative right, or one past the end, selects the whole slice.
func Narrow(scores []float64, ids []int32, topN, right int, p Pivot) error {
	if !p.Valid() {
		_, err := p.position(0, 1)
		return err
	}
	if len(scores) != len(ids) {
		panic(fmt.Sprintf("quickselect: length mismatch: %d scores, %d ids", len(scores), len(ids)))
	}

	left := 0
	if right < 0 || right > len(scores)-1 {
		right = len(scores) - 1
	}

	for left < right {
		pivot, err := p.position(left, right)
		if err != nil {
			return err
		}
		rank := Partition(scores, ids, left, right, pivot)
		switch {
		case rank > topN:
			right = rank - 1
		case rank < topN:
			// left+1 keeps the loop moving when duplicates pin rank at left.
			left = max(rank, left+1)
		default:
			return nil
		}
	}
	return nil
}
