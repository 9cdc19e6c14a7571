package topnselect

import (
	"fmt"
	"strings"

	topnerrors "github.com/axt/topnselect/errors"
	"github.com/axt/topnselect/internal/pq"
	"github.com/axt/topnselect/internal/quickselect"
)

// AlgorithmID identifies the selection algorithm behind a Selector.
type AlgorithmID uint16

const (
	// AlgoQuickselect keeps every item and runs quickselect on a copy per query.
	AlgoQuickselect AlgorithmID = 0

	// AlgoQuickselectFixed keeps a fixed buffer that compacts itself with
	// quickselect whenever it fills up.
	AlgoQuickselectFixed AlgorithmID = 1

	// AlgoBoundedHeap keeps the best N items in a heap that evicts its
	// weakest member.
	AlgoBoundedHeap AlgorithmID = 2

	// AlgoBaselineHeap pushes every item into an unbounded priority queue
	// and pops N of them per query. Its results are in rank order.
	AlgoBaselineHeap AlgorithmID = 3
)

// String returns the algorithm name.
func (a AlgorithmID) String() string {
	switch a {
	case AlgoQuickselect:
		return "qs"
	case AlgoQuickselectFixed:
		return "qsfixed"
	case AlgoBoundedHeap:
		return "heap"
	case AlgoBaselineHeap:
		return "baseline"
	default:
		return "unknown"
	}
}

// UsesPivot reports whether the algorithm is quickselect based.
func (a AlgorithmID) UsesPivot() bool {
	return a == AlgoQuickselect || a == AlgoQuickselectFixed
}

// Ordered reports whether TopN results of the algorithm are in rank order.
func (a AlgorithmID) Ordered() bool {
	return a == AlgoBaselineHeap
}

// PivotStrategy selects how quickselect picks its pivot position.
type PivotStrategy = quickselect.Pivot

// Pivot strategies of the quickselect algorithms.
const (
	PivotMiddle  = quickselect.PivotMiddle
	PivotMedian3 = quickselect.PivotMedian3
	PivotRandom  = quickselect.PivotRandom
)

// Variant is one concrete selector configuration: an algorithm plus, for the
// quickselect algorithms, a pivot strategy.
type Variant struct {
	Algorithm AlgorithmID
	Pivot     PivotStrategy
}

// String returns the variant name, e.g. "qs-median3" or "heap".
func (v Variant) String() string {
	if v.Algorithm.UsesPivot() {
		return v.Algorithm.String() + "-" + v.Pivot.String()
	}
	return v.Algorithm.String()
}

// Variants returns the six selector variants.
func Variants() []Variant {
	return []Variant{
		{Algorithm: AlgoQuickselect, Pivot: PivotMiddle},
		{Algorithm: AlgoQuickselect, Pivot: PivotMedian3},
		{Algorithm: AlgoQuickselect, Pivot: PivotRandom},
		{Algorithm: AlgoQuickselectFixed, Pivot: PivotMiddle},
		{Algorithm: AlgoBoundedHeap},
		{Algorithm: AlgoBaselineHeap},
	}
}

// ParseVariant parses names produced by Variant.String. A quickselect
// algorithm without a pivot suffix gets PivotMiddle.
func ParseVariant(name string) (Variant, error) {
	algoName, pivotName, hasPivot := strings.Cut(strings.ToLower(strings.TrimSpace(name)), "-")
	var v Variant
	switch algoName {
	case "qs":
		v.Algorithm = AlgoQuickselect
	case "qsfixed":
		v.Algorithm = AlgoQuickselectFixed
	case "heap":
		v.Algorithm = AlgoBoundedHeap
	case "baseline":
		v.Algorithm = AlgoBaselineHeap
	default:
		return Variant{}, fmt.Errorf("%w: %q", topnerrors.ErrUnknownVariant, name)
	}
	if !hasPivot {
		return v, nil
	}
	if !v.Algorithm.UsesPivot() {
		return Variant{}, fmt.Errorf("%w: %q takes no pivot", topnerrors.ErrUnknownVariant, name)
	}
	p, err := quickselect.ParsePivot(pivotName)
	if err != nil {
		return Variant{}, fmt.Errorf("%w: %q", topnerrors.ErrUnknownVariant, name)
	}
	v.Pivot = p
	return v, nil
}

// newSelector creates the selector implementation for cfg.
//
// Parameters:
//   - maxExpectedItems: sizing hint, used as the initial capacity of the
//     unbounded algorithms when WithInitialCapacity was not given
//   - topN: the N the bounded algorithms retain
//
// Returns an error if the algorithm or pivot is unknown.
func newSelector(cfg *selectConfig, maxExpectedItems, topN int) (Selector, error) {
	if cfg.algorithm.UsesPivot() && !cfg.pivot.Valid() {
		return nil, fmt.Errorf("%w: %d", topnerrors.ErrUnimplementedStrategy, uint8(cfg.pivot))
	}
	initialCapacity := cfg.initialCapacity
	if initialCapacity < 0 {
		initialCapacity = quickselect.DefaultInitialCapacity
		if maxExpectedItems > 0 {
			initialCapacity = maxExpectedItems
		}
	}

	switch cfg.algorithm {
	case AlgoQuickselect:
		return quickselect.NewSelector(cfg.pivot, initialCapacity), nil
	case AlgoQuickselectFixed:
		return quickselect.NewFixedSelector(cfg.pivot, topN, cfg.loadFactor, cfg.minBufferCapacity), nil
	case AlgoBoundedHeap:
		return pq.NewHeapSelector(topN), nil
	case AlgoBaselineHeap:
		return pq.NewBaselineHeap(initialCapacity), nil
	}
	return nil, fmt.Errorf("%w: %d", topnerrors.ErrUnknownAlgorithm, uint16(cfg.algorithm))
}
