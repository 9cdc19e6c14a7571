package topnselect

import (
	"fmt"
	"math"

	topnerrors "github.com/axt/topnselect/errors"
)

// Selector accumulates (identifier, score) items and reports the identifiers
// of the best N of them, ranking by score descending and identifier
// ascending.
//
// Usage:
//
//	sel, err := topnselect.New(len(ids), 1000, topnselect.WithAlgorithm(topnselect.AlgoBoundedHeap))
//	if err != nil { return err }
//	for i := range ids {
//	    sel.Sink(ids[i], scores[i])
//	}
//	best := sel.TopN(1000)
//
// Only AlgoBaselineHeap returns identifiers in rank order; every other
// algorithm returns the right set in an unspecified order.
//
// # Thread Safety
//
// A Selector is NOT safe for concurrent use.
//
// # Inputs
//
// Scores must be finite and not NaN. Behavior for other scores is undefined.
type Selector interface {
	// Sink adds one item.
	Sink(id int32, score float64)

	// TopN returns up to n identifiers. n <= 0 and an empty selector both
	// yield an empty slice; n larger than the number of items yields all of
	// them.
	TopN(n int) []int32
}

// New creates a selector for a stream of about maxExpectedItems items from
// which the best topN will be requested.
//
// Use WithAlgorithm and WithPivot (or WithVariant) to choose the
// implementation. The set of implementations is closed; an unknown algorithm
// or pivot is rejected here rather than during Sink.
func New(maxExpectedItems, topN int, opts ...Option) (Selector, error) {
	if topN < 0 {
		return nil, topnerrors.ErrInvalidTopN
	}
	if maxExpectedItems < 0 {
		return nil, topnerrors.ErrInvalidCapacity
	}

	cfg := defaultSelectConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.algorithm == AlgoQuickselectFixed {
		if math.IsNaN(cfg.loadFactor) || math.IsInf(cfg.loadFactor, 0) || cfg.loadFactor <= 0 {
			return nil, fmt.Errorf("%w: %v", topnerrors.ErrInvalidLoadFactor, cfg.loadFactor)
		}
		if cfg.loadFactor*float64(topN) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %v times top %d overflows the buffer", topnerrors.ErrInvalidLoadFactor, cfg.loadFactor, topN)
		}
		if cfg.minBufferCapacity < 0 {
			return nil, topnerrors.ErrInvalidCapacity
		}
	}

	return newSelector(cfg, maxExpectedItems, topN)
}
