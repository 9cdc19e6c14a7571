package topnselect

import "github.com/axt/topnselect/internal/quickselect"

// Option is a functional option for configuring a Selector.
type Option func(*selectConfig)

type selectConfig struct {
	algorithm         AlgorithmID
	pivot             PivotStrategy
	loadFactor        float64 // fixed buffer size relative to topN
	minBufferCapacity int     // lower bound on the fixed buffer size
	initialCapacity   int     // -1 means derive from maxExpectedItems
}

func defaultSelectConfig() *selectConfig {
	return &selectConfig{
		algorithm:         AlgoQuickselect,
		pivot:             PivotMiddle,
		loadFactor:        quickselect.DefaultLoadFactor,
		minBufferCapacity: quickselect.DefaultMinCapacity,
		initialCapacity:   -1,
	}
}

// WithAlgorithm sets the selection algorithm.
// Default is AlgoQuickselect.
func WithAlgorithm(algo AlgorithmID) Option {
	return func(c *selectConfig) {
		c.algorithm = algo
	}
}

// WithPivot sets the pivot strategy of the quickselect algorithms.
// Default is PivotMiddle. Ignored by the heap algorithms.
func WithPivot(p PivotStrategy) Option {
	return func(c *selectConfig) {
		c.pivot = p
	}
}

// WithVariant sets both algorithm and pivot.
func WithVariant(v Variant) Option {
	return func(c *selectConfig) {
		c.algorithm = v.Algorithm
		c.pivot = v.Pivot
	}
}

// WithLoadFactor sets the fixed buffer size of AlgoQuickselectFixed as a
// multiple of topN. Larger factors compact less often but use more memory.
// Default is 1.5.
func WithLoadFactor(f float64) Option {
	return func(c *selectConfig) {
		c.loadFactor = f
	}
}

// WithMinBufferCapacity sets the smallest fixed buffer AlgoQuickselectFixed
// allocates. Default is 10. The buffer always has room for topN+1 items.
func WithMinBufferCapacity(n int) Option {
	return func(c *selectConfig) {
		c.minBufferCapacity = n
	}
}

// WithInitialCapacity sets the initial buffer capacity of the unbounded
// algorithms (AlgoQuickselect, AlgoBaselineHeap). By default it is
// maxExpectedItems, or 25000 when that is zero.
func WithInitialCapacity(n int) Option {
	return func(c *selectConfig) {
		c.initialCapacity = n
	}
}
