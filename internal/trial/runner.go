// Package trial drives selectors over a fixture: timed benchmark trials,
// size sweeps, and a cross-variant correctness check.
package trial

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	topnselect "github.com/axt/topnselect"
	topnerrors "github.com/axt/topnselect/errors"
	"github.com/axt/topnselect/fixture"
	"github.com/axt/topnselect/internal/measure"
)

const (
	// DefaultWarmupRuns is the number of untimed trials before measuring.
	DefaultWarmupRuns = 30

	// DefaultStatisticRuns is the number of timed trials.
	DefaultStatisticRuns = 50
)

// Factory creates a fresh selector for one trial.
type Factory func(maxItems, topN int) (topnselect.Selector, error)

// VariantFactory returns a Factory building v with the extra options.
func VariantFactory(v topnselect.Variant, opts ...topnselect.Option) Factory {
	return func(maxItems, topN int) (topnselect.Selector, error) {
		all := append([]topnselect.Option{topnselect.WithVariant(v)}, opts...)
		return topnselect.New(maxItems, topN, all...)
	}
}

// Runner runs warmup trials followed by timed trials.
type Runner struct {
	Warmup int
	Runs   int
	Logger *zap.Logger
}

// NewRunner creates a runner with the default run counts and a no-op logger.
func NewRunner() *Runner {
	return &Runner{
		Warmup: DefaultWarmupRuns,
		Runs:   DefaultStatisticRuns,
		Logger: zap.NewNop(),
	}
}

// Result holds the measurements of one Run. Durations are in milliseconds,
// garbage in bytes.
type Result struct {
	Name  string
	Items int
	TopN  int

	Create measure.Statistics
	Sink   measure.Statistics
	Query  measure.Statistics

	GCPause measure.Statistics // milliseconds per phase
	GCCount measure.Statistics // cycles per phase

	GarbageCreate measure.Statistics
	GarbageSink   measure.Statistics
	GarbageQuery  measure.Statistics

	PeakRSS uint64
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Run measures the selector built by factory on the first items items of fix,
// asking for topN results. The fixture is checked to be unchanged afterwards.
func (r *Runner) Run(ctx context.Context, fix *fixture.Fixture, name string, items, topN int, factory Factory) (*Result, error) {
	if items <= 0 || items > fix.Len() {
		return nil, fmt.Errorf("%w: %d items requested from a fixture of %d", topnerrors.ErrInvalidConfig, items, fix.Len())
	}
	if r.Runs <= 0 {
		return nil, fmt.Errorf("%w: runs must be positive", topnerrors.ErrInvalidConfig)
	}
	log := r.logger().With(zap.String("selector", name), zap.Int("items", items), zap.Int("topN", topN))
	sum := fix.Checksum()

	runtime.GC()
	for i := range r.Warmup {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sel, err := factory(items, topN)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		fix.Feed(sel, items)
		sel.TopN(topN)
		log.Debug("warmup trial done", zap.Int("run", i))
	}

	res := &Result{Name: name, Items: items, TopN: topN}

	// Start the timed runs from a freshly collected heap.
	runtime.GC()
	gm := measure.NewGCMeasure()

	for i := range r.Runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		gm.Reset()

		before := time.Now()
		sel, err := factory(items, topN)
		elapsed := time.Since(before)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		res.Create.Add(millis(elapsed))
		d := gm.Diff()
		res.record(d, &res.GarbageCreate)

		before = time.Now()
		fix.Feed(sel, items)
		elapsed = time.Since(before)
		res.Sink.Add(millis(elapsed))
		d = gm.Diff()
		res.record(d, &res.GarbageSink)

		before = time.Now()
		got := sel.TopN(topN)
		elapsed = time.Since(before)
		res.Query.Add(millis(elapsed))
		d = gm.Diff()
		res.record(d, &res.GarbageQuery)

		log.Debug("timed trial done",
			zap.Int("run", i),
			zap.Int("returned", len(got)),
			zap.Uint64("gcCycles", d.GCCount))
	}

	if fix.Checksum() != sum {
		return nil, fmt.Errorf("%w: %s", topnerrors.ErrFixtureMutated, name)
	}

	mean, _ := res.Sink.Mean()
	log.Info("trial finished", zap.Float64("sinkMeanMs", mean), zap.Uint64("peakRSS", res.PeakRSS))
	return res, nil
}

func (res *Result) record(d measure.Diff, garbage *measure.Statistics) {
	garbage.Add(float64(d.Garbage))
	res.GCPause.Add(millis(d.GCPause))
	res.GCCount.Add(float64(d.GCCount))
	res.PeakRSS = max(res.PeakRSS, d.PeakRSS)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Plan describes a sweep: item counts from MaxItems-Step down to Step in
// steps of Step, each asking for TopN results.
type Plan struct {
	MaxItems int
	Step     int
	TopN     int
}

// Sizes returns the item counts the plan visits, largest first.
func (p Plan) Sizes() []int {
	if p.Step <= 0 {
		return nil
	}
	var sizes []int
	for items := p.MaxItems - p.Step; items > 0; items -= p.Step {
		sizes = append(sizes, items)
	}
	return sizes
}

// Sweep runs the selector at every size of plan.
func (r *Runner) Sweep(ctx context.Context, fix *fixture.Fixture, name string, plan Plan, factory Factory) ([]*Result, error) {
	sizes := plan.Sizes()
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: sweep of %d items in steps of %d is empty", topnerrors.ErrInvalidConfig, plan.MaxItems, plan.Step)
	}
	results := make([]*Result, 0, len(sizes))
	for _, items := range sizes {
		res, err := r.Run(ctx, fix, name, items, plan.TopN, factory)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
