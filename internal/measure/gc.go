package measure

import (
	"runtime/metrics"
	"time"
)

// Runtime metrics read at every point. runtime/metrics is used instead of
// runtime.ReadMemStats because it does not stop the world.
const (
	metricGCCycles   = "/gc/cycles/total:gc-cycles"
	metricHeapAllocs = "/gc/heap/allocs:bytes"
	metricGCPauseCPU = "/cpu/classes/gc/pause:cpu-seconds"
)

// point is the collector state at one moment.
type point struct {
	gcCycles   uint64
	allocBytes uint64
	gcPause    float64 // seconds
	maxRSS     uint64  // bytes
}

// Diff is the collector activity between two points.
type Diff struct {
	GCCount   uint64        // completed GC cycles
	GCPause   time.Duration // CPU time spent in stop-the-world pauses
	Garbage   uint64        // bytes allocated on the heap, i.e. garbage generated
	PeakRSS   uint64        // process peak resident set size at the second point
	RSSGrowth uint64        // growth of the peak RSS between the points
}

// GCMeasure measures collector activity between consecutive calls. It is
// only meaningful while no other goroutine allocates.
type GCMeasure struct {
	samples []metrics.Sample
	last    point
}

// NewGCMeasure creates a measure whose first point is now.
func NewGCMeasure() *GCMeasure {
	g := &GCMeasure{
		samples: []metrics.Sample{
			{Name: metricGCCycles},
			{Name: metricHeapAllocs},
			{Name: metricGCPauseCPU},
		},
	}
	g.Reset()
	return g
}

// Reset makes now the reference point for the next Diff.
func (g *GCMeasure) Reset() {
	g.last = g.read()
}

// Diff returns the activity since the previous Reset or Diff and makes now
// the new reference point.
func (g *GCMeasure) Diff() Diff {
	prev := g.last
	cur := g.read()
	g.last = cur

	d := Diff{
		GCCount: cur.gcCycles - prev.gcCycles,
		Garbage: cur.allocBytes - prev.allocBytes,
		GCPause: time.Duration((cur.gcPause - prev.gcPause) * float64(time.Second)),
		PeakRSS: cur.maxRSS,
	}
	if cur.maxRSS > prev.maxRSS {
		d.RSSGrowth = cur.maxRSS - prev.maxRSS
	}
	if d.GCPause < 0 {
		d.GCPause = 0
	}
	return d
}

func (g *GCMeasure) read() point {
	metrics.Read(g.samples)
	return point{
		gcCycles:   sampleUint64(g.samples[0]),
		allocBytes: sampleUint64(g.samples[1]),
		gcPause:    sampleFloat64(g.samples[2]),
		maxRSS:     maxRSS(),
	}
}

func sampleUint64(s metrics.Sample) uint64 {
	if s.Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return s.Value.Uint64()
}

func sampleFloat64(s metrics.Sample) float64 {
	if s.Value.Kind() != metrics.KindFloat64 {
		return 0
	}
	return s.Value.Float64()
}
