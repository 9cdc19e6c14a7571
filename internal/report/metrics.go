package report

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/axt/topnselect/internal/measure"
	"github.com/axt/topnselect/internal/trial"
)

const namespace = "topnselect"

var labels = []string{"run_id", "selector", "items", "top_n", "phase", "stat"}

// Metrics holds the gauges describing a set of trial results.
type Metrics struct {
	registry *prometheus.Registry
	duration *prometheus.GaugeVec
	garbage  *prometheus.GaugeVec
	gcPause  *prometheus.GaugeVec
	gcCount  *prometheus.GaugeVec
	peakRSS  *prometheus.GaugeVec
}

// NewMetrics creates the gauges on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_duration_milliseconds",
			Help:      "Wall-clock time of a trial phase.",
		}, labels),
		garbage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_garbage_bytes",
			Help:      "Heap bytes allocated during a trial phase.",
		}, labels),
		gcPause: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_pause_milliseconds",
			Help:      "GC pause CPU time per trial phase.",
		}, labels),
		gcCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles per trial phase.",
		}, labels),
		peakRSS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peak_rss_bytes",
			Help:      "Process peak resident set size after the trials.",
		}, []string{"run_id", "selector", "items", "top_n"}),
	}
	m.registry.MustRegister(m.duration, m.garbage, m.gcPause, m.gcCount, m.peakRSS)
	return m
}

// Observe records every statistic of r under runID.
func (m *Metrics) Observe(runID string, r *trial.Result) {
	items := strconv.Itoa(r.Items)
	topN := strconv.Itoa(r.TopN)

	set := func(g *prometheus.GaugeVec, phase string, s *measure.Statistics) {
		sum := s.Summary()
		for stat, v := range map[string]float64{
			"mean":   sum.Mean,
			"stddev": sum.StdDev,
			"min":    sum.Min,
			"max":    sum.Max,
		} {
			g.WithLabelValues(runID, r.Name, items, topN, phase, stat).Set(v)
		}
	}

	set(m.duration, "create", &r.Create)
	set(m.duration, "sink", &r.Sink)
	set(m.duration, "query", &r.Query)
	set(m.garbage, "create", &r.GarbageCreate)
	set(m.garbage, "sink", &r.GarbageSink)
	set(m.garbage, "query", &r.GarbageQuery)
	set(m.gcPause, "all", &r.GCPause)
	set(m.gcCount, "all", &r.GCCount)
	m.peakRSS.WithLabelValues(runID, r.Name, items, topN).Set(float64(r.PeakRSS))
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes the gauges in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
