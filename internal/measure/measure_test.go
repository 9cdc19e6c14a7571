package measure

import (
	"errors"
	"math"
	"runtime"
	"strings"
	"testing"

	topnerrors "github.com/axt/topnselect/errors"
)

func TestStatisticsEmpty(t *testing.T) {
	var s Statistics
	if s.Count() != 0 {
		t.Fatalf("Count = %d", s.Count())
	}
	for name, f := range map[string]func() (float64, error){
		"Mean":   s.Mean,
		"StdDev": s.StdDev,
		"Min":    s.Min,
		"Max":    s.Max,
	} {
		if _, err := f(); !errors.Is(err, topnerrors.ErrNoSamples) {
			t.Errorf("%s on empty: err = %v, want ErrNoSamples", name, err)
		}
	}
	if s.Summary() != (Summary{}) {
		t.Fatalf("Summary of empty = %+v", s.Summary())
	}
}

func TestStatistics(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		mean    float64
		stddev  float64
		min     float64
		max     float64
	}{
		{"single", []float64{3}, 3, 0, 3, 3},
		{"pair", []float64{1, 3}, 2, 1, 1, 3},
		{"classic", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2, 2, 9},
		{"negative", []float64{-1, -2, -3}, -2, math.Sqrt(2.0 / 3), -3, -1},
		// Large offsets lose all precision in a naive sum-of-squares.
		{"large_offset", []float64{1e9 + 4, 1e9 + 7, 1e9 + 13, 1e9 + 16}, 1e9 + 10, math.Sqrt(22.5), 1e9 + 4, 1e9 + 16},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s Statistics
			for _, v := range tc.samples {
				s.Add(v)
			}
			mean, _ := s.Mean()
			stddev, _ := s.StdDev()
			lo, _ := s.Min()
			hi, _ := s.Max()
			if s.Count() != len(tc.samples) {
				t.Errorf("Count = %d, want %d", s.Count(), len(tc.samples))
			}
			if math.Abs(mean-tc.mean) > 1e-9 {
				t.Errorf("Mean = %v, want %v", mean, tc.mean)
			}
			if math.Abs(stddev-tc.stddev) > 1e-6 {
				t.Errorf("StdDev = %v, want %v", stddev, tc.stddev)
			}
			if lo != tc.min || hi != tc.max {
				t.Errorf("Min, Max = %v, %v; want %v, %v", lo, hi, tc.min, tc.max)
			}

			sum := s.Summary()
			if sum.Count != s.Count() || sum.Mean != mean || sum.StdDev != stddev || sum.Min != lo || sum.Max != hi {
				t.Errorf("Summary %+v disagrees with the accessors", sum)
			}
		})
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{Count: 2, Mean: 1.5, StdDev: 0.5, Min: 1, Max: 2}
	got := s.String()
	if want := "2\t1.5000\t0.5000\t1.0000\t2.0000"; got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
	if strings.Count(got, "\t") != 4 {
		t.Fatalf("String has %d tabs, want 4", strings.Count(got, "\t"))
	}
}

var sink [][]byte

func TestGCMeasureCountsGarbage(t *testing.T) {
	g := NewGCMeasure()
	const chunk, count = 1 << 16, 64
	for range count {
		sink = append(sink, make([]byte, chunk))
	}
	sink = nil
	runtime.GC()
	d := g.Diff()

	if d.Garbage < chunk*count {
		t.Fatalf("Garbage = %d, want at least %d", d.Garbage, chunk*count)
	}
	if d.GCCount < 1 {
		t.Fatalf("GCCount = %d after runtime.GC, want at least 1", d.GCCount)
	}
	if d.GCPause < 0 {
		t.Fatalf("GCPause = %v", d.GCPause)
	}
}

func TestGCMeasureReset(t *testing.T) {
	g := NewGCMeasure()
	for range 16 {
		sink = append(sink, make([]byte, 1<<16))
	}
	sink = nil
	g.Reset()
	d := g.Diff()
	if d.Garbage >= 1<<20 {
		t.Fatalf("Garbage after Reset = %d, expected the earlier allocations to be excluded", d.Garbage)
	}
}
