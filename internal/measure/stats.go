// Package measure accumulates benchmark samples and accounts for garbage
// collector activity between two points of a run.
package measure

import (
	"fmt"
	"math"

	topnerrors "github.com/axt/topnselect/errors"
)

// Statistics accumulates count, mean, standard deviation, min and max of a
// stream of samples.
//
// Mean and variance use Welford's update, which stays accurate when the
// samples are large and close together (nanosecond durations are).
type Statistics struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

// Add records one sample.
func (s *Statistics) Add(v float64) {
	if s.n == 0 {
		s.min, s.max = v, v
	}
	s.n++
	delta := v - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (v - s.mean)
	s.min = min(s.min, v)
	s.max = max(s.max, v)
}

// Count returns the number of samples.
func (s *Statistics) Count() int { return s.n }

// Mean returns the arithmetic mean.
func (s *Statistics) Mean() (float64, error) {
	if s.n == 0 {
		return 0, topnerrors.ErrNoSamples
	}
	return s.mean, nil
}

// StdDev returns the population standard deviation.
func (s *Statistics) StdDev() (float64, error) {
	if s.n == 0 {
		return 0, topnerrors.ErrNoSamples
	}
	return math.Sqrt(s.m2 / float64(s.n)), nil
}

// Min returns the smallest sample.
func (s *Statistics) Min() (float64, error) {
	if s.n == 0 {
		return 0, topnerrors.ErrNoSamples
	}
	return s.min, nil
}

// Max returns the largest sample.
func (s *Statistics) Max() (float64, error) {
	if s.n == 0 {
		return 0, topnerrors.ErrNoSamples
	}
	return s.max, nil
}

// Summary is a snapshot of a Statistics accumulator.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary returns all statistics at once. An empty accumulator yields a zero
// Summary.
func (s *Statistics) Summary() Summary {
	if s.n == 0 {
		return Summary{}
	}
	return Summary{
		Count:  s.n,
		Mean:   s.mean,
		StdDev: math.Sqrt(s.m2 / float64(s.n)),
		Min:    s.min,
		Max:    s.max,
	}
}

// String formats the summary as tab-separated count, mean, stddev, min, max.
func (s Summary) String() string {
	return fmt.Sprintf("%d\t%.4f\t%.4f\t%.4f\t%.4f", s.Count, s.Mean, s.StdDev, s.Min, s.Max)
}
