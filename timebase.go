package pjvs

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// TimeBase describes the sample instants of a record: either an explicit,
// possibly irregular, sequence of times or Length samples at SamplingRate.
type TimeBase struct {
	Explicit     []float64 // takes precedence when non-nil
	SamplingRate float64
	Length       int

	// Gaussian clock jitter added to generated instants, standard deviation
	// in seconds. Seed makes the jitter reproducible.
	Jitter float64
	Seed   uint64
}

// Validate checks the time base without generating it.
func (tb TimeBase) Validate() error {
	if tb.Explicit != nil {
		if len(tb.Explicit) == 0 {
			return fmt.Errorf("%w: explicit sample times are empty", ErrInvalidParameter)
		}
		for i, t := range tb.Explicit {
			if math.IsNaN(t) || math.IsInf(t, 0) {
				return fmt.Errorf("%w: sample time %d is not finite", ErrInvalidParameter, i)
			}
		}
		return nil
	}
	if tb.Length <= 0 {
		return fmt.Errorf("%w: length must be greater than 0, got %d", ErrInvalidParameter, tb.Length)
	}
	if !(tb.SamplingRate > 0) || math.IsInf(tb.SamplingRate, 0) {
		return fmt.Errorf("%w: sampling rate must be a finite value > 0, got %v", ErrInvalidParameter, tb.SamplingRate)
	}
	return nil
}

// Times returns the sample instants. Explicit times are copied; otherwise
// sample i is at i/fs, plus jitter if requested.
func (tb TimeBase) Times() ([]float64, error) {
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	if tb.Explicit != nil {
		return slices.Clone(tb.Explicit), nil
	}

	times := make([]float64, tb.Length)
	for i := range times {
		times[i] = float64(i) / tb.SamplingRate
	}
	if tb.Jitter > 0 {
		r := rand.New(rand.NewPCG(tb.Seed, 0))
		for i := range times {
			times[i] += r.NormFloat64() * tb.Jitter
		}
	}
	return times, nil
}

// Returns the mean spacing between consecutive instants of the record, the
// sampling period for a generated time base.
func (tb TimeBase) meanSpacing(times []float64, tmin, tmax float64) float64 {
	if tb.Explicit == nil {
		return 1 / tb.SamplingRate
	}
	if len(times) < 2 {
		return 0
	}
	return (tmax - tmin) / float64(len(times)-1)
}
