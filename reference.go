package pjvs

import "github.com/synaptecltd/pjvs/waveform"

// ReferenceSamples evaluates the reference waveform at every sample time.
// The values are diagnostic only and never feed the step voltages.
func ReferenceSamples(shape waveform.Shape, times []float64, fast bool) []float64 {
	sample := shape.Sample
	if fast {
		sample = shape.SampleFast
	}
	ref := make([]float64, len(times))
	for i, t := range times {
		ref[i] = sample(t)
	}
	return ref
}

// StepVoltages returns the representative voltage of every step: the exact
// interval mean for a sine, the midpoint value for the other shapes.
func StepVoltages(shape waveform.Shape, steps []StepBoundary) []float64 {
	u := make([]float64, len(steps))
	for j, s := range steps {
		u[j] = shape.StepVoltage(s.Start, s.End)
	}
	return u
}
