package pjvs

import (
	"cmp"
	"math"
	"slices"
)

// UsedStep is a quantized step that contains at least one sample.
type UsedStep struct {
	QuantizedStep
	FirstSample int  // lowest index of the samples inside the step
	SampleCount int  // number of samples inside the step
	FirstPeriod bool // the first sample lies within one reference period of the record start
}

// Assignment is the per-sample PJVS output and the steps it used.
type Assignment struct {
	Y    []float64  // step voltage per sample, NaN where no step covers the sample
	Used []UsedStep // in step order
}

// AssignSamples gives every sample the voltage of the step whose interval
// [Start, End) contains it. Steps without samples are left out of Used.
// period is the reference period used to flag first-period steps.
// Sample times need not be sorted.
func AssignSamples(times []float64, steps []QuantizedStep, period float64) Assignment {
	y := make([]float64, len(times))
	for i := range y {
		y[i] = math.NaN()
	}
	if len(times) == 0 {
		return Assignment{Y: y}
	}

	// sample indices ordered by time, so each step maps to a contiguous run
	order := make([]int, len(times))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(times[a], times[b])
	})
	sorted := make([]float64, len(times))
	for i, idx := range order {
		sorted[i] = times[idx]
	}
	recordStart := sorted[0]

	var used []UsedStep
	for _, step := range steps {
		lo, _ := slices.BinarySearch(sorted, step.Start)
		hi, _ := slices.BinarySearch(sorted, step.End)
		if hi <= lo {
			continue
		}

		matched := order[lo:hi]
		for _, idx := range matched {
			y[idx] = step.Voltage
		}
		first := slices.Min(matched)
		used = append(used, UsedStep{
			QuantizedStep: step,
			FirstSample:   first,
			SampleCount:   len(matched),
			FirstPeriod:   times[first] < recordStart+period,
		})
	}

	return Assignment{Y: y, Used: used}
}
