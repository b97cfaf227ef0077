package pjvs

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Diagnostics exposes the intermediate grid and step statistics of a record.
type Diagnostics struct {
	Boundaries []float64       // all step boundary times, including the padding intervals
	Steps      []QuantizedStep // every step of the grid, used or not
	EmptySteps int             // steps that contain no sample

	SampleCounts           []int   // samples per used step, in step order
	ExpectedSamplesPerStep float64 // Tseg divided by the mean sample spacing
	MeanSamplesPerStep     float64
	StdSamplesPerStep      float64 // NaN with fewer than two used steps

	Uncovered       int     // samples that no step covers, always 0 for a valid grid
	QuantisationRMS float64 // RMS of output minus reference over the covered samples
}

func newDiagnostics(tb TimeBase, grid StepGrid, times, boundaries []float64, steps []QuantizedStep, a Assignment, ref []float64) Diagnostics {
	d := Diagnostics{
		Boundaries:   boundaries,
		Steps:        steps,
		EmptySteps:   len(steps) - len(a.Used),
		SampleCounts: make([]int, len(a.Used)),
	}

	counts := make([]float64, len(a.Used))
	for i, u := range a.Used {
		d.SampleCounts[i] = u.SampleCount
		counts[i] = float64(u.SampleCount)
	}
	if len(counts) > 0 {
		d.MeanSamplesPerStep = stat.Mean(counts, nil)
	}
	d.StdSamplesPerStep = math.NaN()
	if len(counts) > 1 {
		d.StdSamplesPerStep = stat.StdDev(counts, nil)
	}

	if spacing := tb.meanSpacing(times, floats.Min(times), floats.Max(times)); spacing > 0 {
		d.ExpectedSamplesPerStep = grid.SegmentDuration() / spacing
	}

	diff := make([]float64, 0, len(times))
	for i, y := range a.Y {
		if math.IsNaN(y) {
			d.Uncovered++
			continue
		}
		diff = append(diff, y-ref[i])
	}
	if len(diff) > 0 {
		d.QuantisationRMS = math.Sqrt(floats.Dot(diff, diff) / float64(len(diff)))
	}

	return d
}
