package pjvs

import "slices"

// Collection summarises the used steps of a record.
type Collection struct {
	// Ascending sample indices where steps start. The first entry is 0 and
	// the last is the number of samples, so step i covers samples
	// StepStarts[i]:StepStarts[i+1] of a time-ordered record.
	StepStarts   []int
	N            []int     // quantum numbers of the used steps, in step order
	Upjvs        []float64 // voltages of the used steps, in step order
	Upjvs1Period []float64 // voltages of the used steps flagged as first-period
}

// CollectSteps derives the step start indices and voltage lists from the
// used steps of a record of numSamples samples.
func CollectSteps(used []UsedStep, numSamples int) Collection {
	starts := make([]int, 0, len(used)+2)
	c := Collection{
		N:            make([]int, 0, len(used)),
		Upjvs:        make([]float64, 0, len(used)),
		Upjvs1Period: []float64{},
	}

	for _, u := range used {
		starts = append(starts, u.FirstSample)
		c.N = append(c.N, u.QuantumNumber)
		c.Upjvs = append(c.Upjvs, u.Voltage)
		if u.FirstPeriod {
			c.Upjvs1Period = append(c.Upjvs1Period, u.Voltage)
		}
	}

	slices.Sort(starts)
	starts = slices.DeleteFunc(starts, func(i int) bool {
		return i < 0 || i > numSamples
	})
	if len(starts) == 0 || starts[0] != 0 {
		starts = slices.Insert(starts, 0, 0)
	}
	if starts[len(starts)-1] != numSamples {
		starts = append(starts, numSamples)
	}
	c.StepStarts = starts

	return c
}
