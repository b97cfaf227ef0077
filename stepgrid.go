package pjvs

import (
	"math"

	"github.com/synaptecltd/pjvs/waveform"
	"gonum.org/v1/gonum/floats"
)

// StepGrid defines the PJVS step timing and the microwave drive that sets
// the voltage quantum.
type StepGrid struct {
	StepFrequency      float64 // fstep, Hz
	StepPhase          float64 // phstep, rad in [0, 2π)
	MicrowaveFrequency float64 // fm, Hz
}

// Returns a StepGrid with the step phase normalised, or ErrInvalidParameter.
func NewStepGrid(fstep, phstep, fm float64) (StepGrid, error) {
	if err := requirePositive("step frequency", fstep); err != nil {
		return StepGrid{}, err
	}
	if err := requirePositive("microwave frequency", fm); err != nil {
		return StepGrid{}, err
	}
	if err := requireFinite("step phase", phstep); err != nil {
		return StepGrid{}, err
	}
	return StepGrid{
		StepFrequency:      fstep,
		StepPhase:          waveform.NormalisePhase(phstep),
		MicrowaveFrequency: fm,
	}, nil
}

// VoltageQuantum returns VS = fm/KJ, the voltage of quantum number 1.
func (g StepGrid) VoltageQuantum() float64 {
	return g.MicrowaveFrequency / JosephsonConstant
}

// SegmentDuration returns Tseg = 1/fstep.
func (g StepGrid) SegmentDuration() float64 {
	return 1 / g.StepFrequency
}

// Delay returns the time shift of the grid caused by the step phase.
func (g StepGrid) Delay() float64 {
	return g.SegmentDuration() * g.StepPhase / (2 * math.Pi)
}

// StepBoundary is the half-open interval [Start, End) of step Index.
type StepBoundary struct {
	Index int
	Start float64
	End   float64
	Mid   float64
}

// MaxSteps bounds the number of grid steps a record may span. The grid is
// anchored at t=0, so explicit times far from 0 (epoch timestamps, say) span
// one step per Tseg since 0 and are rejected above this limit.
const MaxSteps = 1 << 24

// Boundaries returns the ascending step boundary times for a record.
// Candidates tdel + k*Tseg are kept when they fall within the record span
// [min(0, tmin), tmax], then one extra boundary is added before the first and
// after the last. Every boundary comes from the same formula, and the first
// is <= the span start and the last > tmax, so every sample is covered.
func (g StepGrid) Boundaries(times []float64) []float64 {
	tseg := g.SegmentDuration()
	tdel := g.Delay()
	lo := math.Min(0, floats.Min(times))
	hi := floats.Max(times)
	at := func(k int) float64 {
		return tdel + float64(k)*tseg
	}

	k := 0
	if lo < 0 {
		k = int(math.Floor((lo - tdel) / tseg))
	}
	limit := hi + 2*math.Abs(tdel)

	kFirst, kLast := 0, 0
	found := false
	for ; float64(k)*tseg <= limit; k++ {
		if b := at(k); b >= lo && b <= hi {
			if !found {
				kFirst, found = k, true
			}
			kLast = k
		}
	}
	if !found {
		// record shorter than one step: the boundary below it anchors the grid
		kFirst = int(math.Floor((lo - tdel) / tseg))
		kLast = kFirst
	}

	kLo, kHi := kFirst-1, kLast+1
	for at(kLo) > lo {
		kLo--
	}
	for at(kHi) <= hi {
		kHi++
	}

	boundaries := make([]float64, 0, kHi-kLo+1)
	for k := kLo; k <= kHi; k++ {
		boundaries = append(boundaries, at(k))
	}
	return boundaries
}

// StepCount estimates the number of steps Boundaries would produce for a
// record spanning [tmin, tmax].
func (g StepGrid) StepCount(tmin, tmax float64) float64 {
	return (tmax-math.Min(0, tmin))*g.StepFrequency + 3
}

// Steps pairs consecutive boundaries into step intervals.
func Steps(boundaries []float64) []StepBoundary {
	if len(boundaries) < 2 {
		return nil
	}
	steps := make([]StepBoundary, len(boundaries)-1)
	for j := range steps {
		start, end := boundaries[j], boundaries[j+1]
		steps[j] = StepBoundary{
			Index: j,
			Start: start,
			End:   end,
			Mid:   (start + end) / 2,
		}
	}
	return steps
}
