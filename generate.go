package pjvs

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Result is a complete PJVS record. All slices indexed by sample follow the
// order of Times.
type Result struct {
	Times     []float64 // sample times in seconds
	Y         []float64 // PJVS voltage per sample
	Reference []float64 // reference waveform per sample (diagnostic)

	N            []int     // quantum numbers of the used steps
	Upjvs        []float64 // voltages of the used steps
	Upjvs1Period []float64 // voltages of the used steps within the first reference period
	StepStarts   []int     // sample indices where used steps start, from 0 to len(Times)
	Steps        []UsedStep

	VoltageQuantum float64 // VS = fm/KJ
	Diagnostics    Diagnostics
}

// Generate resolves p and computes the PJVS record. It is a pure function:
// equal Params give bit-identical results.
func Generate(p Params) (*Result, error) {
	setup, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	return setup.Generate()
}

// Generate computes the PJVS record for a resolved setup.
func (s *Setup) Generate() (*Result, error) {
	times, err := s.TimeBase.Times()
	if err != nil {
		return nil, err
	}

	if n := s.Grid.StepCount(floats.Min(times), floats.Max(times)); n > MaxSteps {
		return nil, fmt.Errorf("%w: record spans about %.0f steps, more than %d", ErrInvalidParameter, n, MaxSteps)
	}

	vs := s.Grid.VoltageQuantum()
	boundaries := s.Grid.Boundaries(times)
	grid := Steps(boundaries)
	steps := QuantizeSteps(grid, StepVoltages(s.Shape, grid), vs)
	assignment := AssignSamples(times, steps, s.Shape.Period())
	collection := CollectSteps(assignment.Used, len(times))
	ref := ReferenceSamples(s.Shape, times, s.FastReference)

	return &Result{
		Times:          times,
		Y:              assignment.Y,
		Reference:      ref,
		N:              collection.N,
		Upjvs:          collection.Upjvs,
		Upjvs1Period:   collection.Upjvs1Period,
		StepStarts:     collection.StepStarts,
		Steps:          assignment.Used,
		VoltageQuantum: vs,
		Diagnostics:    newDiagnostics(s.TimeBase, s.Grid, times, boundaries, steps, assignment, ref),
	}, nil
}
