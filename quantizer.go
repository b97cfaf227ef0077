package pjvs

import "math"

// QuantizedStep is a step interval with its PJVS quantum number n and
// voltage n*VS.
type QuantizedStep struct {
	StepBoundary
	QuantumNumber int
	Voltage       float64
}

// Quantize rounds u to the nearest multiple of vs, with ties rounded away
// from zero, and returns the quantum number and its voltage.
func Quantize(u, vs float64) (int, float64) {
	n := int(math.Round(u / vs))
	return n, float64(n) * vs
}

// QuantizeSteps quantizes the representative voltage of every step.
func QuantizeSteps(steps []StepBoundary, voltages []float64, vs float64) []QuantizedStep {
	q := make([]QuantizedStep, len(steps))
	for j, s := range steps {
		n, v := Quantize(voltages[j], vs)
		q[j] = QuantizedStep{
			StepBoundary:  s,
			QuantumNumber: n,
			Voltage:       v,
		}
	}
	return q
}
