package pjvs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptecltd/pjvs/waveform"
)

const testVS = 1.5508753863464471e-4

func TestQuantize(t *testing.T) {
	testCases := []struct {
		name     string
		u        float64
		expected int
	}{
		{name: "zero", u: 0, expected: 0},
		{name: "below half", u: 0.49 * testVS, expected: 0},
		{name: "tie rounds away from zero", u: 2.5 * testVS, expected: 3},
		{name: "negative tie rounds away from zero", u: -2.5 * testVS, expected: -3},
		{name: "one volt", u: 1, expected: 6448},
		{name: "minus one volt", u: -1, expected: -6448},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, v := Quantize(tc.u, testVS)
			assert.Equal(t, tc.expected, n)
			assert.Equal(t, float64(n)*testVS, v)
		})
	}
}

func TestStepVoltagesAndQuantizeSteps(t *testing.T) {
	shape, err := waveform.NewShape(waveform.Sine, 1, 1, 0)
	require.NoError(t, err)
	steps := Steps([]float64{0, 0.1, 0.2})

	u := StepVoltages(shape, steps)
	require.Len(t, u, 2)
	assert.InDelta(t, (1-math.Cos(0.2*math.Pi))/(0.2*math.Pi), u[0], 1e-12)

	q := QuantizeSteps(steps, u, testVS)
	require.Len(t, q, 2)
	assert.Equal(t, 1960, q[0].QuantumNumber)
	assert.Equal(t, 5131, q[1].QuantumNumber)
	assert.Equal(t, steps[1], q[1].StepBoundary)
}

func quantizedSteps(boundaries []float64, voltages ...float64) []QuantizedStep {
	steps := Steps(boundaries)
	q := make([]QuantizedStep, len(steps))
	for j, s := range steps {
		q[j] = QuantizedStep{StepBoundary: s, QuantumNumber: j + 1, Voltage: voltages[j]}
	}
	return q
}

func TestAssignSamplesUnsorted(t *testing.T) {
	times := []float64{0.25, 0.05, 0.15, 0.1}
	steps := quantizedSteps([]float64{0, 0.1, 0.2, 0.3, 0.4}, 1, 2, 3, 4)

	a := AssignSamples(times, steps, 0.15)

	// a sample on a boundary belongs to the step it starts
	assert.Equal(t, []float64{3, 1, 2, 2}, a.Y)
	require.Len(t, a.Used, 3)

	assert.Equal(t, 0, a.Used[0].Index)
	assert.Equal(t, 1, a.Used[0].FirstSample)
	assert.Equal(t, 1, a.Used[0].SampleCount)
	assert.True(t, a.Used[0].FirstPeriod)

	assert.Equal(t, 1, a.Used[1].Index)
	assert.Equal(t, 2, a.Used[1].FirstSample)
	assert.Equal(t, 2, a.Used[1].SampleCount)
	assert.True(t, a.Used[1].FirstPeriod)

	// record starts at 0.05, so 0.25 lies outside the first period
	assert.Equal(t, 2, a.Used[2].Index)
	assert.Equal(t, 0, a.Used[2].FirstSample)
	assert.False(t, a.Used[2].FirstPeriod)
}

func TestAssignSamplesUncovered(t *testing.T) {
	times := []float64{-1, 0.05, 5}
	steps := quantizedSteps([]float64{0, 0.1}, 7)

	a := AssignSamples(times, steps, 1)
	assert.True(t, math.IsNaN(a.Y[0]))
	assert.Equal(t, 7.0, a.Y[1])
	assert.True(t, math.IsNaN(a.Y[2]))
	require.Len(t, a.Used, 1)
	assert.Equal(t, 1, a.Used[0].FirstSample)
}

func TestCollectSteps(t *testing.T) {
	used := []UsedStep{
		{QuantizedStep: QuantizedStep{QuantumNumber: 5, Voltage: 5 * testVS}, FirstSample: 4, FirstPeriod: true},
		{QuantizedStep: QuantizedStep{QuantumNumber: -2, Voltage: -2 * testVS}, FirstSample: 0, FirstPeriod: true},
		{QuantizedStep: QuantizedStep{QuantumNumber: 9, Voltage: 9 * testVS}, FirstSample: 7},
	}

	c := CollectSteps(used, 10)
	assert.Equal(t, []int{0, 4, 7, 10}, c.StepStarts)
	assert.Equal(t, []int{5, -2, 9}, c.N)
	assert.Equal(t, []float64{5 * testVS, -2 * testVS, 9 * testVS}, c.Upjvs)
	assert.Equal(t, []float64{5 * testVS, -2 * testVS}, c.Upjvs1Period)
}

func TestCollectStepsClampsIndices(t *testing.T) {
	used := []UsedStep{
		{FirstSample: -1},
		{FirstSample: 3},
		{FirstSample: 5},
		{FirstSample: 8},
	}
	c := CollectSteps(used, 5)
	assert.Equal(t, []int{0, 3, 5}, c.StepStarts)

	c = CollectSteps(nil, 4)
	assert.Equal(t, []int{0, 4}, c.StepStarts)
	assert.Empty(t, c.N)
	assert.Empty(t, c.Upjvs1Period)
}
