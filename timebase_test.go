package pjvs

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeBaseGenerated(t *testing.T) {
	times, err := TimeBase{SamplingRate: 1000, Length: 1000}.Times()
	require.NoError(t, err)
	require.Len(t, times, 1000)
	for i, tm := range times {
		assert.Equal(t, float64(i)/1000, tm)
	}
}

func TestTimeBaseExplicitTakesPrecedence(t *testing.T) {
	explicit := []float64{0.3, 0, 0.013, 0.77}
	times, err := TimeBase{Explicit: explicit, SamplingRate: 1000, Length: 5}.Times()
	require.NoError(t, err)
	assert.Equal(t, explicit, times)

	// the returned slice is a copy
	times[0] = 42
	assert.Equal(t, 0.3, explicit[0])
}

func TestTimeBaseJitter(t *testing.T) {
	tb := TimeBase{SamplingRate: 1000, Length: 500, Jitter: 5e-4, Seed: 11}
	a, err := tb.Times()
	require.NoError(t, err)
	b, err := tb.Times()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	tb.Seed = 12
	c, err := tb.Times()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	maxDev := 0.0
	for i, tm := range a {
		maxDev = math.Max(maxDev, math.Abs(tm-float64(i)/1000))
	}
	assert.Greater(t, maxDev, 0.0)
	assert.Less(t, maxDev, 10*tb.Jitter)
	// jitter of half the sample period reorders some samples
	assert.False(t, slices.IsSorted(a))
}

func TestTimeBaseValidate(t *testing.T) {
	testCases := []struct {
		name string
		tb   TimeBase
	}{
		{name: "zero length", tb: TimeBase{SamplingRate: 100, Length: 0}},
		{name: "negative length", tb: TimeBase{SamplingRate: 100, Length: -3}},
		{name: "zero sampling rate", tb: TimeBase{SamplingRate: 0, Length: 10}},
		{name: "infinite sampling rate", tb: TimeBase{SamplingRate: math.Inf(1), Length: 10}},
		{name: "empty explicit", tb: TimeBase{Explicit: []float64{}, SamplingRate: 100, Length: 10}},
		{name: "NaN explicit", tb: TimeBase{Explicit: []float64{0, math.NaN()}}},
		{name: "Inf explicit", tb: TimeBase{Explicit: []float64{math.Inf(-1)}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.tb.Times()
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}
