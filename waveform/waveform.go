// Package waveform evaluates the reference waveforms that a PJVS step sequence approximates.
package waveform

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/stevenblair/sigourney/fast"
)

// ErrUnknownType is returned for a waveform type or name outside the supported shapes.
var ErrUnknownType = errors.New("unknown waveform type")

// Type selects the shape of the reference waveform.
type Type int

// Supported waveform shapes. The zero value is Sine.
const (
	Sine Type = iota
	Triangle
	Sawtooth
	Rectangular
)

// A map between string name and waveform type
var typeNames = map[string]Type{
	"sine":        Sine,
	"triangle":    Triangle,
	"sawtooth":    Sawtooth,
	"rectangular": Rectangular,
}

// Returns the names accepted by Parse in alphabetical order.
func Names() []string {
	return slices.Sorted(maps.Keys(typeNames))
}

// Returns the waveform type with the given name. Matching ignores case and surrounding space.
func Parse(name string) (Type, error) {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Valid reports whether t is one of the supported shapes.
func (t Type) Valid() bool {
	return t >= Sine && t <= Rectangular
}

func (t Type) String() string {
	switch t {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Sawtooth:
		return "sawtooth"
	case Rectangular:
		return "rectangular"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML writes the waveform type by name.
func (t Type) MarshalYAML() (interface{}, error) {
	b, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// UnmarshalYAML reads the waveform type from its name.
func (t *Type) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(name))
}

// Shape is a reference waveform with its type, frequency (Hz), amplitude (V)
// and phase (rad, normalised into [0, 2π)).
type Shape struct {
	Type      Type
	Frequency float64
	Amplitude float64
	Phase     float64
}

// Returns a Shape with the phase normalised, or ErrUnknownType.
// Frequency and amplitude are taken as given.
func NewShape(typ Type, frequency, amplitude, phase float64) (Shape, error) {
	if !typ.Valid() {
		return Shape{}, fmt.Errorf("%w: %d", ErrUnknownType, int(typ))
	}
	return Shape{
		Type:      typ,
		Frequency: frequency,
		Amplitude: amplitude,
		Phase:     NormalisePhase(phase),
	}, nil
}

// Returns ph wrapped into [0, 2π).
func NormalisePhase(ph float64) float64 {
	ph = math.Mod(ph, 2*math.Pi)
	if ph < 0 {
		ph += 2 * math.Pi
	}
	if ph >= 2*math.Pi {
		ph = 0
	}
	return ph
}

// Period returns 1/f in seconds.
func (s Shape) Period() float64 {
	return 1 / s.Frequency
}

func (s Shape) angularFrequency() float64 {
	return 2 * math.Pi * s.Frequency
}

// evaluator pairs the per-sample value of a shape with the representative
// voltage of a step interval [t1, t2).
type evaluator struct {
	sample func(s Shape, t float64) float64
	step   func(s Shape, t1, t2 float64) float64
}

var evaluators = [...]evaluator{
	Sine:        {sample: sineSample, step: sineStepAverage},
	Triangle:    {sample: triangleSample, step: midpoint(triangleSample)},
	Sawtooth:    {sample: sawtoothSample, step: midpoint(sawtoothSample)},
	Rectangular: {sample: rectangularSample, step: midpoint(rectangularSample)},
}

// Sample returns the value of the waveform at time t.
func (s Shape) Sample(t float64) float64 {
	return evaluators[s.Type].sample(s, t)
}

// StepVoltage returns the voltage that represents the interval [t1, t2).
// For Sine this is the exact mean over the interval; the other shapes are
// evaluated at the interval midpoint, which is inexact where the interval
// spans a slope change or a polarity flip.
func (s Shape) StepVoltage(t1, t2 float64) float64 {
	return evaluators[s.Type].step(s, t1, t2)
}

// SampleFast is Sample using a table-based sine for Sine and Rectangular. It is only
// suitable for previews of the reference; step voltages never use it.
func (s Shape) SampleFast(t float64) float64 {
	switch s.Type {
	case Sine:
		return s.Amplitude * fast.Sin(wrapAngle(s.angularFrequency()*t+s.Phase))
	case Rectangular:
		return sign(s.Amplitude * fast.Sin(wrapAngle(s.angularFrequency()*t+s.Phase)))
	}
	return s.Sample(t)
}

// Returns y = A*sin(w*t + ph).
func sineSample(s Shape, t float64) float64 {
	return s.Amplitude * math.Sin(s.angularFrequency()*t+s.Phase)
}

// Returns the mean of A*sin(w*t + ph) over [t1, t2], from the analytic integral.
func sineStepAverage(s Shape, t1, t2 float64) float64 {
	w := s.angularFrequency()
	return s.Amplitude * (math.Cos(w*t1+s.Phase) - math.Cos(w*t2+s.Phase)) / (w * (t2 - t1))
}

// Returns y = 2A*|mod((w*t + ph)/π, 2) - 1| - A, a triangle with its maximum at phase 0.
func triangleSample(s Shape, t float64) float64 {
	x := floorMod((s.angularFrequency()*t+s.Phase)/math.Pi, 2)
	return 2*s.Amplitude*math.Abs(x-1) - s.Amplitude
}

// Returns y = 2A*(t/T - floor(t/T + 1/2)). The phase is not applied.
func sawtoothSample(s Shape, t float64) float64 {
	x := t / s.Period()
	return 2 * s.Amplitude * (x - math.Floor(x+0.5))
}

// Returns sign(A*sin(w*t + ph)): -1, 0 or +1 regardless of amplitude.
func rectangularSample(s Shape, t float64) float64 {
	return sign(s.Amplitude * math.Sin(s.angularFrequency()*t+s.Phase))
}

// Returns a step function that evaluates f at the midpoint of the interval.
func midpoint(f func(s Shape, t float64) float64) func(s Shape, t1, t2 float64) float64 {
	return func(s Shape, t1, t2 float64) float64 {
		return f(s, (t1+t2)/2)
	}
}

// Returns x mod y with the sign of y.
func floorMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m < 0 {
		m += y
	}
	return m
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Returns a wrapped into [-π, π).
func wrapAngle(a float64) float64 {
	return floorMod(a+math.Pi, 2*math.Pi) - math.Pi
}
