// Package pjvs emulates the sampled output of a Programmable Josephson Voltage
// Standard driving a reference waveform. A reference (sine, triangle, sawtooth
// or rectangular) is approximated by a staircase of steps whose voltages are
// integer multiples of the voltage quantum fm/KJ, and every sample takes the
// voltage of the step that contains it.
package pjvs

import (
	"errors"
	"fmt"
	"math"

	"github.com/synaptecltd/pjvs/waveform"
)

// Physical constants (SI 2019 exact values)
const (
	PlanckConstant    = 6.62607015e-34  // h, J s
	ElementaryCharge  = 1.602176634e-19 // e, C
	JosephsonConstant = 2 * ElementaryCharge / PlanckConstant
)

// MaxQuantumNumber bounds |n| so that n fits an int and converts to float64 without loss.
const MaxQuantumNumber = 1 << 53

// Defaults applied by Params.Resolve to fields that are left nil.
const (
	DefaultSamplingRate       = 100.0
	DefaultLength             = 200
	DefaultFrequency          = 1.0
	DefaultAmplitude          = 1.0
	DefaultPhase              = 0.0
	DefaultStepFrequency      = 10.0
	DefaultStepPhase          = -0.3142
	DefaultMicrowaveFrequency = 75e9
	DefaultWaveform           = waveform.Sine
)

var (
	// ErrInvalidParameter is returned when an input is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownWaveformType is returned for a waveform outside the supported shapes.
	ErrUnknownWaveformType = waveform.ErrUnknownType
)

// Params requests a PJVS record. Every field is optional; nil fields take the
// Default* values. Times, when non-nil, overrides SamplingRate and Length.
type Params struct {
	SamplingRate       *float64       `yaml:"SamplingRate,omitempty"`       // fs, Hz
	Length             *int           `yaml:"Length,omitempty"`             // L, number of samples
	Times              []float64      `yaml:"Times,omitempty,flow"`         // explicit sample times in seconds, possibly irregular
	Frequency          *float64       `yaml:"Frequency,omitempty"`          // f, Hz
	Amplitude          *float64       `yaml:"Amplitude,omitempty"`          // A, V
	Phase              *float64       `yaml:"Phase,omitempty"`              // ph, rad
	StepFrequency      *float64       `yaml:"StepFrequency,omitempty"`      // fstep, Hz
	StepPhase          *float64       `yaml:"StepPhase,omitempty"`          // phstep, rad
	MicrowaveFrequency *float64       `yaml:"MicrowaveFrequency,omitempty"` // fm, Hz
	Waveform           *waveform.Type `yaml:"Waveform,omitempty"`

	TimingJitter  *float64 `yaml:"TimingJitter,omitempty"` // std-dev of Gaussian sample clock jitter in seconds, generated time base only
	JitterSeed    *uint64  `yaml:"JitterSeed,omitempty"`
	FastReference bool     `yaml:"FastReference,omitempty"` // table-based sine for the diagnostic reference curve
}

// Ptr returns a pointer to v, for filling in Params.
func Ptr[T any](v T) *T {
	return &v
}

// Setup is a validated request with every default resolved.
type Setup struct {
	TimeBase      TimeBase
	Shape         waveform.Shape
	Grid          StepGrid
	FastReference bool
}

// Resolve applies defaults and validates every field. No computation starts
// unless all inputs are valid.
func (p Params) Resolve() (*Setup, error) {
	fs := valueOr(p.SamplingRate, DefaultSamplingRate)
	length := valueOr(p.Length, DefaultLength)
	f := valueOr(p.Frequency, DefaultFrequency)
	A := valueOr(p.Amplitude, DefaultAmplitude)
	ph := valueOr(p.Phase, DefaultPhase)
	fstep := valueOr(p.StepFrequency, DefaultStepFrequency)
	phstep := valueOr(p.StepPhase, DefaultStepPhase)
	fm := valueOr(p.MicrowaveFrequency, DefaultMicrowaveFrequency)
	typ := valueOr(p.Waveform, DefaultWaveform)
	jitter := valueOr(p.TimingJitter, 0)

	if err := requirePositive("sampling rate", fs); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length must be greater than 0, got %d", ErrInvalidParameter, length)
	}
	if err := requirePositive("frequency", f); err != nil {
		return nil, err
	}
	if err := requirePositive("amplitude", A); err != nil {
		return nil, err
	}
	if err := requireFinite("phase", ph); err != nil {
		return nil, err
	}
	if jitter < 0 || math.IsNaN(jitter) || math.IsInf(jitter, 0) {
		return nil, fmt.Errorf("%w: timing jitter must be a finite value >= 0, got %v", ErrInvalidParameter, jitter)
	}

	grid, err := NewStepGrid(fstep, phstep, fm)
	if err != nil {
		return nil, err
	}
	shape, err := waveform.NewShape(typ, f, A, ph)
	if err != nil {
		return nil, err
	}

	// step voltages never exceed the peak, which is 1 for a rectangular wave
	peak := A
	if typ == waveform.Rectangular {
		peak = 1
	}
	if peak/grid.VoltageQuantum() > MaxQuantumNumber {
		return nil, fmt.Errorf("%w: amplitude %v needs quantum numbers above %d", ErrInvalidParameter, A, MaxQuantumNumber)
	}

	tb := TimeBase{
		Explicit:     p.Times,
		SamplingRate: fs,
		Length:       length,
		Jitter:       jitter,
		Seed:         valueOr(p.JitterSeed, 0),
	}
	if err := tb.Validate(); err != nil {
		return nil, err
	}

	return &Setup{
		TimeBase:      tb,
		Shape:         shape,
		Grid:          grid,
		FastReference: p.FastReference,
	}, nil
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func requirePositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite value > 0, got %v", ErrInvalidParameter, name, v)
	}
	return nil
}

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, name, v)
	}
	return nil
}
