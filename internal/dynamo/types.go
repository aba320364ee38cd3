package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, 2)
}

// Add returns s + other. Components missing from other are treated as zero.
func (s State) Add(other State) State {
	result := s.Clone()
	n := min(len(s), len(other))
	floats.Add(result[:n], other[:n])
	return result
}

func (s State) Scale(factor float64) State {
	result := s.Clone()
	floats.Scale(factor, result)
	return result
}

// Sub returns s - other. Components missing from other are treated as zero.
func (s State) Sub(other State) State {
	result := s.Clone()
	n := min(len(s), len(other))
	floats.Sub(result[:n], other[:n])
	return result
}

// DerivFunc is the right-hand side of dX/dt = f(t, X). The parameter p
// carries attributes that are not part of the state, such as masses.
// Implementations must return a State of the same length as x and must not
// retain x after returning.
type DerivFunc[P any] func(t float64, x State, p P) State

// Solver advances a state by exactly one step of dt.
type Solver[P any] interface {
	Step(t float64, x State, dt float64, p P) (float64, State)
}

// Advancer is implemented by every model.
type Advancer interface {
	Advance(dt float64)
	AdvanceTo(t float64)
	Time() float64
}

// Snapshotter exposes a model's state as a flat copy, for storage and metrics.
type Snapshotter interface {
	Snapshot() State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Config struct {
	FrameDt       float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		FrameDt:       0.01,
		Duration:      1.0,
		ValidateState: true,
	}
}

type Result struct {
	States  []State
	Times   []float64
	Metrics map[string]float64
	Frames  int
}

// Configurable is implemented by evaluators whose constants can be tuned
// from a scenario file.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
