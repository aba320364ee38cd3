package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

// Euler is the first-order forward Euler method.
type Euler[P any] struct {
	fn dynamo.DerivFunc[P]
}

func NewEuler[P any](fn dynamo.DerivFunc[P]) *Euler[P] {
	return &Euler[P]{fn: fn}
}

func (e *Euler[P]) Step(t float64, x dynamo.State, dt float64, p P) (float64, dynamo.State) {
	mustDerive(e.fn)

	dx := e.fn(t, x, p)
	result := make(dynamo.State, len(x))
	floats.AddScaledTo(result, x, dt, dx)
	return t + dt, result
}

func mustDerive[P any](fn dynamo.DerivFunc[P]) {
	if fn == nil {
		panic(dynamo.ErrNoDerivative)
	}
}
