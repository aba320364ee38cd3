package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

// RK2 is the second-order midpoint method.
type RK2[P any] struct {
	fn      dynamo.DerivFunc[P]
	k1      dynamo.State
	scratch dynamo.State
}

func NewRK2[P any](fn dynamo.DerivFunc[P]) *RK2[P] {
	return &RK2[P]{fn: fn}
}

func (r *RK2[P]) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK2[P]) Step(t float64, x dynamo.State, dt float64, p P) (float64, dynamo.State) {
	mustDerive(r.fn)
	r.ensureScratch(len(x))

	copy(r.k1, r.fn(t, x, p))

	floats.AddScaledTo(r.scratch, x, 0.5*dt, r.k1)
	k2 := r.fn(t+0.5*dt, r.scratch, p)

	result := make(dynamo.State, len(x))
	floats.AddScaledTo(result, x, dt, k2)
	return t + dt, result
}
