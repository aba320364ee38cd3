package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4[P any] struct {
	fn             dynamo.DerivFunc[P]
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4[P any](fn dynamo.DerivFunc[P]) *RK4[P] {
	return &RK4[P]{fn: fn}
}

func (r *RK4[P]) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4[P]) Step(t float64, x dynamo.State, dt float64, p P) (float64, dynamo.State) {
	mustDerive(r.fn)
	r.ensureScratch(len(x))

	copy(r.k1, r.fn(t, x, p))

	floats.AddScaledTo(r.scratch, x, dt*0.5, r.k1)
	copy(r.k2, r.fn(t+dt*0.5, r.scratch, p))

	floats.AddScaledTo(r.scratch, x, dt*0.5, r.k2)
	copy(r.k3, r.fn(t+dt*0.5, r.scratch, p))

	floats.AddScaledTo(r.scratch, x, dt, r.k3)
	copy(r.k4, r.fn(t+dt, r.scratch, p))

	result := make(dynamo.State, len(x))
	dt6 := dt / 6.0
	for i := range x {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return t + dt, result
}
