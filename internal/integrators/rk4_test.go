package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

func oscillator(t float64, x dynamo.State, _ struct{}) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func decay(t float64, x dynamo.State, k float64) dynamo.State {
	dx := make(dynamo.State, len(x))
	for i := range x {
		dx[i] = -k * x[i]
	}
	return dx
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4[struct{}](oscillator)

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	tm := 0.0
	for i := 0; i < steps; i++ {
		tm, x = integ.Step(tm, x, dt, struct{}{})
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}

	if math.Abs(tm-1.0) > 1e-12 {
		t.Errorf("time = %v, want 1.0", tm)
	}
}

func globalError(m Method, dt float64) float64 {
	s := New[float64](m, decay)
	x := dynamo.State{1}
	tm := 0.0
	n := int(math.Round(1 / dt))
	for i := 0; i < n; i++ {
		tm, x = s.Step(tm, x, dt, 1.0)
	}
	return math.Abs(x[0] - math.Exp(-1))
}

func TestConvergenceOrder(t *testing.T) {
	tests := []struct {
		method Method
		order  float64
	}{
		{MethodEuler, 1},
		{MethodRK2, 2},
		{MethodRK4, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			coarse := globalError(tt.method, 0.1)
			fine := globalError(tt.method, 0.05)
			ratio := coarse / fine
			want := math.Pow(2, tt.order)
			if math.Abs(ratio-want) > 0.15*want {
				t.Errorf("error ratio %.3f, want about %.0f", ratio, want)
			}
		})
	}
}

func TestStepShapes(t *testing.T) {
	shapes := map[string]dynamo.State{
		"scalar": {2},
		"vector": {1, 2, 3, 4, 5, 6},
		"matrix": {1, 2, 3, 4, 5, 6, -1, -2, -3, -4, -5, -6},
	}

	for _, m := range []Method{MethodEuler, MethodRK2, MethodRK4} {
		for name, x0 := range shapes {
			t.Run(string(m)+"/"+name, func(t *testing.T) {
				s := New[float64](m, decay)
				tNext, x := s.Step(0.5, x0, 0.25, 0.0)
				if tNext != 0.75 {
					t.Errorf("time = %v, want 0.75", tNext)
				}
				if len(x) != len(x0) {
					t.Fatalf("len = %d, want %d", len(x), len(x0))
				}
				for i := range x {
					if x[i] != x0[i] {
						t.Errorf("zero derivative changed component %d: %v -> %v", i, x0[i], x[i])
					}
				}
			})
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	x0 := dynamo.State{1, 2, 3}
	s := NewRK4[float64](decay)
	_, _ = s.Step(0, x0, 0.1, 1.0)
	if x0[0] != 1 || x0[1] != 2 || x0[2] != 3 {
		t.Errorf("input mutated: %v", x0)
	}
}

func TestNilDerivativePanics(t *testing.T) {
	defer func() {
		if r := recover(); r != dynamo.ErrNoDerivative {
			t.Errorf("recovered %v, want ErrNoDerivative", r)
		}
	}()
	NewRK4[float64](nil).Step(0, dynamo.State{1}, 0.1, 0)
}
