package integrators

import (
	"testing"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

func benchSolver(b *testing.B, m Method) {
	integrator := New[struct{}](m, oscillator)
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, x = integrator.Step(0, x, 0.01, struct{}{})
	}
}

func BenchmarkEuler(b *testing.B) { benchSolver(b, MethodEuler) }
func BenchmarkRK2(b *testing.B)   { benchSolver(b, MethodRK2) }
func BenchmarkRK4(b *testing.B)   { benchSolver(b, MethodRK4) }

func springTable(t float64, x dynamo.State, _ struct{}) dynamo.State {
	dx := make(dynamo.State, len(x))
	for i := 0; i < len(x)/6; i++ {
		for k := 0; k < 3; k++ {
			dx[i*6+k] = x[i*6+3+k]
			dx[i*6+3+k] = -0.1 * x[i*6+k]
		}
	}
	return dx
}

func BenchmarkRK4_Table5(b *testing.B) {
	integrator := NewRK4[struct{}](springTable)
	x := make(dynamo.State, 30)
	for i := range x {
		x[i] = float64(i) * 0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, x = integrator.Step(0, x, 0.001, struct{}{})
	}
}
