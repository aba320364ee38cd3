// Package dynamo provides the core primitives shared by the solvers,
// physics evaluators and models.
//
// The package defines the fundamental types for integrating ordinary
// differential equations of the form dX/dt = f(t, X):
//
//   - [State]: flat state vector. A scalar problem is a State of length 1,
//     a single body is a State of length 6 and an N-body table is the
//     row-major N×6 matrix flattened into a State of length 6N.
//   - [DerivFunc]: the right-hand side f, with a typed parameter that
//     carries non-state attributes such as masses.
//   - [Solver]: a one-step integrator built around a DerivFunc.
//   - [Advancer]: the model contract driven by game loops and the CLI.
//
// # Example
//
//	solver := integrators.New[float64](integrators.MethodRK4, decay)
//	t, x := solver.Step(0, dynamo.State{1}, 0.01, k)
//
// # Thread Safety
//
// Solvers keep scratch buffers and are NOT safe for concurrent use. Run
// independent models on independent goroutines instead.
package dynamo
