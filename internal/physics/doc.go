// Package physics provides the right-hand sides integrated by the models.
//
// Each evaluator owns a solver built around its own Derive method and
// exposes a Step that advances a body in place and returns the new time:
//
//   - [UniformGravity]: projectile under constant g with optional quadratic drag
//   - [CentralGravity]: one body around a fixed point mass (SI units)
//   - [NBody]: all-pairs gravity over a [body.Set] (Kepler units, G = 4π²)
//   - [Cooling]: Newton's law of cooling on a scalar temperature
//
// Most evaluators also implement [dynamo.Configurable] so scenario files
// can override their constants.
//
// # Units
//
// NBody works in astronomical units, years and solar masses. CentralGravity
// works in SI. Do not mix states produced by the two.
package physics
