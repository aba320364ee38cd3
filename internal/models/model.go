// Package models orchestrates the physics evaluators over time. A model
// owns its bodies, one evaluator bound to them and the simulation clock,
// and hides sub-stepping from callers that think in frames.
package models

import (
	"github.com/san-kum/astrogolf/internal/dynamo"
)

// DefaultDtMax is the step ceiling TrajectoryModel, OrbitModel and
// CoolingModel start with.
const DefaultDtMax = 0.1

// Model is the common surface of every model in this package.
type Model interface {
	dynamo.Advancer
	dynamo.Snapshotter
	// Evaluator exposes the tunable constants of the bound physics.
	Evaluator() dynamo.Configurable
}

// substep covers dt starting at t with calls to step. Non-positive requests
// leave the clock where it is. A request below
// dtMax is taken in one call. Otherwise steps of exactly dtMax are taken
// while the sub-step clock is behind t+dt, so the last one may overshoot
// by up to dtMax.
func substep(t, dt, dtMax float64, step func(t, h float64) float64) float64 {
	if dt <= 0 {
		return t
	}
	if dt < dtMax {
		return step(t, dt)
	}
	end := t + dt
	tSub := t
	for tSub < end {
		tSub = step(tSub, dtMax)
	}
	return tSub
}

var (
	_ Model = (*NModel)(nil)
	_ Model = (*TrajectoryModel)(nil)
	_ Model = (*OrbitModel)(nil)
	_ Model = (*CoolingModel)(nil)
)
