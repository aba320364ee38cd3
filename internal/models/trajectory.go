package models

import (
	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/physics"
	"github.com/san-kum/astrogolf/internal/vector"
)

// ProjectileMass is a baseball, in kg.
const ProjectileMass = 0.145

// TrajectoryModel flies one projectile through uniform gravity. DtMax is
// recorded but not enforced: every Advance is a single step of dt.
type TrajectoryModel struct {
	Projectile *body.Body
	DtMax      float64

	gravity *physics.UniformGravity
	time    float64
}

// NewTrajectoryModel launches a projectile from p0 at v0. drag = 0 is a
// vacuum.
func NewTrajectoryModel(p0, v0 vector.Vector, drag float64, method integrators.Method) *TrajectoryModel {
	return &TrajectoryModel{
		Projectile: body.New(ProjectileMass, p0, v0),
		DtMax:      DefaultDtMax,
		gravity:    physics.NewUniformGravity(method, drag),
	}
}

func (m *TrajectoryModel) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	m.time = m.gravity.Step(m.time, m.Projectile, dt)
}

func (m *TrajectoryModel) AdvanceTo(t float64) {
	m.Advance(t - m.time)
}

func (m *TrajectoryModel) Time() float64 { return m.time }

func (m *TrajectoryModel) Snapshot() dynamo.State { return m.Projectile.State() }

func (m *TrajectoryModel) Evaluator() dynamo.Configurable { return m.gravity }

// Landed reports whether the projectile is at or below z = 0 and falling.
func (m *TrajectoryModel) Landed() bool {
	return m.Projectile.Pos.Z <= 0 && m.Projectile.Vel.Z < 0
}
