package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
)

// StandardGravity is the downward acceleration used by UniformGravity.
const StandardGravity = 9.7

// UniformGravity integrates a single body falling in a constant field along
// -z, with quadratic drag of strength Drag/mass·|v|·v opposing the motion.
// State: [x, y, z, vx, vy, vz]. The solver parameter is the body mass.
type UniformGravity struct {
	Gravity float64
	Drag    float64
	solver  dynamo.Solver[float64]
}

func NewUniformGravity(method integrators.Method, drag float64) *UniformGravity {
	u := &UniformGravity{
		Gravity: StandardGravity,
		Drag:    drag,
	}
	u.solver = integrators.New[float64](method, u.Derive)
	return u
}

// Step advances b by dt and returns the new time.
func (u *UniformGravity) Step(t float64, b *body.Body, dt float64) float64 {
	tNext, next := u.solver.Step(t, b.State(), dt, b.Mass)
	_ = b.SetState(next)
	return tNext
}

func (u *UniformGravity) Derive(_ float64, x dynamo.State, mass float64) dynamo.State {
	vx, vy, vz := x[3], x[4], x[5]

	// drag == 0 must not divide: projectiles without drag may be massless
	k := 0.0
	if u.Drag != 0 {
		k = u.Drag / mass * math.Sqrt(vx*vx+vy*vy+vz*vz)
	}

	return dynamo.State{
		vx, vy, vz,
		-k * vx,
		-k * vy,
		-u.Gravity - k*vz,
	}
}

func (u *UniformGravity) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": u.Gravity,
		"drag":    u.Drag,
	}
}

func (u *UniformGravity) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		u.Gravity = value
	case "drag":
		u.Drag = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
