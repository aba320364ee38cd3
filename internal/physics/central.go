package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
)

// GravitationalConstant is G in SI units (m³ kg⁻¹ s⁻²).
const GravitationalConstant = 6.6743e-11

// CentralGravity integrates one body around a fixed attractor of mass M at
// the origin. State: [x, y, z, vx, vy, vz].
type CentralGravity struct {
	Mass   float64
	G      float64
	solver dynamo.Solver[struct{}]
}

func NewCentralGravity(method integrators.Method, mass float64) *CentralGravity {
	c := &CentralGravity{
		Mass: mass,
		G:    GravitationalConstant,
	}
	c.solver = integrators.New[struct{}](method, c.Derive)
	return c
}

// Step advances b by dt and returns the new time.
func (c *CentralGravity) Step(t float64, b *body.Body, dt float64) float64 {
	tNext, next := c.solver.Step(t, b.State(), dt, struct{}{})
	_ = b.SetState(next)
	return tNext
}

func (c *CentralGravity) Derive(_ float64, x dynamo.State, _ struct{}) dynamo.State {
	r2 := x[0]*x[0] + x[1]*x[1] + x[2]*x[2]
	f := -c.G * c.Mass / (r2 * math.Sqrt(r2))

	return dynamo.State{
		x[3], x[4], x[5],
		f * x[0],
		f * x[1],
		f * x[2],
	}
}

// SpecificEnergy is the orbital energy per unit mass, v²/2 - GM/r.
func (c *CentralGravity) SpecificEnergy(b *body.Body) float64 {
	v := b.Vel.R()
	return 0.5*v*v - c.G*c.Mass/b.Pos.R()
}

// Period returns the orbital period of an orbit with semi-major axis a.
func (c *CentralGravity) Period(a float64) float64 {
	return 2 * math.Pi * math.Sqrt(a*a*a/(c.G*c.Mass))
}

func (c *CentralGravity) GetParams() map[string]float64 {
	return map[string]float64{
		"mass": c.Mass,
		"g":    c.G,
	}
}

func (c *CentralGravity) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		c.Mass = value
	case "g":
		c.G = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
