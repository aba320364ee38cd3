package physics

import (
	"fmt"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
)

// Cooling is Newton's law of cooling, dT/dt = k(Ambient - T), on a
// length-1 state. The solver parameter is the body's rate constant k.
type Cooling struct {
	Ambient float64
	solver  dynamo.Solver[float64]
}

func NewCooling(method integrators.Method, ambient float64) *Cooling {
	c := &Cooling{Ambient: ambient}
	c.solver = integrators.New[float64](method, c.Derive)
	return c
}

func (c *Cooling) Step(t float64, b *body.Thermal, dt float64) float64 {
	tNext, next := c.solver.Step(t, dynamo.State{b.Temperature}, dt, b.K)
	b.Temperature = next[0]
	return tNext
}

func (c *Cooling) Derive(_ float64, x dynamo.State, k float64) dynamo.State {
	return dynamo.State{k * (c.Ambient - x[0])}
}

func (c *Cooling) GetParams() map[string]float64 {
	return map[string]float64{"ambient": c.Ambient}
}

func (c *Cooling) SetParam(name string, value float64) error {
	if name != "ambient" {
		return fmt.Errorf("unknown param: %s", name)
	}
	c.Ambient = value
	return nil
}
