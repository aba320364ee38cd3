package models

import (
	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/physics"
)

// CoolingModel lets one object relax towards ambient temperature, sub-stepped
// the same way as NModel with a ceiling of DtMax.
type CoolingModel struct {
	Object *body.Thermal
	DtMax  float64

	cooling *physics.Cooling
	time    float64
}

func NewCoolingModel(initial, k, ambient float64, method integrators.Method) *CoolingModel {
	return &CoolingModel{
		Object:  &body.Thermal{Temperature: initial, K: k},
		DtMax:   DefaultDtMax,
		cooling: physics.NewCooling(method, ambient),
	}
}

func (m *CoolingModel) Advance(dt float64) {
	m.time = substep(m.time, dt, m.DtMax, func(t, h float64) float64 {
		return m.cooling.Step(t, m.Object, h)
	})
}

func (m *CoolingModel) AdvanceTo(t float64) {
	m.Advance(t - m.time)
}

func (m *CoolingModel) Time() float64 { return m.time }

func (m *CoolingModel) Snapshot() dynamo.State {
	return dynamo.State{m.Object.Temperature}
}

func (m *CoolingModel) Evaluator() dynamo.Configurable { return m.cooling }
