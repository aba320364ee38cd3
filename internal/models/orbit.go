package models

import (
	"fmt"
	"math"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/physics"
	"github.com/san-kum/astrogolf/internal/vector"
)

// SolarMass is in kg.
const SolarMass = 1.989e30

// Orbit seeds one orbital at perihelion.
type Orbit struct {
	Name         string
	SemiMajor    float64 // a, m
	Eccentricity float64 // e, 0 <= e < 1
	Mass         float64 // kg
}

// Perihelion returns the starting position and velocity of o around a
// central mass: r0 = a(1-e) along +x and v0 = √(GM/a · (1+e)/(1-e)) along +z.
func (o Orbit) Perihelion(gm float64) (pos, vel vector.Vector) {
	e := o.Eccentricity
	r0 := o.SemiMajor * (1 - e)
	v0 := math.Sqrt(gm / o.SemiMajor * (1 + e) / (1 - e))
	return vector.Vector{X: r0}, vector.Vector{Z: v0}
}

// OrbitModel moves independent orbitals around a fixed central mass. DtMax
// is recorded but not enforced.
//
// Each Advance steps every orbital by dt from the model time, then takes
// the model time from the last orbital stepped. All orbitals share the
// start time and dt, so they agree.
type OrbitModel struct {
	Orbitals []*body.Body
	Names    []string
	DtMax    float64

	gravity *physics.CentralGravity
	time    float64
}

func NewOrbitModel(centralMass float64, orbits []Orbit, method integrators.Method) (*OrbitModel, error) {
	m := &OrbitModel{
		DtMax:   DefaultDtMax,
		gravity: physics.NewCentralGravity(method, centralMass),
	}
	gm := m.gravity.G * centralMass
	for _, o := range orbits {
		if o.SemiMajor <= 0 || o.Eccentricity < 0 || o.Eccentricity >= 1 {
			return nil, fmt.Errorf("orbit %q: a=%g e=%g: %w",
				o.Name, o.SemiMajor, o.Eccentricity, dynamo.ErrParameterBounds)
		}
		pos, vel := o.Perihelion(gm)
		m.Orbitals = append(m.Orbitals, body.New(o.Mass, pos, vel))
		m.Names = append(m.Names, o.Name)
	}
	return m, nil
}

// SolarSystemOrbits are Mercury through Mars plus a long-period comet.
var SolarSystemOrbits = []Orbit{
	{Name: "Mercury", SemiMajor: 57909036552, Eccentricity: 0.206, Mass: 3.285e23},
	{Name: "Venus", SemiMajor: 1.08159e11, Eccentricity: 0.0068, Mass: 4.867e24},
	{Name: "Earth", SemiMajor: 1.496e11, Eccentricity: 0.0167, Mass: 5.972e24},
	{Name: "Mars", SemiMajor: 2.27987e11, Eccentricity: 0.0934, Mass: 6.41693e23},
	{Name: "Comet", SemiMajor: 4.488e11, Eccentricity: 0.9, Mass: 2.2e14},
}

func NewSolarSystem(method integrators.Method) *OrbitModel {
	m, err := NewOrbitModel(SolarMass, SolarSystemOrbits, method)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *OrbitModel) Advance(dt float64) {
	if dt <= 0 || len(m.Orbitals) == 0 {
		return
	}
	var tNew float64
	for _, o := range m.Orbitals {
		tNew = m.gravity.Step(m.time, o, dt)
	}
	m.time = tNew
}

func (m *OrbitModel) AdvanceTo(t float64) {
	m.Advance(t - m.time)
}

func (m *OrbitModel) Time() float64 { return m.time }

// Snapshot packs the orbitals row by row, like a body.Set table.
func (m *OrbitModel) Snapshot() dynamo.State {
	out := make(dynamo.State, 0, len(m.Orbitals)*body.Cols)
	for _, o := range m.Orbitals {
		out = append(out, o.State()...)
	}
	return out
}

func (m *OrbitModel) Evaluator() dynamo.Configurable { return m.gravity }

// Physics returns the bound evaluator.
func (m *OrbitModel) Physics() *physics.CentralGravity { return m.gravity }
