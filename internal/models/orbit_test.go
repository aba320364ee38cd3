package models

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/physics"
)

func TestOrbitPerihelion(t *testing.T) {
	o := Orbit{SemiMajor: 2, Eccentricity: 0.5}
	pos, vel := o.Perihelion(4)

	if pos.X != 1 || pos.Y != 0 || pos.Z != 0 {
		t.Errorf("pos = %v, want (1, 0, 0)", pos)
	}
	if want := math.Sqrt(2 * 3); math.Abs(vel.Z-want) > 1e-12 || vel.X != 0 {
		t.Errorf("vel = %v, want (0, 0, %g)", vel, want)
	}
}

func TestSolarSystem(t *testing.T) {
	m := NewSolarSystem(integrators.MethodRK4)

	if len(m.Orbitals) != 5 {
		t.Fatalf("got %d orbitals, want 5", len(m.Orbitals))
	}
	if m.Names[2] != "Earth" {
		t.Errorf("third orbital is %q, want Earth", m.Names[2])
	}

	g := m.Physics()
	e0 := make([]float64, len(m.Orbitals))
	for i, o := range m.Orbitals {
		e0[i] = g.SpecificEnergy(o)
	}

	const day = 86400.0
	for i := 0; i < 30; i++ {
		m.Advance(day / 24)
	}

	if math.Abs(m.Time()-30*day/24) > 1e-6 {
		t.Errorf("time = %g", m.Time())
	}
	for i, o := range m.Orbitals {
		if i == 4 {
			// the comet at perihelion needs a smaller step
			continue
		}
		if drift := math.Abs((g.SpecificEnergy(o) - e0[i]) / e0[i]); drift > 1e-6 {
			t.Errorf("%s: relative energy drift %g", m.Names[i], drift)
		}
	}
}

func TestOrbitModelEarthYear(t *testing.T) {
	earth := SolarSystemOrbits[2]
	earth.Eccentricity = 0
	m, err := NewOrbitModel(SolarMass, []Orbit{earth}, integrators.MethodRK4)
	if err != nil {
		t.Fatal(err)
	}

	period := m.Physics().Period(earth.SemiMajor)
	steps := 1000
	for i := 0; i < steps; i++ {
		m.Advance(period / float64(steps))
	}

	pos := m.Orbitals[0].Pos
	if d := math.Abs(pos.X-earth.SemiMajor) / earth.SemiMajor; d > 1e-4 {
		t.Errorf("x after one year off by %g of a", d)
	}
	if r := pos.R() / earth.SemiMajor; math.Abs(r-1) > 1e-6 {
		t.Errorf("radius drifted to %g a", r)
	}
}

func TestOrbitModelRejectsOpenOrbits(t *testing.T) {
	for _, e := range []float64{1, 1.5, -0.1} {
		_, err := NewOrbitModel(SolarMass, []Orbit{{Name: "x", SemiMajor: 1, Eccentricity: e}}, integrators.MethodRK4)
		if !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("e=%g: err = %v, want ErrParameterBounds", e, err)
		}
	}
}

func TestOrbitModelEmpty(t *testing.T) {
	m, err := NewOrbitModel(SolarMass, nil, integrators.MethodRK4)
	if err != nil {
		t.Fatal(err)
	}
	m.Advance(1)
	if m.Time() != 0 {
		t.Errorf("time = %g, want 0 with nothing to step", m.Time())
	}
	if len(m.Snapshot()) != 0 {
		t.Error("snapshot of an empty model should be empty")
	}
	if _, ok := m.Evaluator().(*physics.CentralGravity); !ok {
		t.Error("evaluator should be central gravity")
	}
}

func TestCoolingModel(t *testing.T) {
	m := NewCoolingModel(90, 0.3, 20, integrators.MethodRK4)
	m.Advance(5)

	want := 20 + 70*math.Exp(-0.3*m.Time())
	if got := m.Snapshot()[0]; math.Abs(got-want) > 1e-6 {
		t.Errorf("T(%g) = %g, want %g", m.Time(), got, want)
	}
	if m.Time() < 5 || m.Time() > 5+m.DtMax {
		t.Errorf("time = %g, want within one step of 5", m.Time())
	}
}
