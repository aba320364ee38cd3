package metrics

import (
	"math"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

// EnergyFunc evaluates the total energy of a state.
type EnergyFunc func(x dynamo.State) float64

// Energy reports the mean energy over the observed frames.
type Energy struct {
	name        string
	energy      EnergyFunc
	samples     int
	totalEnergy float64
}

func NewEnergy(fn EnergyFunc) *Energy {
	return &Energy{
		name:   "energy",
		energy: fn,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	e.totalEnergy += e.energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative departure from the energy of
// the first observed frame.
type EnergyDrift struct {
	name          string
	energy        EnergyFunc
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(fn EnergyFunc) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: fn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
