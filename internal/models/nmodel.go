package models

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/physics"
	"github.com/san-kum/astrogolf/internal/vector"
)

// NModelDtMax is the largest sub-step NModel hands to the N-body solver.
const NModelDtMax = 0.001

// NModel drives a body.Set under all-pairs gravity.
type NModel struct {
	set    *body.Set
	nbody  *physics.NBody
	time   float64
	dtMax  float64
	method integrators.Method

	normalize bool
	pinned    map[int]vector.Vector
}

type Option func(*NModel)

// WithoutNormalization keeps the initial frame as given instead of moving
// the center of mass to rest at the origin.
func WithoutNormalization() Option {
	return func(m *NModel) { m.normalize = false }
}

func WithMethod(method integrators.Method) Option {
	return func(m *NModel) { m.method = method }
}

// WithDtMax overrides the sub-step ceiling.
func WithDtMax(dt float64) Option {
	return func(m *NModel) {
		if dt > 0 {
			m.dtMax = dt
		}
	}
}

// WithPinned holds the given rows at their starting positions, at rest,
// after every sub-step. They still attract everything else.
func WithPinned(rows ...int) Option {
	return func(m *NModel) {
		for _, r := range rows {
			m.pinned[r] = vector.Vector{}
		}
	}
}

// NewNModel takes ownership of set. Unless WithoutNormalization is given,
// the mass-weighted mean row is subtracted from every row first.
func NewNModel(set *body.Set, opts ...Option) (*NModel, error) {
	m := &NModel{
		set:       set,
		dtMax:     NModelDtMax,
		method:    integrators.MethodRK4,
		normalize: true,
		pinned:    make(map[int]vector.Vector),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.nbody = physics.NewNBody(m.method)

	if m.normalize {
		m.set.Normalize()
	}
	for r := range m.pinned {
		b, err := m.set.Get(r)
		if err != nil {
			return nil, fmt.Errorf("pinned row %d: %w", r, err)
		}
		m.pinned[r] = b.Pos
	}
	m.applyPins()
	return m, nil
}

func (m *NModel) Advance(dt float64) {
	m.time = substep(m.time, dt, m.dtMax, func(t, h float64) float64 {
		next := m.nbody.Step(t, m.set, h)
		m.applyPins()
		return next
	})
}

func (m *NModel) AdvanceTo(t float64) {
	m.Advance(t - m.time)
}

func (m *NModel) Time() float64 { return m.time }

func (m *NModel) DtMax() float64 { return m.dtMax }

func (m *NModel) Snapshot() dynamo.State { return m.set.State() }

func (m *NModel) Evaluator() dynamo.Configurable { return m.nbody }

// Physics returns the bound evaluator, for its energy and momentum
// diagnostics.
func (m *NModel) Physics() *physics.NBody { return m.nbody }

func (m *NModel) Len() int { return m.set.Len() }

func (m *NModel) Masses() []float64 { return m.set.Masses() }

// Body returns a copy of row i.
func (m *NModel) Body(i int) (body.Body, error) { return m.set.Get(i) }

// Bodies returns a copy of the whole set.
func (m *NModel) Bodies() *body.Set { return m.set.Clone() }

// SetRow overwrites the position and velocity of row i. This is the only
// way to reposition bodies from outside the integration.
func (m *NModel) SetRow(i int, pos, vel vector.Vector) error {
	return m.set.SetRow(i, pos, vel)
}

func (m *NModel) SetPosition(i int, pos vector.Vector) error {
	return m.set.SetPosition(i, pos)
}

// AddVelocity kicks row i by dv.
func (m *NModel) AddVelocity(i int, dv vector.Vector) error {
	return m.set.AddVelocity(i, dv)
}

// Aim sets the velocity of row i to speed along a heading measured in
// degrees in the x-z plane, where 0 points along +x and 90 along -z.
func (m *NModel) Aim(i int, speed, degrees float64) error {
	b, err := m.set.Get(i)
	if err != nil {
		return err
	}
	return m.set.SetRow(i, b.Pos, AimVelocity(speed, degrees))
}

// Append adds a body and returns its row index.
func (m *NModel) Append(pos, vel vector.Vector, mass float64) int {
	m.set.Append(pos, vel, mass)
	return m.set.Len() - 1
}

// Remove drops every row whose mask entry is true. Pins on later rows
// follow their bodies; pins on removed rows are released.
func (m *NModel) Remove(mask []bool) error {
	keep := make([]bool, len(mask))
	for i, drop := range mask {
		keep[i] = !drop
	}
	if err := m.set.Keep(keep); err != nil {
		return err
	}

	if len(m.pinned) == 0 {
		return nil
	}
	remap := make(map[int]vector.Vector, len(m.pinned))
	shift := 0
	for i, drop := range mask {
		if drop {
			shift++
			continue
		}
		if p, ok := m.pinned[i]; ok {
			remap[i-shift] = p
		}
	}
	m.pinned = remap
	return nil
}

// Truncate keeps the first n rows.
func (m *NModel) Truncate(n int) error {
	if err := m.set.Truncate(n); err != nil {
		return err
	}
	for r := range m.pinned {
		if r >= n {
			delete(m.pinned, r)
		}
	}
	return nil
}

// Pinned lists the pinned rows in ascending order.
func (m *NModel) Pinned() []int {
	rows := make([]int, 0, len(m.pinned))
	for r := range m.pinned {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

func (m *NModel) applyPins() {
	for r, pos := range m.pinned {
		_ = m.set.SetRow(r, pos, vector.Vector{})
	}
}

// AimVelocity converts a speed and a heading in degrees to a velocity in
// the x-z plane.
func AimVelocity(speed, degrees float64) vector.Vector {
	return vector.Spherical(speed, 0, (degrees+90)*math.Pi/180)
}
