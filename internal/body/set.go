package body

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/vector"
)

// Cols is the width of a state table row: x, y, z, vx, vy, vz.
const Cols = 6

// Set is an ordered collection of bodies stored as a row-major N×6 state
// table plus an index-aligned mass slice. The table and the masses always
// have the same length. Every mutation rebinds the storage, so slices
// handed out by State, Masses and Row never alias the set.
type Set struct {
	state  dynamo.State
	masses []float64
}

// NewSet builds a set from N position rows, N velocity rows and N masses.
// Rows shorter than 3 are zero-filled.
func NewSet(pos, vel [][]float64, masses []float64) (*Set, error) {
	if len(pos) != len(masses) || len(vel) != len(masses) {
		return nil, fmt.Errorf("%w: %d positions, %d velocities, %d masses",
			ErrDimensionMismatch, len(pos), len(vel), len(masses))
	}

	s := &Set{
		state:  make(dynamo.State, 0, len(masses)*Cols),
		masses: append([]float64(nil), masses...),
	}
	for i := range masses {
		p, err := vector.FromSlice(pos[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		v, err := vector.FromSlice(vel[i])
		if err != nil {
			return nil, fmt.Errorf("velocity %d: %w", i, err)
		}
		s.state = append(s.state, p.X, p.Y, p.Z, v.X, v.Y, v.Z)
	}
	return s, nil
}

// NewSetFromState builds a set from a flattened N×6 table.
func NewSetFromState(state []float64, masses []float64) (*Set, error) {
	if len(state) != len(masses)*Cols {
		return nil, fmt.Errorf("%w: state has %d values for %d masses",
			ErrDimensionMismatch, len(state), len(masses))
	}
	return &Set{
		state:  append(dynamo.State(nil), state...),
		masses: append([]float64(nil), masses...),
	}, nil
}

func (s *Set) Len() int { return len(s.masses) }

// State returns a copy of the flattened table.
func (s *Set) State() dynamo.State { return s.state.Clone() }

// SetState replaces the whole table. The length must match the mass count.
func (s *Set) SetState(state dynamo.State) error {
	if len(state) != len(s.masses)*Cols {
		return fmt.Errorf("%w: state has %d values for %d bodies",
			ErrDimensionMismatch, len(state), len(s.masses))
	}
	s.state = state.Clone()
	return nil
}

// Masses returns a copy of the mass slice.
func (s *Set) Masses() []float64 { return append([]float64(nil), s.masses...) }

func (s *Set) Mass(i int) float64 { return s.masses[i] }

// Table returns a copy of the state as an N×6 matrix, or nil for an empty set.
func (s *Set) Table() *mat.Dense {
	if s.Len() == 0 {
		return nil
	}
	return mat.NewDense(s.Len(), Cols, s.state.Clone())
}

// Row returns a copy of row i.
func (s *Set) Row(i int) ([]float64, error) {
	if err := s.check(i); err != nil {
		return nil, err
	}
	return append([]float64(nil), s.state[i*Cols:(i+1)*Cols]...), nil
}

// Get materialises row i as a Body. The result is a copy: writing to it
// does not change the set. Use SetRow to change a row.
func (s *Set) Get(i int) (Body, error) {
	if err := s.check(i); err != nil {
		return Body{}, err
	}
	var b Body
	b.Mass = s.masses[i]
	_ = b.SetState(s.state[i*Cols : (i+1)*Cols])
	return b, nil
}

// SetRow overwrites the position and velocity of row i.
func (s *Set) SetRow(i int, pos, vel vector.Vector) error {
	if err := s.check(i); err != nil {
		return err
	}
	next := s.state.Clone()
	copy(next[i*Cols:], []float64{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z})
	s.state = next
	return nil
}

// SetPosition overwrites the position of row i and keeps its velocity.
func (s *Set) SetPosition(i int, pos vector.Vector) error {
	if err := s.check(i); err != nil {
		return err
	}
	next := s.state.Clone()
	copy(next[i*Cols:], []float64{pos.X, pos.Y, pos.Z})
	s.state = next
	return nil
}

// AddVelocity adds dv to the velocity of row i.
func (s *Set) AddVelocity(i int, dv vector.Vector) error {
	if err := s.check(i); err != nil {
		return err
	}
	next := s.state.Clone()
	next[i*Cols+3] += dv.X
	next[i*Cols+4] += dv.Y
	next[i*Cols+5] += dv.Z
	s.state = next
	return nil
}

// Append adds a body as the last row.
func (s *Set) Append(pos, vel vector.Vector, mass float64) {
	next := make(dynamo.State, len(s.state), len(s.state)+Cols)
	copy(next, s.state)
	s.state = append(next, pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z)
	s.masses = append(append([]float64(nil), s.masses...), mass)
}

// Truncate keeps the first n rows.
func (s *Set) Truncate(n int) error {
	if n < 0 || n > s.Len() {
		return fmt.Errorf("%w: truncate to %d of %d", ErrIndexOutOfRange, n, s.Len())
	}
	s.state = append(dynamo.State(nil), s.state[:n*Cols]...)
	s.masses = append([]float64(nil), s.masses[:n]...)
	return nil
}

// Keep drops every row whose mask entry is false.
func (s *Set) Keep(mask []bool) error {
	if len(mask) != s.Len() {
		return fmt.Errorf("%w: mask has %d entries for %d bodies",
			ErrDimensionMismatch, len(mask), s.Len())
	}
	state := make(dynamo.State, 0, len(s.state))
	masses := make([]float64, 0, len(s.masses))
	for i, keep := range mask {
		if !keep {
			continue
		}
		state = append(state, s.state[i*Cols:(i+1)*Cols]...)
		masses = append(masses, s.masses[i])
	}
	s.state, s.masses = state, masses
	return nil
}

// CenterOfMass returns the mass-weighted average row: the centre of mass
// position followed by its velocity. An empty set has its centre of mass
// at rest at the origin.
func (s *Set) CenterOfMass() dynamo.State {
	cm := make(dynamo.State, Cols)
	if s.Len() == 0 {
		return cm
	}
	table := mat.NewDense(s.Len(), Cols, s.state)
	col := make([]float64, s.Len())
	for j := 0; j < Cols; j++ {
		mat.Col(col, j, table)
		cm[j] = stat.Mean(col, s.masses)
	}
	return cm
}

// Normalize moves the frame so the centre of mass sits at rest at the origin.
func (s *Set) Normalize() {
	cm := s.CenterOfMass()
	next := s.state.Clone()
	for i := 0; i < s.Len(); i++ {
		for j := 0; j < Cols; j++ {
			next[i*Cols+j] -= cm[j]
		}
	}
	s.state = next
}

func (s *Set) Clone() *Set {
	return &Set{state: s.state.Clone(), masses: s.Masses()}
}

func (s *Set) check(i int) error {
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, s.Len())
	}
	return nil
}
