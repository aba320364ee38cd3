// Package body holds the physical state integrated by the physics
// evaluators: a single massive point ([Body]), a packed table of N such
// points ([Set]) and a lumped thermal mass ([Thermal]).
package body

import (
	"errors"

	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/vector"
)

var (
	ErrDimensionMismatch = errors.New("body: dimension mismatch")
	ErrIndexOutOfRange   = errors.New("body: index out of range")
)

// Body is a single massive point. Mass divides the drag term of uniform
// gravity and must be non-zero when drag is enabled.
type Body struct {
	Mass float64
	Pos  vector.Vector
	Vel  vector.Vector
}

func New(mass float64, pos, vel vector.Vector) *Body {
	return &Body{Mass: mass, Pos: pos, Vel: vel}
}

// State packs the body as [x, y, z, vx, vy, vz].
func (b *Body) State() dynamo.State {
	return dynamo.State{b.Pos.X, b.Pos.Y, b.Pos.Z, b.Vel.X, b.Vel.Y, b.Vel.Z}
}

// SetState unpacks a 6-component state into position and velocity.
func (b *Body) SetState(s dynamo.State) error {
	if len(s) != Cols {
		return ErrDimensionMismatch
	}
	b.Pos = vector.Vector{X: s[0], Y: s[1], Z: s[2]}
	b.Vel = vector.Vector{X: s[3], Y: s[4], Z: s[5]}
	return nil
}

// Thermal is an object with a temperature cooling towards its surroundings
// at rate K.
type Thermal struct {
	Temperature float64
	K           float64
}
