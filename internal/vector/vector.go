// Package vector provides the three-component geometric value used for
// body positions and velocities.
//
// Vectors are values: every operation returns a new Vector. Cartesian
// arithmetic is delegated to gonum's spatial/r3 package; the spherical
// accessors follow the physics convention
//
//	x = r·sin(phi)·cos(theta)
//	y = r·sin(phi)·sin(theta)
//	z = r·cos(phi)
//
// where theta is the azimuth in the x-y plane and phi the polar angle
// measured from the z-axis.
package vector

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrTooManyComponents is returned when a Vector is built from more than 3 values.
	ErrTooManyComponents = errors.New("vector: at most 3 components allowed")

	// ErrZeroMagnitude is returned when a direction is requested from a zero vector.
	ErrZeroMagnitude = errors.New("vector: zero magnitude has no direction")
)

type Vector struct {
	X, Y, Z float64
}

// New builds a Vector from up to three components. Missing components are zero.
func New(c ...float64) (Vector, error) {
	var v Vector
	switch {
	case len(c) > 3:
		return Vector{}, fmt.Errorf("%w: got %d", ErrTooManyComponents, len(c))
	case len(c) == 3:
		v.Z = c[2]
		fallthrough
	case len(c) == 2:
		v.Y = c[1]
		fallthrough
	case len(c) == 1:
		v.X = c[0]
	}
	return v, nil
}

// FromSlice is New for a slice, typically a block of a state row.
func FromSlice(s []float64) (Vector, error) {
	return New(s...)
}

// Spherical builds a Vector from magnitude, azimuth and polar angle.
func Spherical(r, theta, phi float64) Vector {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vector{
		X: r * sinPhi * cosTheta,
		Y: r * sinPhi * sinTheta,
		Z: r * cosPhi,
	}
}

func FromR3(p r3.Vec) Vector { return Vector{X: p.X, Y: p.Y, Z: p.Z} }

func (v Vector) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func (v Vector) Slice() []float64 { return []float64{v.X, v.Y, v.Z} }

func (v Vector) Add(o Vector) Vector { return FromR3(r3.Add(v.R3(), o.R3())) }

func (v Vector) Sub(o Vector) Vector { return FromR3(r3.Sub(v.R3(), o.R3())) }

// AddComponents coerces c into a Vector and adds it.
func (v Vector) AddComponents(c ...float64) (Vector, error) {
	o, err := New(c...)
	if err != nil {
		return Vector{}, err
	}
	return v.Add(o), nil
}

// SubComponents coerces c into a Vector and subtracts it.
func (v Vector) SubComponents(c ...float64) (Vector, error) {
	o, err := New(c...)
	if err != nil {
		return Vector{}, err
	}
	return v.Sub(o), nil
}

func (v Vector) Scale(f float64) Vector { return FromR3(r3.Scale(f, v.R3())) }

func (v Vector) Dot(o Vector) float64 { return r3.Dot(v.R3(), o.R3()) }

func (v Vector) Cross(o Vector) Vector { return FromR3(r3.Cross(v.R3(), o.R3())) }

// R is the magnitude.
func (v Vector) R() float64 { return r3.Norm(v.R3()) }

// Theta is the azimuth in the x-y plane, atan2(y, x).
func (v Vector) Theta() float64 { return math.Atan2(v.Y, v.X) }

// Phi is the polar angle from the z-axis.
func (v Vector) Phi() float64 { return math.Atan2(math.Hypot(v.X, v.Y), v.Z) }

// Dist returns |v - o|.
func (v Vector) Dist(o Vector) float64 { return v.Sub(o).R() }

// Unit returns v scaled to magnitude 1.
func (v Vector) Unit() (Vector, error) {
	if v.R() == 0 {
		return Vector{}, ErrZeroMagnitude
	}
	return FromR3(r3.Unit(v.R3())), nil
}

// WithR keeps the direction of v and replaces its magnitude. A zero vector
// has theta = phi = 0, so the result points along +z.
func (v Vector) WithR(r float64) Vector {
	return Spherical(r, v.Theta(), v.Phi())
}

func (v Vector) WithTheta(theta float64) Vector {
	return Spherical(v.R(), theta, v.Phi())
}

func (v Vector) WithPhi(phi float64) Vector {
	return Spherical(v.R(), v.Theta(), phi)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
