package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
)

// Components of a body row.
const (
	X = iota
	Y
	Z
	VX
	VY
	VZ
)

var componentNames = []string{"x", "y", "z", "vx", "vy", "vz"}

// ParseComponent maps x, y, z, vx, vy or vz to its column in a body row.
func ParseComponent(s string) (int, error) {
	for i, name := range componentNames {
		if s == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown component %q (want one of %v)", s, componentNames)
}

// Index is the flattened state index of component c of row.
func Index(row, c int) int { return row*body.Cols + c }

// Column returns x[index] for every frame long enough to hold it.
func Column(states []dynamo.State, index int) []float64 {
	out := make([]float64, 0, len(states))
	for _, x := range states {
		if index >= 0 && index < len(x) {
			out = append(out, x[index])
		}
	}
	return out
}

// Radius returns the distance of row from the origin in every frame
// holding it.
func Radius(states []dynamo.State, row int) []float64 {
	out := make([]float64, 0, len(states))
	base := Index(row, X)
	for _, x := range states {
		if base < 0 || base+Z >= len(x) {
			continue
		}
		out = append(out, math.Sqrt(x[base]*x[base]+x[base+1]*x[base+1]+x[base+2]*x[base+2]))
	}
	return out
}
