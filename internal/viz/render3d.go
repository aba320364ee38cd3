package viz

import (
	"math"

	"github.com/san-kum/astrogolf/internal/vector"
)

// Camera rotates world points before they are flattened onto the screen.
// With no rotation it looks down the y axis, so the x-z orbital plane of
// the n-body presets fills the view.
type Camera struct {
	RotX, RotY, RotZ float64
	Distance         float64
	Perspective      bool
}

func NewCamera() *Camera {
	return &Camera{Distance: 50}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) Reset()            { c.RotX, c.RotY, c.RotZ = 0, 0, 0 }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p vector.Vector) vector.Vector {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Flatten returns the screen-plane coordinates of p: rotated x across and
// rotated z up, with rotated y as depth. Points behind a perspective
// camera are reported invisible.
func (c *Camera) Flatten(p vector.Vector) (x, y float64, visible bool) {
	r := c.RotatePoint(p)
	if !c.Perspective {
		return r.X, r.Z, true
	}
	if r.Y >= c.Distance {
		return 0, 0, false
	}
	s := c.Distance / (c.Distance - r.Y)
	return r.X * s, r.Z * s, true
}
