package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
)

// Frames that do not hold the watched rows are skipped by every metric in
// this file.

func row(x dynamo.State, i int) []float64 {
	if i < 0 || (i+1)*body.Cols > len(x) {
		return nil
	}
	return x[i*body.Cols : (i+1)*body.Cols]
}

// Momentum reports the largest |Σ mᵢvᵢ| seen.
type Momentum struct {
	masses []float64
	max    float64
}

func NewMomentum(masses []float64) *Momentum {
	return &Momentum{masses: append([]float64(nil), masses...)}
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(x dynamo.State, t float64) {
	if len(x) != len(m.masses)*body.Cols {
		return
	}
	var p [3]float64
	for i, mass := range m.masses {
		r := row(x, i)
		floats.AddScaled(p[:], mass, r[3:])
	}
	m.max = math.Max(m.max, floats.Norm(p[:], 2))
}

func (m *Momentum) Value() float64 { return m.max }

func (m *Momentum) Reset() { m.max = 0 }

// Separation reports the closest approach between two rows.
type Separation struct {
	a, b    int
	min     float64
	samples int
}

func NewSeparation(a, b int) *Separation {
	return &Separation{a: a, b: b, min: math.Inf(1)}
}

func (s *Separation) Name() string { return fmt.Sprintf("separation_%d_%d", s.a, s.b) }

func (s *Separation) Observe(x dynamo.State, t float64) {
	ra, rb := row(x, s.a), row(x, s.b)
	if ra == nil || rb == nil {
		return
	}
	s.min = math.Min(s.min, floats.Distance(ra[:3], rb[:3], 2))
	s.samples++
}

// Value is +Inf before any frame is observed.
func (s *Separation) Value() float64 { return s.min }

func (s *Separation) Reset() {
	s.min = math.Inf(1)
	s.samples = 0
}

// Radius tracks the distance of one row from the origin.
type Radius struct {
	row      int
	min, max float64
	samples  int
}

func NewRadius(row int) *Radius {
	return &Radius{row: row, min: math.Inf(1)}
}

func (r *Radius) Name() string { return fmt.Sprintf("radius_%d", r.row) }

func (r *Radius) Observe(x dynamo.State, t float64) {
	p := row(x, r.row)
	if p == nil {
		return
	}
	d := floats.Norm(p[:3], 2)
	r.min = math.Min(r.min, d)
	r.max = math.Max(r.max, d)
	r.samples++
}

// Value is the largest radius seen.
func (r *Radius) Value() float64 { return r.max }

func (r *Radius) Min() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.min
}

// Eccentricity estimates (max-min)/(max+min) from the observed extremes.
func (r *Radius) Eccentricity() float64 {
	if r.samples == 0 || r.max+r.min == 0 {
		return 0
	}
	return (r.max - r.min) / (r.max + r.min)
}

func (r *Radius) Reset() {
	r.min, r.max = math.Inf(1), 0
	r.samples = 0
}

// Speed reports the mean speed of one row.
type Speed struct {
	row     int
	sum     float64
	samples int
}

func NewSpeed(row int) *Speed {
	return &Speed{row: row}
}

func (s *Speed) Name() string { return fmt.Sprintf("speed_%d", s.row) }

func (s *Speed) Observe(x dynamo.State, t float64) {
	p := row(x, s.row)
	if p == nil {
		return
	}
	s.sum += floats.Norm(p[3:], 2)
	s.samples++
}

func (s *Speed) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Speed) Reset() {
	s.sum = 0
	s.samples = 0
}

var (
	_ dynamo.Metric = (*Energy)(nil)
	_ dynamo.Metric = (*EnergyDrift)(nil)
	_ dynamo.Metric = (*Stability)(nil)
	_ dynamo.Metric = (*Momentum)(nil)
	_ dynamo.Metric = (*Separation)(nil)
	_ dynamo.Metric = (*Radius)(nil)
	_ dynamo.Metric = (*Speed)(nil)
)
