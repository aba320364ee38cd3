package vector

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b)) }

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want Vector
	}{
		{"empty", nil, Vector{}},
		{"one", []float64{1}, Vector{1, 0, 0}},
		{"two", []float64{1, 2}, Vector{1, 2, 0}},
		{"three", []float64{1, 2, 3}, Vector{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.in...)
			if err != nil {
				t.Fatalf("New(%v) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("New(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewTooManyComponents(t *testing.T) {
	_, err := New(1, 2, 3, 4)
	if !errors.Is(err, ErrTooManyComponents) {
		t.Fatalf("expected ErrTooManyComponents, got %v", err)
	}

	_, err = Vector{}.AddComponents(1, 2, 3, 4)
	if !errors.Is(err, ErrTooManyComponents) {
		t.Fatalf("AddComponents: expected ErrTooManyComponents, got %v", err)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	vs := []Vector{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 2, 3},
		{-4, 0.5, -2},
		{3e11, -1e10, 7},
	}

	for _, v := range vs {
		back := Spherical(v.R(), v.Theta(), v.Phi())
		eps := 1e-12 * math.Max(1, v.R())
		if math.Abs(back.X-v.X) > eps || math.Abs(back.Y-v.Y) > eps || math.Abs(back.Z-v.Z) > eps {
			t.Errorf("round trip of %v gave %v", v, back)
		}
	}
}

func TestSphericalSetters(t *testing.T) {
	v := Vector{3, 4, 0}

	scaled := v.WithR(10)
	if !near(scaled.X, 6) || !near(scaled.Y, 8) || math.Abs(scaled.Z) > 1e-12 {
		t.Errorf("WithR(10) = %v, want (6, 8, 0)", scaled)
	}

	rotated := Vector{1, 0, 0}.WithTheta(math.Pi / 2)
	if math.Abs(rotated.X) > 1e-12 || !near(rotated.Y, 1) {
		t.Errorf("WithTheta(pi/2) = %v, want (0, 1, 0)", rotated)
	}

	tilted := Vector{1, 0, 0}.WithPhi(0)
	if math.Abs(tilted.X) > 1e-12 || !near(tilted.Z, 1) {
		t.Errorf("WithPhi(0) = %v, want (0, 0, 1)", tilted)
	}
}

func TestArithmetic(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{4, 5, 6}

	if got := a.Add(b); got != (Vector{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vector{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vector{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
	if got := (Vector{1, 0, 0}).Cross(Vector{0, 1, 0}); got != (Vector{0, 0, 1}) {
		t.Errorf("Cross = %v", got)
	}

	sum, err := a.AddComponents(1)
	if err != nil || sum != (Vector{2, 2, 3}) {
		t.Errorf("AddComponents(1) = %v, %v", sum, err)
	}
	diff, err := a.SubComponents(1, 2)
	if err != nil || diff != (Vector{0, 0, 3}) {
		t.Errorf("SubComponents(1, 2) = %v, %v", diff, err)
	}
}

func TestUnit(t *testing.T) {
	u, err := Vector{0, 3, 4}.Unit()
	if err != nil {
		t.Fatal(err)
	}
	if !near(u.R(), 1) || !near(u.Y, 0.6) || !near(u.Z, 0.8) {
		t.Errorf("Unit = %v", u)
	}

	if _, err := (Vector{}).Unit(); !errors.Is(err, ErrZeroMagnitude) {
		t.Errorf("expected ErrZeroMagnitude, got %v", err)
	}
}
