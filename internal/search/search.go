// Package search finds roots and minima of scalar functions of one
// variable on a bracket. The experiment layer uses it to aim launches:
// every evaluation of the objective is a full simulation run.
package search

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotBracketed  = errors.New("search: bracket does not straddle a root")
	ErrMaxIterations = errors.New("search: iteration limit reached")
)

// DefaultMaxIterations bounds IterateUntil when the caller passes 0.
const DefaultMaxIterations = 200

// Func is an objective. It may be expensive.
type Func func(x float64) float64

// Bisection halves a sign-changing bracket until the midpoint's residual
// is within tolerance.
type Bisection struct {
	Left, Right float64

	fn    Func
	fLeft float64
	evals int
}

func NewBisection(left, right float64, fn Func) (*Bisection, error) {
	b := &Bisection{Left: left, Right: right, fn: fn}
	b.fLeft = b.eval(left)
	fRight := b.eval(right)
	if b.fLeft*fRight > 0 {
		return nil, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrNotBracketed, left, b.fLeft, right, fRight)
	}
	return b, nil
}

// Iterate evaluates the midpoint, keeps the half whose ends differ in
// sign, and returns the midpoint with its absolute residual.
func (b *Bisection) Iterate() (mid, residual float64) {
	mid = (b.Left + b.Right) / 2
	f := b.eval(mid)
	switch {
	case f == 0:
		b.Left, b.Right = mid, mid
	case f*b.fLeft < 0:
		b.Right = mid
	default:
		b.Left, b.fLeft = mid, f
	}
	return mid, math.Abs(f)
}

// IterateUntil iterates until the residual is at most tolerance.
func (b *Bisection) IterateUntil(tolerance float64, maxIter int) (float64, error) {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	var mid, residual float64
	for i := 0; i < maxIter; i++ {
		mid, residual = b.Iterate()
		if residual <= tolerance {
			return mid, nil
		}
	}
	return mid, fmt.Errorf("%w: residual %g after %d iterations", ErrMaxIterations, residual, maxIter)
}

// Evaluations counts objective calls so far.
func (b *Bisection) Evaluations() int { return b.evals }

func (b *Bisection) eval(x float64) float64 {
	b.evals++
	return b.fn(x)
}

// GoldenRatio is the interior-point fraction 0.5(√5 - 1).
var GoldenRatio = 0.5 * (math.Sqrt(5) - 1)

// GoldenSection narrows a bracket around a minimum of a unimodal function,
// reusing one interior evaluation per iteration.
type GoldenSection struct {
	Left, Right float64

	fn     Func
	m1, m2 float64 // m2 < m1
	f1, f2 float64
	evals  int
}

func NewGoldenSection(left, right float64, fn Func) *GoldenSection {
	g := &GoldenSection{Left: left, Right: right, fn: fn}
	l := (right - left) * GoldenRatio
	g.m1 = left + l
	g.m2 = right - l
	g.f1 = g.eval(g.m1)
	g.f2 = g.eval(g.m2)
	return g
}

// Iterate drops the outer segment on the side of the larger interior
// value and returns the new bracket width.
func (g *GoldenSection) Iterate() float64 {
	if g.f1 <= g.f2 {
		g.Left = g.m2
		g.m2, g.f2 = g.m1, g.f1
		g.m1 = g.Left + GoldenRatio*(g.Right-g.Left)
		g.f1 = g.eval(g.m1)
	} else {
		g.Right = g.m1
		g.m1, g.f1 = g.m2, g.f2
		g.m2 = g.Right - GoldenRatio*(g.Right-g.Left)
		g.f2 = g.eval(g.m2)
	}
	return math.Abs(g.Right - g.Left)
}

// IterateUntil narrows the bracket to at most tolerance wide and returns
// its midpoint.
func (g *GoldenSection) IterateUntil(tolerance float64, maxIter int) (float64, error) {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	width := math.Abs(g.Right - g.Left)
	for i := 0; i < maxIter && width > tolerance; i++ {
		width = g.Iterate()
	}
	mid := (g.Left + g.Right) / 2
	if width > tolerance {
		return mid, fmt.Errorf("%w: bracket %g wide after %d iterations", ErrMaxIterations, width, maxIter)
	}
	return mid, nil
}

// Best returns the better interior point and its value.
func (g *GoldenSection) Best() (x, fx float64) {
	if g.f1 <= g.f2 {
		return g.m1, g.f1
	}
	return g.m2, g.f2
}

func (g *GoldenSection) Evaluations() int { return g.evals }

func (g *GoldenSection) eval(x float64) float64 {
	g.evals++
	return g.fn(x)
}
