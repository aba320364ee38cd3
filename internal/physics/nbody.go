package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/vector"
)

// KeplerG is G in AU³ / (M☉ · yr²).
const KeplerG = 4 * math.Pi * math.Pi

// NBody integrates all-pairs Newtonian gravity over a body.Set. The solver
// parameter is the mass slice, index-aligned with the table rows.
type NBody struct {
	G      float64
	solver dynamo.Solver[[]float64]
}

func NewNBody(method integrators.Method) *NBody {
	nb := &NBody{G: KeplerG}
	nb.solver = integrators.New[[]float64](method, nb.Derive)
	return nb
}

// Step advances every row of s by dt and returns the new time.
func (nb *NBody) Step(t float64, s *body.Set, dt float64) float64 {
	if s.Len() == 0 {
		return t + dt
	}
	tNext, next := nb.solver.Step(t, s.State(), dt, s.Masses())
	_ = s.SetState(next)
	return tNext
}

// Derive returns [velocities | accelerations] row by row. The identity is
// added to the squared-distance matrix so the diagonal raises 1 rather than
// 0 to the -3/2; the matching difference is 0, so self terms vanish.
func (nb *NBody) Derive(_ float64, x dynamo.State, masses []float64) dynamo.State {
	n := len(masses)
	dx := make(dynamo.State, len(x))
	if n == 0 {
		return dx
	}

	var diff [3]*mat.Dense
	d2 := mat.NewDense(n, n, nil)
	for k := range diff {
		data := make([]float64, n*n)
		for i := 0; i < n; i++ {
			pi := x[i*body.Cols+k]
			for j := 0; j < n; j++ {
				data[i*n+j] = pi - x[j*body.Cols+k]
			}
		}
		diff[k] = mat.NewDense(n, n, data)

		var sq mat.Dense
		sq.MulElem(diff[k], diff[k])
		d2.Add(d2, &sq)
	}

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	d2.Add(d2, mat.NewDiagDense(n, ones))

	var denom mat.Dense
	denom.Apply(func(_, _ int, v float64) float64 {
		return math.Pow(v, -1.5)
	}, d2)

	m := mat.NewVecDense(n, masses)
	w := mat.NewDense(n, n, nil)
	acc := mat.NewVecDense(n, nil)
	for k := range diff {
		w.MulElem(&denom, diff[k])
		acc.MulVec(w, m)
		for i := 0; i < n; i++ {
			dx[i*body.Cols+k] = x[i*body.Cols+3+k]
			dx[i*body.Cols+3+k] = -nb.G * acc.AtVec(i)
		}
	}
	return dx
}

// Accelerations evaluates the gravitational acceleration on every row of s.
func (nb *NBody) Accelerations(s *body.Set) []vector.Vector {
	d := nb.Derive(0, s.State(), s.Masses())
	out := make([]vector.Vector, s.Len())
	for i := range out {
		o := i * body.Cols
		out[i] = vector.Vector{X: d[o+3], Y: d[o+4], Z: d[o+5]}
	}
	return out
}

// Momentum is Σ mᵢvᵢ.
func (nb *NBody) Momentum(s *body.Set) vector.Vector {
	x := s.State()
	var p vector.Vector
	for i := 0; i < s.Len(); i++ {
		v, _ := vector.FromSlice(x[i*body.Cols+3 : (i+1)*body.Cols])
		p = p.Add(v.Scale(s.Mass(i)))
	}
	return p
}

func (nb *NBody) KineticEnergy(s *body.Set) float64 {
	x := s.State()
	var ke float64
	for i := 0; i < s.Len(); i++ {
		v := x[i*body.Cols+3 : (i+1)*body.Cols]
		ke += 0.5 * s.Mass(i) * floats.Dot(v, v)
	}
	return ke
}

// PotentialEnergy sums -G mᵢ mⱼ / rᵢⱼ over distinct pairs.
func (nb *NBody) PotentialEnergy(s *body.Set) float64 {
	x := s.State()
	var pe float64
	for i := 0; i < s.Len(); i++ {
		pi := x[i*body.Cols : i*body.Cols+3]
		for j := i + 1; j < s.Len(); j++ {
			r := floats.Distance(pi, x[j*body.Cols:j*body.Cols+3], 2)
			pe -= nb.G * s.Mass(i) * s.Mass(j) / r
		}
	}
	return pe
}

func (nb *NBody) Energy(s *body.Set) float64 {
	return nb.KineticEnergy(s) + nb.PotentialEnergy(s)
}

// CenterOfMass returns the mass-weighted mean row of s.
func (nb *NBody) CenterOfMass(s *body.Set) dynamo.State {
	return s.CenterOfMass()
}

func (nb *NBody) GetParams() map[string]float64 {
	return map[string]float64{"g": nb.G}
}

func (nb *NBody) SetParam(name string, value float64) error {
	if name != "g" {
		return fmt.Errorf("unknown param: %s", name)
	}
	nb.G = value
	return nil
}
