package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

// Stability is the fraction of frames that are finite with no coordinate
// past the threshold. It also remembers when the first bad frame came.
type Stability struct {
	threshold float64
	bad       int
	frames    int
	firstBad  float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold, firstBad: math.NaN()}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.frames++
	if len(x) == 0 {
		return
	}
	if x.IsValid() && floats.Norm(x, math.Inf(1)) <= s.threshold {
		return
	}
	if s.bad == 0 {
		s.firstBad = t
	}
	s.bad++
}

// Value is 1 for an empty or fully stable run.
func (s *Stability) Value() float64 {
	if s.frames == 0 {
		return 1
	}
	return 1 - float64(s.bad)/float64(s.frames)
}

// FirstViolation is the time of the first unstable frame, or NaN.
func (s *Stability) FirstViolation() float64 { return s.firstBad }

func (s *Stability) Reset() {
	s.bad, s.frames = 0, 0
	s.firstBad = math.NaN()
}
