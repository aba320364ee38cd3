package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/astrogolf/internal/config"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/logging"
	"github.com/san-kum/astrogolf/internal/models"
)

// Pseudo-parameters that aim the player instead of tuning the evaluator.
const (
	AngleParam = "angle"
	SpeedParam = "speed"
)

var ErrInvalidSweep = errors.New("experiment: invalid sweep")

// Sweep runs a scenario across evenly spaced values of one parameter.
// Param is an evaluator parameter such as "g" or "drag", or AngleParam or
// SpeedParam to aim the n-body player. When aiming, Speed and Angle hold
// the half of the aim that is not being swept.
type Sweep struct {
	Param    string
	Min, Max float64
	Steps    int
	Speed    float64
	Angle    float64
	// Workers bounds concurrent runs; zero means GOMAXPROCS.
	Workers int
}

// Values returns the swept parameter values in order.
func (s Sweep) Values() []float64 {
	if s.Steps == 1 {
		return []float64{s.Min}
	}
	out := make([]float64, s.Steps)
	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	return out
}

func (s Sweep) validate() error {
	if s.Param == "" {
		return fmt.Errorf("%w: no parameter", ErrInvalidSweep)
	}
	if s.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidSweep, s.Steps)
	}
	return nil
}

// SweepResult holds one point of a sweep.
type SweepResult struct {
	Value      float64
	FinalState dynamo.State
	Metrics    map[string]float64
	Frames     int
}

// RunSweep runs every point of sw concurrently. Results come back in the
// order of sw.Values. The first failing point cancels the rest.
func RunSweep(ctx context.Context, sc *config.Scenario, sw Sweep, reg *Registry, logger *slog.Logger) ([]SweepResult, error) {
	if err := sw.validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry()
	}
	logger = logging.OrDiscard(logger)
	values := sw.Values()
	results := make([]SweepResult, len(values))

	workers := sw.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, v := range values {
		g.Go(func() error {
			res, err := runPoint(ctx, sc, sw, v, reg)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sw.Param, v, err)
			}
			results[i] = res
			logger.Debug("sweep point done", "param", sw.Param, "value", v, "frames", res.Frames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("sweep finished", "param", sw.Param, "points", len(values))
	return results, nil
}

func runPoint(ctx context.Context, sc *config.Scenario, sw Sweep, v float64, reg *Registry) (SweepResult, error) {
	point := sc.Clone()
	aiming := sw.Param == AngleParam || sw.Param == SpeedParam
	if !aiming {
		if point.Params == nil {
			point.Params = make(map[string]float64)
		}
		point.Params[sw.Param] = v
	}

	e, err := New(point, WithRegistry(reg))
	if err != nil {
		return SweepResult{}, err
	}
	if aiming {
		speed, angle := sw.Speed, sw.Angle
		if sw.Param == AngleParam {
			angle = v
		} else {
			speed = v
		}
		if err := aimPlayer(e.Model(), point.Bodies.Player, speed, angle); err != nil {
			return SweepResult{}, err
		}
	}

	result, err := e.Run(ctx)
	if err != nil {
		return SweepResult{}, err
	}
	res := SweepResult{Value: v, Metrics: result.Metrics, Frames: result.Frames}
	if n := len(result.States); n > 0 {
		res.FinalState = result.States[n-1]
	}
	return res, nil
}

// ErrNotAimable is returned when aiming a model without n-body rows.
var ErrNotAimable = errors.New("experiment: only n-body scenarios can be aimed")

func aimPlayer(m models.Model, player int, speed, angle float64) error {
	n, ok := m.(*models.NModel)
	if !ok {
		return ErrNotAimable
	}
	return n.Aim(player, speed, angle)
}
