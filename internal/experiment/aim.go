package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/astrogolf/internal/config"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/metrics"
	"github.com/san-kum/astrogolf/internal/models"
	"github.com/san-kum/astrogolf/internal/search"
	"github.com/san-kum/astrogolf/internal/sim"
	"github.com/san-kum/astrogolf/internal/vector"
)

// MissDistance plays sc with the player aimed at speed along angle
// degrees and returns the closest the player gets to the target row.
func MissDistance(ctx context.Context, reg *Registry, sc *config.Scenario, target int, speed, angle float64) (float64, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	e, err := New(sc, WithRegistry(reg))
	if err != nil {
		return 0, err
	}
	player := e.Scenario().Bodies.Player
	if err := aimPlayer(e.Model(), player, speed, angle); err != nil {
		return 0, err
	}
	if n := e.Model().(*models.NModel); target < 0 || target >= n.Len() || target == player {
		return 0, fmt.Errorf("target row %d: %w", target, dynamo.ErrParameterBounds)
	}

	sep := metrics.NewSeparation(player, target)
	s := sim.New(e.Model())
	err = s.RunWithCallback(ctx, e.Config(), func(_ int, x dynamo.State, t float64) bool {
		sep.Observe(x, t)
		return true
	})
	if err != nil {
		return 0, err
	}
	return sep.Value(), nil
}

// AimResult is the outcome of FindAim.
type AimResult struct {
	Angle       float64
	Distance    float64
	Evaluations int
}

// FindAim searches [lo, hi] degrees for the heading that brings the
// player closest to target at the given speed. The miss distance is
// assumed unimodal over the bracket; narrow it when it is not.
func FindAim(ctx context.Context, reg *Registry, sc *config.Scenario, target int, speed, lo, hi, tolerance float64) (AimResult, error) {
	var firstErr error
	miss := func(angle float64) float64 {
		if firstErr != nil {
			return math.Inf(1)
		}
		d, err := MissDistance(ctx, reg, sc, target, speed, angle)
		if err != nil {
			firstErr = err
			return math.Inf(1)
		}
		return d
	}

	g := search.NewGoldenSection(lo, hi, miss)
	_, err := g.IterateUntil(tolerance, search.DefaultMaxIterations)
	if firstErr != nil {
		return AimResult{}, firstErr
	}
	angle, dist := g.Best()
	res := AimResult{Angle: angle, Distance: dist, Evaluations: g.Evaluations()}
	return res, err
}

// LaunchRange flies the trajectory scenario with its launch direction
// kept and its speed replaced, and returns the horizontal distance
// covered when it comes back to z = 0. The landing point is interpolated
// between the two frames around the crossing. A projectile still in the
// air after the scenario's duration reports an error.
func LaunchRange(ctx context.Context, reg *Registry, sc *config.Scenario, speed float64) (float64, error) {
	if sc.Model != config.ModelTrajectory {
		return 0, fmt.Errorf("launch range needs a %s scenario, got %s", config.ModelTrajectory, sc.Model)
	}
	if reg == nil {
		reg = NewRegistry()
	}
	dir, err := vector.FromSlice(sc.Projectile.Velocity)
	if err != nil {
		return 0, err
	}
	if dir, err = dir.Unit(); err != nil {
		return 0, fmt.Errorf("launch direction: %w", err)
	}
	shot := sc.Clone()
	shot.Projectile.Velocity = dir.Scale(speed).Slice()

	e, err := New(shot, WithRegistry(reg))
	if err != nil {
		return 0, err
	}
	start := e.Model().Snapshot()
	var prev dynamo.State
	landed := false
	var rng float64

	err = sim.New(e.Model()).RunWithCallback(ctx, e.Config(), func(frame int, x dynamo.State, _ float64) bool {
		if frame > 0 && x[2] <= 0 && x[5] < 0 {
			// x[2] is z and x[5] is vz in a body row.
			f := 0.0
			if dz := prev[2] - x[2]; dz != 0 {
				f = prev[2] / dz
			}
			lx := prev[0] + f*(x[0]-prev[0]) - start[0]
			ly := prev[1] + f*(x[1]-prev[1]) - start[1]
			rng, landed = math.Hypot(lx, ly), true
			return false
		}
		prev = x
		return true
	})
	if err != nil {
		return 0, err
	}
	if !landed {
		return 0, fmt.Errorf("projectile still airborne after %gs", e.Config().Duration)
	}
	return rng, nil
}

// FindLaunchSpeed bisects [lo, hi] for the speed whose LaunchRange is
// distance, to within tolerance in range.
func FindLaunchSpeed(ctx context.Context, reg *Registry, sc *config.Scenario, distance, lo, hi, tolerance float64) (float64, error) {
	var firstErr error
	residual := func(speed float64) float64 {
		if firstErr != nil {
			return 0
		}
		r, err := LaunchRange(ctx, reg, sc, speed)
		if err != nil {
			firstErr = err
			return 0
		}
		return r - distance
	}

	b, err := search.NewBisection(lo, hi, residual)
	if firstErr != nil {
		return 0, firstErr
	}
	if err != nil {
		return 0, err
	}
	speed, err := b.IterateUntil(tolerance, search.DefaultMaxIterations)
	if firstErr != nil {
		return 0, firstErr
	}
	return speed, err
}
