package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/config"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/metrics"
	"github.com/san-kum/astrogolf/internal/models"
	"github.com/san-kum/astrogolf/internal/vector"
)

// Builder constructs a model from the section of a scenario it owns.
type Builder func(sc *config.Scenario, method integrators.Method) (models.Model, error)

// Registry maps model kinds to builders.
type Registry struct {
	models map[string]Builder
}

// NewRegistry registers the four built-in model kinds.
func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]Builder)}
	r.Register(config.ModelNBody, buildNBody)
	r.Register(config.ModelTrajectory, buildTrajectory)
	r.Register(config.ModelOrbit, buildOrbit)
	r.Register(config.ModelCooling, buildCooling)
	return r
}

func (r *Registry) Register(kind string, b Builder) { r.models[kind] = b }

// Build validates sc, constructs its model and applies its Params to the
// model's evaluator.
func (r *Registry) Build(sc *config.Scenario) (models.Model, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	fn, ok := r.models[sc.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", sc.Model)
	}
	method, err := sc.Method()
	if err != nil {
		return nil, err
	}
	m, err := fn(sc, method)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", sc.Model, err)
	}
	if err := applyParams(m.Evaluator(), sc.Params); err != nil {
		return nil, err
	}
	return m, nil
}

func applyParams(c dynamo.Configurable, params map[string]float64) error {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := c.SetParam(k, params[k]); err != nil {
			return fmt.Errorf("param %s: %w", k, err)
		}
	}
	return nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildNBody(sc *config.Scenario, method integrators.Method) (models.Model, error) {
	set, err := sc.Bodies.Set()
	if err != nil {
		return nil, err
	}
	opts := []models.Option{models.WithMethod(method)}
	if !sc.Bodies.Normalize {
		opts = append(opts, models.WithoutNormalization())
	}
	if sc.Bodies.DtMax > 0 {
		opts = append(opts, models.WithDtMax(sc.Bodies.DtMax))
	}
	if len(sc.Bodies.Pinned) > 0 {
		opts = append(opts, models.WithPinned(sc.Bodies.Pinned...))
	}
	return models.NewNModel(set, opts...)
}

func buildTrajectory(sc *config.Scenario, method integrators.Method) (models.Model, error) {
	p0, err := vector.FromSlice(sc.Projectile.Position)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	v0, err := vector.FromSlice(sc.Projectile.Velocity)
	if err != nil {
		return nil, fmt.Errorf("velocity: %w", err)
	}
	return models.NewTrajectoryModel(p0, v0, sc.Projectile.Drag, method), nil
}

func buildOrbit(sc *config.Scenario, method integrators.Method) (models.Model, error) {
	orbits := make([]models.Orbit, len(sc.Orbits.Bodies))
	for i, o := range sc.Orbits.Bodies {
		orbits[i] = models.Orbit{Name: o.Name, SemiMajor: o.SemiMajor, Eccentricity: o.Eccentricity, Mass: o.Mass}
	}
	return models.NewOrbitModel(sc.Orbits.CentralMass, orbits, method)
}

func buildCooling(sc *config.Scenario, method integrators.Method) (models.Model, error) {
	c := sc.Cooling
	return models.NewCoolingModel(c.Initial, c.K, c.Ambient, method), nil
}

// StabilityThreshold is the coordinate magnitude past which a run is
// flagged unstable. It is generous enough for orbits in metres.
const StabilityThreshold = 1e15

// DefaultMetrics picks the diagnostics that make sense for the model.
func (r *Registry) DefaultMetrics(sc *config.Scenario, m models.Model) []dynamo.Metric {
	out := []dynamo.Metric{metrics.NewStability(StabilityThreshold)}
	switch m := m.(type) {
	case *models.NModel:
		masses := m.Masses()
		energy := nbodyEnergy(m, masses)
		out = append(out,
			metrics.NewEnergy(energy),
			metrics.NewEnergyDrift(energy),
			metrics.NewMomentum(masses),
		)
		if p := sc.Bodies.Player; p >= 0 && p < len(masses) {
			out = append(out, metrics.NewSpeed(p), metrics.NewRadius(p))
			for j := range masses {
				if j != p {
					out = append(out, metrics.NewSeparation(p, j))
				}
			}
		}
	case *models.OrbitModel:
		for i := range m.Orbitals {
			out = append(out, metrics.NewRadius(i))
		}
	case *models.TrajectoryModel:
		out = append(out, metrics.NewSpeed(0))
	}
	return out
}

// nbodyEnergy evaluates frames with the model's evaluator. Frames whose
// row count no longer matches masses, after a launch, evaluate to NaN.
func nbodyEnergy(m *models.NModel, masses []float64) metrics.EnergyFunc {
	nb := m.Physics()
	return func(x dynamo.State) float64 {
		set, err := body.NewSetFromState(x, masses)
		if err != nil {
			return math.NaN()
		}
		return nb.Energy(set)
	}
}

// Names labels the body rows of m, for storage and plots.
func Names(m models.Model) []string {
	switch m := m.(type) {
	case *models.OrbitModel:
		return append([]string(nil), m.Names...)
	case *models.NModel:
		names := make([]string, m.Len())
		for i := range names {
			names[i] = fmt.Sprintf("body %d", i)
		}
		return names
	case *models.TrajectoryModel:
		return []string{"projectile"}
	}
	return nil
}
