// Package config loads and saves simulation scenarios as YAML and holds the
// built-in presets, including the Astrogolf levels.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/astrogolf/internal/body"
	"github.com/san-kum/astrogolf/internal/integrators"
)

const (
	DefaultFrameDt  = 0.01
	DefaultDuration = 1.0
	DefaultSolver   = "rk4"
)

// Model kinds.
const (
	ModelNBody      = "nbody"
	ModelTrajectory = "trajectory"
	ModelOrbit      = "orbit"
	ModelCooling    = "cooling"
)

var ErrInvalidScenario = errors.New("config: invalid scenario")

// Scenario describes one simulation run. Only the section matching Model
// is read.
type Scenario struct {
	Name      string  `yaml:"name"`
	Model     string  `yaml:"model"`
	Solver    string  `yaml:"solver"`
	FrameDt   float64 `yaml:"frame_dt"`
	Duration  float64 `yaml:"duration"`
	TimeLimit float64 `yaml:"time_limit,omitempty"`

	Bodies     BodiesConfig     `yaml:"bodies,omitempty"`
	Projectile ProjectileConfig `yaml:"projectile,omitempty"`
	Orbits     OrbitsConfig     `yaml:"orbits,omitempty"`
	Cooling    CoolingConfig    `yaml:"cooling,omitempty"`

	// Params override evaluator constants by name, e.g. g or drag.
	Params map[string]float64 `yaml:"params,omitempty"`
}

// BodiesConfig is an N-body initial table. Rows shorter than 3 are
// zero-filled.
type BodiesConfig struct {
	Positions  [][]float64 `yaml:"positions"`
	Velocities [][]float64 `yaml:"velocities"`
	Masses     []float64   `yaml:"masses"`
	Normalize  bool        `yaml:"normalize"`
	Pinned     []int       `yaml:"pinned,omitempty"`
	Player     int         `yaml:"player"`
	DtMax      float64     `yaml:"dt_max,omitempty"`
}

type ProjectileConfig struct {
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
	Drag     float64   `yaml:"drag"`
}

type OrbitsConfig struct {
	CentralMass float64       `yaml:"central_mass"`
	Bodies      []OrbitConfig `yaml:"bodies"`
}

type OrbitConfig struct {
	Name         string  `yaml:"name"`
	SemiMajor    float64 `yaml:"a"`
	Eccentricity float64 `yaml:"e"`
	Mass         float64 `yaml:"mass"`
}

type CoolingConfig struct {
	Initial float64 `yaml:"initial"`
	K       float64 `yaml:"k"`
	Ambient float64 `yaml:"ambient"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:     "untitled",
		Model:    ModelNBody,
		Solver:   DefaultSolver,
		FrameDt:  DefaultFrameDt,
		Duration: DefaultDuration,
		Bodies: BodiesConfig{
			Normalize: true,
		},
	}
}

// Load reads a scenario file over DefaultScenario and validates it.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Method resolves the solver name.
func (s *Scenario) Method() (integrators.Method, error) {
	if s.Solver == "" {
		return integrators.MethodRK4, nil
	}
	return integrators.ParseMethod(s.Solver)
}

func (s *Scenario) Validate() error {
	if _, err := s.Method(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if s.FrameDt <= 0 {
		return fmt.Errorf("%w: frame_dt must be positive, got %g", ErrInvalidScenario, s.FrameDt)
	}
	if s.Duration < 0 {
		return fmt.Errorf("%w: negative duration %g", ErrInvalidScenario, s.Duration)
	}

	switch s.Model {
	case ModelNBody:
		return s.Bodies.validate()
	case ModelTrajectory:
		if len(s.Projectile.Position) > 3 || len(s.Projectile.Velocity) > 3 {
			return fmt.Errorf("%w: projectile vectors have at most 3 components", ErrInvalidScenario)
		}
	case ModelOrbit:
		if s.Orbits.CentralMass <= 0 {
			return fmt.Errorf("%w: central_mass must be positive", ErrInvalidScenario)
		}
		for _, o := range s.Orbits.Bodies {
			if o.SemiMajor <= 0 || o.Eccentricity < 0 || o.Eccentricity >= 1 {
				return fmt.Errorf("%w: orbit %q needs a > 0 and 0 <= e < 1", ErrInvalidScenario, o.Name)
			}
		}
	case ModelCooling:
	default:
		return fmt.Errorf("%w: unknown model %q", ErrInvalidScenario, s.Model)
	}
	return nil
}

func (b *BodiesConfig) validate() error {
	n := len(b.Masses)
	if len(b.Positions) != n || len(b.Velocities) != n {
		return fmt.Errorf("%w: %d positions, %d velocities, %d masses",
			ErrInvalidScenario, len(b.Positions), len(b.Velocities), n)
	}
	for _, r := range b.Pinned {
		if r < 0 || r >= n {
			return fmt.Errorf("%w: pinned row %d of %d", ErrInvalidScenario, r, n)
		}
	}
	if n > 0 && (b.Player < 0 || b.Player >= n) {
		return fmt.Errorf("%w: player row %d of %d", ErrInvalidScenario, b.Player, n)
	}
	return nil
}

// Set builds the initial body table.
func (b *BodiesConfig) Set() (*body.Set, error) {
	return body.NewSet(b.Positions, b.Velocities, b.Masses)
}

// Clone returns a deep copy, so presets can be edited freely.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Bodies.Positions = cloneRows(s.Bodies.Positions)
	c.Bodies.Velocities = cloneRows(s.Bodies.Velocities)
	c.Bodies.Masses = append([]float64(nil), s.Bodies.Masses...)
	c.Bodies.Pinned = append([]int(nil), s.Bodies.Pinned...)
	c.Projectile.Position = append([]float64(nil), s.Projectile.Position...)
	c.Projectile.Velocity = append([]float64(nil), s.Projectile.Velocity...)
	c.Orbits.Bodies = append([]OrbitConfig(nil), s.Orbits.Bodies...)
	if s.Params != nil {
		c.Params = make(map[string]float64, len(s.Params))
		for k, v := range s.Params {
			c.Params[k] = v
		}
	}
	return &c
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}
