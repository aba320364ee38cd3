package config

import (
	"fmt"
	"sort"
	"strings"
)

// Presets maps model kind, then preset name, to a scenario.
var Presets = map[string]map[string]*Scenario{
	ModelNBody: mergePresets(levelPresets(), map[string]*Scenario{
		"sun-earth": {
			Name: "sun-earth", Model: ModelNBody, Solver: "rk4", FrameDt: 0.01, Duration: 1.0,
			Bodies: BodiesConfig{
				Positions:  [][]float64{{0, 0, 0}, {1, 0, 0}},
				Velocities: [][]float64{{0, 0, 0}, {0, 0, 6.283185307179586}},
				Masses:     []float64{1, 0.000003003},
				Normalize:  true,
			},
		},
		"slingshot": {
			Name: "slingshot", Model: ModelNBody, Solver: "rk4", FrameDt: 0.01, Duration: 2.0,
			Bodies: BodiesConfig{
				Positions:  [][]float64{{0, 0, 0}, {1, 0, 0}, {5, 0, 0}},
				Velocities: [][]float64{{0, 0, 0}, {0, 0, 6.3}, {0, 0, 3}},
				Masses:     []float64{1, 0.000003003, 0.000954},
				Normalize:  true,
				Player:     1,
			},
		},
	}),
	ModelOrbit: {
		"solar-system": {
			Name: "solar-system", Model: ModelOrbit, Solver: "rk4", FrameDt: 86400, Duration: 86400 * 365,
			Orbits: OrbitsConfig{
				CentralMass: 1.989e30,
				Bodies: []OrbitConfig{
					{Name: "Mercury", SemiMajor: 57909036552, Eccentricity: 0.206, Mass: 3.285e23},
					{Name: "Venus", SemiMajor: 1.08159e11, Eccentricity: 0.0068, Mass: 4.867e24},
					{Name: "Earth", SemiMajor: 1.496e11, Eccentricity: 0.0167, Mass: 5.972e24},
					{Name: "Mars", SemiMajor: 2.27987e11, Eccentricity: 0.0934, Mass: 6.41693e23},
					{Name: "Comet", SemiMajor: 4.488e11, Eccentricity: 0.9, Mass: 2.2e14},
				},
			},
		},
		"leo": {
			Name: "leo", Model: ModelOrbit, Solver: "rk4", FrameDt: 10, Duration: 6000,
			Orbits: OrbitsConfig{
				CentralMass: 5.972e24,
				Bodies: []OrbitConfig{
					{Name: "station", SemiMajor: 6.78e6, Eccentricity: 0.0005, Mass: 4.2e5},
				},
			},
		},
	},
	ModelTrajectory: {
		"vacuum": {
			Name: "vacuum", Model: ModelTrajectory, Solver: "rk4", FrameDt: 0.05, Duration: 4.0,
			Projectile: ProjectileConfig{Velocity: []float64{15, 0, 15}},
		},
		"drag": {
			Name: "drag", Model: ModelTrajectory, Solver: "rk4", FrameDt: 0.05, Duration: 4.0,
			Projectile: ProjectileConfig{Velocity: []float64{15, 0, 15}, Drag: 0.0013},
		},
	},
	ModelCooling: {
		"coffee": {
			Name: "coffee", Model: ModelCooling, Solver: "rk4", FrameDt: 1, Duration: 60,
			Cooling: CoolingConfig{Initial: 90, K: 0.05, Ambient: 20},
		},
	},
}

// GetPreset returns a copy of a preset, or nil.
func GetPreset(model, preset string) *Scenario {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	sc, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return sc.Clone()
}

// FindPreset looks a preset up by name across every model kind. Names may
// be qualified as "kind/name".
func FindPreset(name string) (*Scenario, error) {
	if kind, preset, ok := strings.Cut(name, "/"); ok {
		if sc := GetPreset(kind, preset); sc != nil {
			return sc, nil
		}
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	for _, kind := range Models() {
		if sc := GetPreset(kind, name); sc != nil {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("unknown preset: %s", name)
}

// ListPresets returns the sorted preset names for a model kind, or nil.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Models returns the model kinds that have presets, sorted.
func Models() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func mergePresets(sets ...map[string]*Scenario) map[string]*Scenario {
	out := make(map[string]*Scenario)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}
