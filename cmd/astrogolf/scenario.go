package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/astrogolf/internal/config"
	"github.com/san-kum/astrogolf/internal/experiment"
	"github.com/san-kum/astrogolf/internal/models"
	"github.com/san-kum/astrogolf/internal/viz"
)

var errNoScenario = errors.New("name a preset or pass --config (see astrogolf presets)")

// overrides are the scenario fields set on the command line. Zero values
// leave the scenario untouched.
type overrides struct {
	Solver   string
	FrameDt  float64
	Duration float64
	Params   map[string]string
}

func flagOverrides(cmd *cobra.Command) overrides {
	var o overrides
	f := cmd.Flags()
	if f.Changed("solver") {
		o.Solver = solver
	}
	if f.Changed("dt") {
		o.FrameDt = frameDt
	}
	if f.Changed("time") {
		o.Duration = duration
	}
	if f.Changed("param") {
		o.Params = params
	}
	return o
}

// loadScenario reads --config when given, the named preset otherwise, and
// applies the command line overrides on top.
func loadScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	var sc *config.Scenario
	var err error
	switch {
	case configFile != "":
		sc, err = config.Load(configFile)
	case len(args) > 0:
		sc, err = config.FindPreset(args[0])
	default:
		err = errNoScenario
	}
	if err != nil {
		return nil, err
	}
	if err := flagOverrides(cmd).apply(sc); err != nil {
		return nil, err
	}
	return sc, sc.Validate()
}

func (o overrides) apply(sc *config.Scenario) error {
	if o.Solver != "" {
		sc.Solver = o.Solver
	}
	if o.FrameDt != 0 {
		sc.FrameDt = o.FrameDt
	}
	if o.Duration != 0 {
		sc.Duration = o.Duration
	}
	p, err := parseParams(o.Params)
	if err != nil {
		return err
	}
	if len(p) > 0 && sc.Params == nil {
		sc.Params = make(map[string]float64, len(p))
	}
	for k, v := range p {
		sc.Params[k] = v
	}
	return nil
}

func parseParams(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// sceneFor describes how the viewer plays sc. Only n-body scenarios have a
// player to steer.
func sceneFor(sc *config.Scenario, m models.Model) viz.Scene {
	scene := viz.Scene{
		Name:      sc.Name,
		FrameDt:   sc.FrameDt,
		TimeLimit: sc.TimeLimit,
		Player:    -1,
		Names:     experiment.Names(m),
	}
	if sc.Model == config.ModelNBody {
		scene.Player = sc.Bodies.Player
	}
	return scene
}

// viewerFactory builds viewers whose models come from reg. Resetting the
// viewer rebuilds the model from the same scenario.
func viewerFactory(reg *experiment.Registry) viz.ViewerFactory {
	return func(sc *config.Scenario) (*viz.Viewer, error) {
		sc = sc.Clone()
		m, err := reg.Build(sc)
		if err != nil {
			return nil, err
		}
		return viz.NewViewer(sceneFor(sc, m), func() (models.Model, error) {
			return reg.Build(sc)
		})
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
