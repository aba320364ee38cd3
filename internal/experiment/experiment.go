// Package experiment turns scenarios into runs: it builds the model,
// attaches metrics, samples frames and searches over launch parameters.
package experiment

import (
	"context"
	"log/slog"

	"github.com/san-kum/astrogolf/internal/config"
	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/logging"
	"github.com/san-kum/astrogolf/internal/models"
	"github.com/san-kum/astrogolf/internal/sim"
	"github.com/san-kum/astrogolf/internal/storage"
)

type Experiment struct {
	scenario  *config.Scenario
	registry  *Registry
	logger    *slog.Logger
	model     models.Model
	simulator *sim.Simulator
	extra     []dynamo.Metric
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = logging.OrDiscard(l) }
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

// WithMetrics adds metrics on top of the registry defaults.
func WithMetrics(m ...dynamo.Metric) Option {
	return func(e *Experiment) { e.extra = append(e.extra, m...) }
}

// New builds the scenario's model and wires its metrics. The scenario is
// copied, so later edits to sc do not affect the experiment.
func New(sc *config.Scenario, opts ...Option) (*Experiment, error) {
	e := &Experiment{
		scenario: sc.Clone(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}

	m, err := e.registry.Build(e.scenario)
	if err != nil {
		return nil, err
	}
	e.model = m
	e.simulator = sim.New(m, sim.WithLogger(e.logger.With("scenario", e.scenario.Name)))
	for _, metric := range e.registry.DefaultMetrics(e.scenario, m) {
		e.simulator.AddMetric(metric)
	}
	for _, metric := range e.extra {
		e.simulator.AddMetric(metric)
	}
	return e, nil
}

// Config is the frame schedule of the scenario. A zero duration falls back
// to the time limit, then to config.DefaultDuration.
func (e *Experiment) Config() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.FrameDt = e.scenario.FrameDt
	switch {
	case e.scenario.Duration > 0:
		cfg.Duration = e.scenario.Duration
	case e.scenario.TimeLimit > 0:
		cfg.Duration = e.scenario.TimeLimit
	default:
		cfg.Duration = config.DefaultDuration
	}
	return cfg
}

// Run samples the model over the scenario's duration.
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	cfg := e.Config()
	e.logger.Info("running scenario",
		"scenario", e.scenario.Name, "model", e.scenario.Model,
		"solver", e.scenario.Solver, "frame_dt", cfg.FrameDt, "duration", cfg.Duration)
	return e.simulator.Run(ctx, cfg)
}

func (e *Experiment) Scenario() *config.Scenario { return e.scenario }

func (e *Experiment) Model() models.Model { return e.model }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Info describes the run for storage.
func (e *Experiment) Info() storage.RunInfo {
	cfg := e.Config()
	info := storage.RunInfo{
		Scenario: e.scenario.Name,
		Model:    e.scenario.Model,
		Solver:   e.scenario.Solver,
		FrameDt:  cfg.FrameDt,
		Duration: cfg.Duration,
		Names:    Names(e.model),
	}
	if n, ok := e.model.(*models.NModel); ok {
		info.Masses = n.Masses()
	}
	return info
}
