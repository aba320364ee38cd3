// Package sim samples a model at a fixed frame interval, validating each
// frame and feeding it to metrics and observers.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/logging"
	"github.com/san-kum/astrogolf/internal/models"
)

// Observer sees every recorded frame.
type Observer interface {
	OnFrame(frame int, x dynamo.State, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(frame int, x dynamo.State, t float64)

func (f ObserverFunc) OnFrame(frame int, x dynamo.State, t float64) { f(frame, x, t) }

type Simulator struct {
	model     models.Model
	metrics   []dynamo.Metric
	observers []Observer
	logger    *slog.Logger
}

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = logging.OrDiscard(l) }
}

func New(model models.Model, opts ...Option) *Simulator {
	s := &Simulator{
		model:     model,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]Observer, 0),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }

// Model returns the model being sampled.
func (s *Simulator) Model() models.Model { return s.model }

// Run records the model every cfg.FrameDt for cfg.Duration, starting with
// the frame at the model's current time. Frames are taken at absolute
// times, so sub-step overshoot in one frame does not accumulate.
//
// When ValidateState is set, a frame with NaN or Inf stops the run with a
// *dynamo.SimulationError wrapping dynamo.ErrInvalidState. Cancellation
// stops it with one wrapping dynamo.ErrContextCanceled. Either way the
// frames recorded so far are returned alongside the error.
func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := int(math.Round(cfg.Duration / cfg.FrameDt))
	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, frames+1),
		Times:   make([]float64, 0, frames+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("run started", "frames", frames, "frame_dt", cfg.FrameDt, "duration", cfg.Duration)

	t0 := s.model.Time()
	err := s.sample(ctx, cfg, t0, frames, func(i int, x dynamo.State, t float64) bool {
		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		return true
	})

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Frames = len(result.States)

	if err != nil {
		s.logger.Warn("run stopped", "frame", result.Frames, "err", err)
		return result, err
	}
	s.logger.Debug("run finished", "frames", result.Frames, "time", s.model.Time())
	return result, nil
}

// RunWithCallback samples like Run without storing frames. The callback
// returns false to stop early, which is not an error.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg dynamo.Config, callback func(frame int, x dynamo.State, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	frames := int(math.Round(cfg.Duration / cfg.FrameDt))
	return s.sample(ctx, cfg, s.model.Time(), frames, callback)
}

func (s *Simulator) sample(ctx context.Context, cfg dynamo.Config, t0 float64, frames int, record func(int, dynamo.State, float64) bool) error {
	for i := 0; i <= frames; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return &dynamo.SimulationError{
					Frame:   i,
					Time:    s.model.Time(),
					Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
				}
			default:
			}
			s.model.AdvanceTo(t0 + float64(i)*cfg.FrameDt)
		}

		x, t := s.model.Snapshot(), s.model.Time()
		if cfg.ValidateState && !x.IsValid() {
			return &dynamo.SimulationError{Frame: i, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}
		for _, obs := range s.observers {
			obs.OnFrame(i, x, t)
		}
		if !record(i, x, t) {
			return nil
		}
	}
	return nil
}

func validateConfig(cfg dynamo.Config) error {
	if cfg.FrameDt <= 0 {
		return fmt.Errorf("%w: frame dt must be positive, got %g", dynamo.ErrParameterBounds, cfg.FrameDt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrParameterBounds, cfg.Duration)
	}
	return nil
}
