package experiment

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/sigsynth/internal/composer"
	"github.com/san-kum/sigsynth/internal/config"
	"github.com/san-kum/sigsynth/internal/grid"
	"github.com/san-kum/sigsynth/internal/noise"
	"github.com/san-kum/sigsynth/internal/sampler"
	"github.com/san-kum/sigsynth/internal/signal"
)

// Result holds everything a generation run produced. Total is the full
// noisy signal; Sampled and Time are the subsampled view.
type Result struct {
	Grid       *grid.Grid
	Components []composer.Component
	Total      signal.Field
	Time       []float64
	Sampled    signal.Field
	Seed       int64
	NoiseStd   float64
	Noisy      bool
}

type Experiment struct {
	cfg        *config.Config
	logger     *slog.Logger
	randSource *rand.Rand
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:        cfg.Clone(),
		logger:     slog.New(slog.DiscardHandler),
		randSource: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run builds the grid, adds groups then components, injects noise and samples.
// When the configuration carries no seed one is drawn and recorded in the
// result so the run can be replayed.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := e.cfg.BuildGrid()
	if err != nil {
		return nil, err
	}
	nt, nx := g.Shape()
	e.logger.Debug("grid ready", "nt", nt, "nx", nx)

	c := composer.New(g, composer.WithOmegas(e.cfg.ResolveOmegas()))

	for _, name := range e.cfg.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		comps, err := c.AddGroup(name)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("group added", "group", name, "components", len(comps))
	}

	for i, spec := range e.cfg.Components {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := c.Add(spec); err != nil {
			return nil, &signal.ComponentError{Index: i, Label: spec.Name(), Wrapped: err}
		}
		e.logger.Debug("component added", "component", spec.Name(), "spec", spec.String())
	}

	seed := e.randSource.Int63()
	if e.cfg.Noise.Seed != nil {
		seed = *e.cfg.Noise.Seed
	}

	res := &Result{Grid: g, Seed: seed}
	if e.cfg.Noise.Enabled {
		if err := c.InjectNoise(e.cfg.Noise.Std, noise.WithSeed(seed)); err != nil {
			return nil, err
		}
		res.Noisy, res.NoiseStd = true, e.cfg.Noise.Std
		e.logger.Debug("noise injected", "std", e.cfg.Noise.Std, "seed", seed)
	}

	res.Components = c.Components()
	res.Total = c.Total()

	var opts []sampler.Option
	if e.cfg.Sample.Limit != nil {
		opts = append(opts, sampler.WithLimit(*e.cfg.Sample.Limit))
	}
	res.Sampled, res.Time, err = sampler.SampleField(res.Total, g.Time(), e.cfg.Sample.Stride, opts...)
	if err != nil {
		return nil, err
	}

	e.logger.Info("run complete", "components", len(res.Components), "samples", len(res.Time), "rms", res.Sampled.RMS())
	return res, nil
}

// Config returns a copy of the configuration the experiment runs.
func (e *Experiment) Config() *config.Config {
	return e.cfg.Clone()
}
