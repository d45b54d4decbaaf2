package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sigsynth/internal/composer"
	"github.com/san-kum/sigsynth/internal/grid"
	"github.com/san-kum/sigsynth/internal/signal"
	"github.com/san-kum/sigsynth/internal/waveform"
)

const (
	ConventionSymmetric = "symmetric"
	ConventionBounds    = "bounds"

	DefaultNX        = 200
	DefaultNT        = 400
	DefaultHalfWidth = 5.0
	DefaultTimeScale = 4.0
	DefaultNoiseStd  = 0.5
)

type Config struct {
	Grid       GridConfig      `yaml:"grid"`
	Groups     []string        `yaml:"groups"`
	Omegas     OmegaConfig     `yaml:"omegas,omitempty"`
	Components []waveform.Spec `yaml:"components,omitempty"`
	Noise      NoiseConfig     `yaml:"noise"`
	Sample     SampleConfig    `yaml:"sample,omitempty"`
}

// GridConfig selects one of the two spatial conventions: symmetric uses
// HalfWidth and TimeScale (x in [-L, L], t in [0, T*pi]), bounds uses the
// explicit min/max values.
type GridConfig struct {
	Convention string  `yaml:"convention"`
	NX         int     `yaml:"nx"`
	NT         int     `yaml:"nt"`
	HalfWidth  float64 `yaml:"half_width"`
	TimeScale  float64 `yaml:"time_scale"`
	XMin       float64 `yaml:"x_min"`
	XMax       float64 `yaml:"x_max"`
	TMin       float64 `yaml:"t_min"`
	TMax       float64 `yaml:"t_max"`
}

// OmegaConfig overrides group frequencies; nil entries keep the defaults.
type OmegaConfig struct {
	Legacy bool     `yaml:"legacy,omitempty"`
	F1Slow *float64 `yaml:"f1slow,omitempty"`
	F2Slow *float64 `yaml:"f2slow,omitempty"`
	F1Med  *float64 `yaml:"f1med,omitempty"`
	F2Med  *float64 `yaml:"f2med,omitempty"`
	F1Fast *float64 `yaml:"f1fast,omitempty"`
	F2Fast *float64 `yaml:"f2fast,omitempty"`
}

type NoiseConfig struct {
	Enabled bool    `yaml:"enabled"`
	Std     float64 `yaml:"std"`
	Seed    *int64  `yaml:"seed,omitempty"`
}

type SampleConfig struct {
	Stride int  `yaml:"stride,omitempty"`
	Limit  *int `yaml:"limit,omitempty"`
}

// DefaultConfig mirrors make_signal: every group on the symmetric grid with
// std 0.5 noise.
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Convention: ConventionSymmetric,
			NX:         DefaultNX,
			NT:         DefaultNT,
			HalfWidth:  DefaultHalfWidth,
			TimeScale:  DefaultTimeScale,
		},
		Groups: []string{"all"},
		Noise:  NoiseConfig{Enabled: true, Std: DefaultNoiseStd},
		Sample: SampleConfig{Stride: 1},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of DefaultConfig.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Groups = append([]string(nil), c.Groups...)
	cp.Components = make([]waveform.Spec, len(c.Components))
	for i, s := range c.Components {
		cp.Components[i] = s.Clone()
	}
	if c.Noise.Seed != nil {
		seed := *c.Noise.Seed
		cp.Noise.Seed = &seed
	}
	if c.Sample.Limit != nil {
		limit := *c.Sample.Limit
		cp.Sample.Limit = &limit
	}
	o := &cp.Omegas
	for _, p := range []**float64{&o.F1Slow, &o.F2Slow, &o.F1Med, &o.F2Med, &o.F1Fast, &o.F2Fast} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	return &cp
}

// AsBounds switches to the bounds convention. Coming from a symmetric grid
// the bounds take its extent, so fields set afterwards override one axis
// end at a time.
func (g *GridConfig) AsBounds() {
	if g.Convention == ConventionBounds {
		return
	}
	g.Convention = ConventionBounds
	g.XMin, g.XMax = -g.HalfWidth, g.HalfWidth
	g.TMin, g.TMax = 0, g.TimeScale*math.Pi
}

// AsSymmetric switches to the symmetric convention. An unset half-width or
// time scale falls back to its default.
func (g *GridConfig) AsSymmetric() {
	if g.Convention == ConventionSymmetric || g.Convention == "" {
		return
	}
	g.Convention = ConventionSymmetric
	if g.HalfWidth <= 0 {
		g.HalfWidth = DefaultHalfWidth
	}
	if g.TimeScale <= 0 {
		g.TimeScale = DefaultTimeScale
	}
}

// BuildGrid constructs the grid described by the configuration.
func (c *Config) BuildGrid() (*grid.Grid, error) {
	g := c.Grid
	switch g.Convention {
	case ConventionSymmetric, "":
		return grid.NewSymmetric(g.HalfWidth, g.TimeScale, g.NX, g.NT)
	case ConventionBounds:
		return grid.New(g.XMin, g.XMax, g.NX, g.TMin, g.TMax, g.NT)
	default:
		return nil, fmt.Errorf("%w: unknown grid convention %q", signal.ErrInvalidDomain, g.Convention)
	}
}

// ResolveOmegas applies the overrides on top of the default (or legacy) set.
func (c *Config) ResolveOmegas() composer.Omegas {
	o := composer.DefaultOmegas()
	if c.Omegas.Legacy {
		o = composer.LegacyOmegas()
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&o.F1Slow, c.Omegas.F1Slow)
	set(&o.F2Slow, c.Omegas.F2Slow)
	set(&o.F1Med, c.Omegas.F1Med)
	set(&o.F2Med, c.Omegas.F2Med)
	set(&o.F1Fast, c.Omegas.F1Fast)
	set(&o.F2Fast, c.Omegas.F2Fast)
	return o
}

// Validate reports problems that can be caught before any evaluation.
func (c *Config) Validate() error {
	if _, err := c.BuildGrid(); err != nil {
		return err
	}
	groups := composer.Groups(composer.DefaultOmegas())
	for _, name := range c.Groups {
		if _, ok := groups[name]; !ok {
			return fmt.Errorf("%w: %q", signal.ErrUnknownGroup, name)
		}
	}
	for i, spec := range c.Components {
		if _, err := waveform.Lookup(spec.Family); err != nil {
			return &signal.ComponentError{Index: i, Label: spec.Name(), Wrapped: err}
		}
	}
	if c.Noise.Enabled && c.Noise.Std < 0 {
		return fmt.Errorf("%w: noise std must be >= 0, got %v", signal.ErrInvalidParameter, c.Noise.Std)
	}
	if c.Sample.Stride < 1 {
		return fmt.Errorf("%w: stride must be >= 1, got %d", signal.ErrInvalidParameter, c.Sample.Stride)
	}
	if c.Sample.Limit != nil && *c.Sample.Limit < 0 {
		return fmt.Errorf("%w: limit must be >= 0, got %d", signal.ErrInvalidParameter, *c.Sample.Limit)
	}
	return nil
}
