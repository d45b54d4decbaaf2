// Package composer accumulates evaluated waveform components into a running
// total signal. Every Add is atomic: on failure the prior state is kept.
package composer

import (
	"fmt"

	"github.com/san-kum/sigsynth/internal/grid"
	"github.com/san-kum/sigsynth/internal/noise"
	"github.com/san-kum/sigsynth/internal/signal"
	"github.com/san-kum/sigsynth/internal/waveform"
)

// Component is one evaluated spec. Accessors return copies.
type Component struct {
	spec   waveform.Spec
	values signal.Field
}

func (c Component) Spec() waveform.Spec  { return c.spec.Clone() }
func (c Component) Values() signal.Field { return c.values.Clone() }
func (c Component) Name() string         { return c.spec.Name() }
func (c Component) At(i, j int) float64  { return c.values[i][j] }

type Composer struct {
	grid       *grid.Grid
	groups     map[string]Group
	components []Component
	total      signal.Field
}

type Option func(*Composer)

// WithOmegas replaces the frequencies used by AddGroup.
func WithOmegas(o Omegas) Option {
	return func(c *Composer) { c.groups = Groups(o) }
}

func New(g *grid.Grid, opts ...Option) *Composer {
	nt, nx := g.Shape()
	c := &Composer{
		grid:       g,
		groups:     Groups(DefaultOmegas()),
		components: make([]Component, 0),
		total:      signal.Zeros(nt, nx),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Composer) Grid() *grid.Grid { return c.grid }
func (c *Composer) Len() int         { return len(c.components) }

// Add evaluates spec on the grid, appends the component and folds it into the total.
func (c *Composer) Add(spec waveform.Spec) (Component, error) {
	comp, err := c.evaluate(spec)
	if err != nil {
		return Component{}, err
	}
	c.commit(comp)
	return comp, nil
}

// AddGroup adds every member of a named group, in group order. Members are
// all evaluated before any is committed.
func (c *Composer) AddGroup(name string) ([]Component, error) {
	group, ok := c.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", signal.ErrUnknownGroup, name)
	}
	comps := make([]Component, 0, len(group))
	for i, spec := range group {
		comp, err := c.evaluate(spec)
		if err != nil {
			return nil, &signal.ComponentError{Index: i, Label: spec.Name(), Wrapped: err}
		}
		comps = append(comps, comp)
	}
	for _, comp := range comps {
		c.commit(comp)
	}
	return comps, nil
}

func (c *Composer) evaluate(spec waveform.Spec) (Component, error) {
	values, err := waveform.Evaluate(c.grid, spec)
	if err != nil {
		return Component{}, err
	}
	return Component{spec: spec.Clone(), values: values}, nil
}

func (c *Composer) commit(comp Component) {
	c.components = append(c.components, comp)
	// every component is evaluated on c.grid, so shapes match the total
	for i, row := range comp.values {
		for j, v := range row {
			c.total[i][j] += v
		}
	}
}

// Total returns a copy of the composed signal.
func (c *Composer) Total() signal.Field { return c.total.Clone() }

// Components returns the added components in insertion order.
func (c *Composer) Components() []Component {
	return append([]Component(nil), c.components...)
}

// InjectNoise adds Gaussian noise to the total in place. Repeated calls compound.
func (c *Composer) InjectNoise(std float64, opts ...noise.Option) error {
	return noise.Inject(c.total, std, opts...)
}
