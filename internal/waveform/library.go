// Package waveform is the catalog of closed-form spatio-temporal families.
// Each family is a pure function of the grid and its parameters; selection is
// by tag lookup in a fixed registry.
package waveform

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/sigsynth/internal/grid"
	"github.com/san-kum/sigsynth/internal/signal"
)

// NormEpsilon is the smallest area or norm accepted as a normalization denominator.
const NormEpsilon = 1e-12

// Param describes one named parameter of a family. FromGrid marks a default
// taken from the grid (the half-width for cosine_band's L).
type Param struct {
	Name     string
	Default  float64
	FromGrid bool
}

type Descriptor struct {
	Family  Family
	Formula string
	Params  []Param
}

type values map[string]float64

type family struct {
	desc Descriptor
	eval func(g *grid.Grid, p values) (signal.Field, error)
}

var registry = map[Family]family{}

func register(f Family, formula string, params []Param, eval func(*grid.Grid, values) (signal.Field, error)) {
	registry[f] = family{desc: Descriptor{Family: f, Formula: formula, Params: params}, eval: eval}
}

// pointwise lifts a scalar f(x, t) over the grid meshes.
func pointwise(fn func(x, t float64) float64) func(*grid.Grid, values) (signal.Field, error) {
	return func(g *grid.Grid, _ values) (signal.Field, error) {
		nt, nx := g.Shape()
		out := signal.Zeros(nt, nx)
		for i := 0; i < nt; i++ {
			t := g.T(i)
			for j := 0; j < nx; j++ {
				out[i][j] = fn(g.X(j), t)
			}
		}
		return out, nil
	}
}

func init() {
	register(TravelingSine, "a*sin(k*x - omega*t)*exp(gamma*t)",
		[]Param{{Name: "a", Default: 1}, {Name: "k", Default: 0.1}, {Name: "omega", Default: 1}, {Name: "gamma", Default: 0}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			a, k, omega, gamma := p["a"], p["k"], p["omega"], p["gamma"]
			return pointwise(func(x, t float64) float64 {
				return a * math.Sin(k*x-omega*t) * math.Exp(gamma*t)
			})(g, p)
		})

	register(TravelingSineNormalized, "a*row/||row||, row = sin(k*x - omega*t)*exp(gamma*t)",
		[]Param{{Name: "a", Default: 1}, {Name: "k", Default: 0.1}, {Name: "omega", Default: 1}, {Name: "gamma", Default: 0}},
		evalTravelingSineNormalized)

	register(GaussianBump, "a*exp(-k*(x+c)^2)*cos(omega*t)",
		[]Param{{Name: "a", Default: 1}, {Name: "k", Default: 0.2}, {Name: "omega", Default: 1}, {Name: "c", Default: 0}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			a, k, omega, c := p["a"], p["k"], p["omega"], p["c"]
			return pointwise(func(x, t float64) float64 {
				return a * math.Exp(-k*(x+c)*(x+c)) * math.Cos(omega*t)
			})(g, p)
		})

	register(GaussianBumpNormalized, "a*exp(-k*(x+c)^2)/area*cos(omega*t)",
		[]Param{{Name: "a", Default: 1}, {Name: "k", Default: 0.2}, {Name: "omega", Default: 1}, {Name: "c", Default: 0}},
		evalGaussianBumpNormalized)

	register(CosineBand, "cos(pi*x/L)*cos(omega*t)",
		[]Param{{Name: "omega", Default: 0.3}, {Name: "L", FromGrid: true}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			omega, l := p["omega"], p["L"]
			if l <= 0 {
				return nil, fmt.Errorf("%w: L must be positive, got %v", signal.ErrInvalidParameter, l)
			}
			return pointwise(func(x, t float64) float64 {
				return math.Cos(2*math.Pi*x/(2*l)) * math.Cos(omega*t)
			})(g, p)
		})

	register(ExpDecayCosine, "exp(-0.2*x^2)*cos(omega*t)",
		[]Param{{Name: "omega", Default: 0.2}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			omega := p["omega"]
			return pointwise(func(x, t float64) float64 {
				return math.Exp(-0.2*x*x) * math.Cos(omega*t)
			})(g, p)
		})

	register(SechCosine, "a/cosh(0.5*(x+2))*cos(omega*t)",
		[]Param{{Name: "a", Default: 1}, {Name: "omega", Default: 1}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			a, omega := p["a"], p["omega"]
			return pointwise(func(x, t float64) float64 {
				return a * 1.0 / math.Cosh(0.5*(x+2)) * math.Cos(omega*t)
			})(g, p)
		})

	register(SechTanhSine, "2/cosh(0.2*x)*tanh(0.2*x)*sin(omega*t)",
		[]Param{{Name: "omega", Default: 0.8}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			omega := p["omega"]
			return pointwise(func(x, t float64) float64 {
				return 2.0 / math.Cosh(0.2*x) * math.Tanh(0.2*x) * math.Sin(omega*t)
			})(g, p)
		})

	register(GaussianPulseCosine, "exp(-(x-1)^2)*cos(omega*t)",
		[]Param{{Name: "omega", Default: 5.3}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			omega := p["omega"]
			return pointwise(func(x, t float64) float64 {
				return math.Exp(-(x-1)*(x-1)) * math.Cos(omega*t)
			})(g, p)
		})

	register(QuadraticGaussianCosinePhase, "x^2*exp(-(x+1)^2)*cos(omega*t + pi/4)",
		[]Param{{Name: "omega", Default: 6.0}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			omega := p["omega"]
			return pointwise(func(x, t float64) float64 {
				return x * x * math.Exp(-(x+1)*(x+1)) * math.Cos(omega*t+math.Pi/4)
			})(g, p)
		})

	register(LinearTrend, "t*trend + mu",
		[]Param{{Name: "mu", Default: 0.2}, {Name: "trend", Default: 0.01}},
		func(g *grid.Grid, p values) (signal.Field, error) {
			mu, trend := p["mu"], p["trend"]
			return pointwise(func(_, t float64) float64 {
				return t*trend + mu
			})(g, p)
		})
}

func evalTravelingSineNormalized(g *grid.Grid, p values) (signal.Field, error) {
	a, k, omega, gamma := p["a"], p["k"], p["omega"], p["gamma"]
	nt, nx := g.Shape()
	out := signal.Zeros(nt, nx)
	for i := 0; i < nt; i++ {
		t := g.T(i)
		sum := 0.0
		for j := 0; j < nx; j++ {
			v := math.Sin(k*g.X(j)-omega*t) * math.Exp(gamma*t)
			out[i][j] = v
			sum += v * v
		}
		norm := math.Sqrt(sum)
		if !(norm >= NormEpsilon) || math.IsInf(norm, 0) {
			return nil, fmt.Errorf("%w: spatial norm %v at t=%v", signal.ErrDegenerateNormalization, norm, t)
		}
		for j := range out[i] {
			out[i][j] = a * (out[i][j] / norm)
		}
	}
	return out, nil
}

func evalGaussianBumpNormalized(g *grid.Grid, p values) (signal.Field, error) {
	a, k, omega, c := p["a"], p["k"], p["omega"], p["c"]
	x := g.Space()
	spatial := make([]float64, len(x))
	for j, xj := range x {
		spatial[j] = math.Exp(-k * (xj + c) * (xj + c))
	}
	area := Trapezoid(spatial, x)
	if !(area >= NormEpsilon) || math.IsInf(area, 0) {
		return nil, fmt.Errorf("%w: spatial area %v", signal.ErrDegenerateNormalization, area)
	}
	nt, nx := g.Shape()
	out := signal.Zeros(nt, nx)
	for i := 0; i < nt; i++ {
		ct := math.Cos(omega * g.T(i))
		for j := 0; j < nx; j++ {
			out[i][j] = a * spatial[j] / area * ct
		}
	}
	return out, nil
}

// Trapezoid integrates y over the sample points x with the trapezoidal rule.
func Trapezoid(y, x []float64) float64 {
	n := len(y)
	if len(x) < n {
		n = len(x)
	}
	sum := 0.0
	for i := 1; i < n; i++ {
		sum += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return sum
}

// Evaluate computes spec over g. The result has the grid's (nt, nx) shape.
func Evaluate(g *grid.Grid, spec Spec) (signal.Field, error) {
	fam, ok := registry[spec.Family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", signal.ErrUnknownFamily, spec.Family)
	}
	p, err := resolve(fam.desc, spec.Params, g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Family, err)
	}
	out, err := fam.eval(g, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Family, err)
	}
	if !out.IsFinite() {
		return nil, fmt.Errorf("%s: %w: evaluation produced non-finite values", spec.Family, signal.ErrInvalidParameter)
	}
	return out, nil
}

func resolve(desc Descriptor, params Params, g *grid.Grid) (values, error) {
	known := make(map[string]bool, len(desc.Params))
	p := make(values, len(desc.Params))
	for _, d := range desc.Params {
		known[d.Name] = true
		if d.FromGrid {
			p[d.Name] = g.HalfWidth()
		} else {
			p[d.Name] = d.Default
		}
	}
	for name, v := range params {
		if !known[name] {
			return nil, fmt.Errorf("%w: unknown parameter %q", signal.ErrInvalidParameter, name)
		}
		if !finite(v) {
			return nil, fmt.Errorf("%w: %s must be finite, got %v", signal.ErrInvalidParameter, name, v)
		}
		p[name] = v
	}
	return p, nil
}

// Lookup returns the descriptor of a registered family.
func Lookup(f Family) (Descriptor, error) {
	fam, ok := registry[f]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", signal.ErrUnknownFamily, f)
	}
	d := fam.desc
	d.Params = append([]Param(nil), d.Params...)
	return d, nil
}

// Families lists every registered family, sorted by tag.
func Families() []Family {
	names := make([]Family, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
