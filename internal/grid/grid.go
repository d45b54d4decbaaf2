// Package grid defines the discretized space-time domain every waveform is
// evaluated on. A Grid never changes after construction; all accessors hand
// out copies.
package grid

import (
	"fmt"
	"math"

	"github.com/san-kum/sigsynth/internal/signal"
)

type Grid struct {
	space     []float64
	time      []float64
	spaceMesh signal.Field
	timeMesh  signal.Field
}

// New builds a grid over [xMin, xMax] x [tMin, tMax] with nx spatial and nt
// temporal points, both endpoints included.
func New(xMin, xMax float64, nx int, tMin, tMax float64, nt int) (*Grid, error) {
	if err := checkAxis("space", xMin, xMax, nx); err != nil {
		return nil, err
	}
	if err := checkAxis("time", tMin, tMax, nt); err != nil {
		return nil, err
	}
	return build(Linspace(xMin, xMax, nx), Linspace(tMin, tMax, nt)), nil
}

// NewSymmetric builds the x in [-halfWidth, halfWidth], t in [0, timeScale*pi] grid.
func NewSymmetric(halfWidth, timeScale float64, nx, nt int) (*Grid, error) {
	if !finite(halfWidth) || halfWidth <= 0 {
		return nil, fmt.Errorf("%w: half width must be positive, got %v", signal.ErrInvalidDomain, halfWidth)
	}
	if !finite(timeScale) || timeScale <= 0 {
		return nil, fmt.Errorf("%w: time scale must be positive, got %v", signal.ErrInvalidDomain, timeScale)
	}
	return New(-halfWidth, halfWidth, nx, 0, timeScale*math.Pi, nt)
}

func checkAxis(axis string, lo, hi float64, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %s size must be at least 1, got %d", signal.ErrInvalidDomain, axis, n)
	}
	if !finite(lo) || !finite(hi) {
		return fmt.Errorf("%w: %s bounds must be finite", signal.ErrInvalidDomain, axis)
	}
	if lo >= hi {
		return fmt.Errorf("%w: %s bounds must increase, got [%v, %v]", signal.ErrInvalidDomain, axis, lo, hi)
	}
	return nil
}

func build(space, time []float64) *Grid {
	nt, nx := len(time), len(space)
	sm := signal.Zeros(nt, nx)
	tm := signal.Zeros(nt, nx)
	for i := 0; i < nt; i++ {
		copy(sm[i], space)
		for j := 0; j < nx; j++ {
			tm[i][j] = time[i]
		}
	}
	return &Grid{space: space, time: time, spaceMesh: sm, timeMesh: tm}
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// The last value is pinned to stop so rounding never overshoots the bound.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (g *Grid) NX() int { return len(g.space) }
func (g *Grid) NT() int { return len(g.time) }

// Shape is the (nt, nx) shape shared by both meshes and every composed field.
func (g *Grid) Shape() (int, int) { return len(g.time), len(g.space) }

func (g *Grid) Space() []float64 { return append([]float64(nil), g.space...) }
func (g *Grid) Time() []float64  { return append([]float64(nil), g.time...) }

// SpaceMesh satisfies SpaceMesh()[i][j] == Space()[j].
func (g *Grid) SpaceMesh() signal.Field { return g.spaceMesh.Clone() }

// TimeMesh satisfies TimeMesh()[i][j] == Time()[i].
func (g *Grid) TimeMesh() signal.Field { return g.timeMesh.Clone() }

// X and T read single mesh points without copying.
func (g *Grid) X(j int) float64 { return g.space[j] }
func (g *Grid) T(i int) float64 { return g.time[i] }

// HalfWidth is half the spatial extent, L for a symmetric grid.
func (g *Grid) HalfWidth() float64 {
	return (g.space[len(g.space)-1] - g.space[0]) / 2
}

// Bounds returns xMin, xMax, tMin, tMax.
func (g *Grid) Bounds() (float64, float64, float64, float64) {
	return g.space[0], g.space[len(g.space)-1], g.time[0], g.time[len(g.time)-1]
}
