// Package signal holds the array type and error kinds shared by the grid,
// waveform, composer, noise and sampler packages.
package signal

import (
	"fmt"
	"math"
)

// Field is a 2D array indexed by (time, space): one row per time sample.
type Field [][]float64

// Zeros allocates a rows x cols field backed by a single slice.
func Zeros(rows, cols int) Field {
	backing := make([]float64, rows*cols)
	f := make(Field, rows)
	for i := range f {
		f[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return f
}

func (f Field) Clone() Field {
	if f == nil {
		return nil
	}
	rows, cols := f.Shape()
	c := Zeros(rows, cols)
	for i := range f {
		copy(c[i], f[i])
	}
	return c
}

// Shape returns (rows, cols). A field with no rows has zero columns.
func (f Field) Shape() (int, int) {
	if len(f) == 0 {
		return 0, 0
	}
	return len(f), len(f[0])
}

func (f Field) IsFinite() bool {
	for _, row := range f {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// AddInPlace accumulates other into f elementwise.
func (f Field) AddInPlace(other Field) error {
	if err := f.sameShape(other); err != nil {
		return err
	}
	for i := range f {
		for j := range f[i] {
			f[i][j] += other[i][j]
		}
	}
	return nil
}

func (f Field) Row(i int) []float64 {
	r := make([]float64, len(f[i]))
	copy(r, f[i])
	return r
}

func (f Field) Column(j int) []float64 {
	c := make([]float64, len(f))
	for i := range f {
		c[i] = f[i][j]
	}
	return c
}

// Equal reports whether both fields share a shape and every element
// differs by at most tol.
func (f Field) Equal(other Field, tol float64) bool {
	if f.sameShape(other) != nil {
		return false
	}
	for i := range f {
		for j := range f[i] {
			if math.Abs(f[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// RMS is the root mean square over every element.
func (f Field) RMS() float64 {
	rows, cols := f.Shape()
	if rows*cols == 0 {
		return 0
	}
	sum := 0.0
	for _, row := range f {
		for _, v := range row {
			sum += v * v
		}
	}
	return math.Sqrt(sum / float64(rows*cols))
}

func (f Field) sameShape(other Field) error {
	r1, c1 := f.Shape()
	r2, c2 := other.Shape()
	if r1 != r2 || c1 != c2 {
		return fmt.Errorf("%w: (%d, %d) vs (%d, %d)", ErrDimensionMismatch, r1, c1, r2, c2)
	}
	for i := range other {
		if len(other[i]) != c1 || len(f[i]) != c1 {
			return fmt.Errorf("%w: ragged row %d", ErrDimensionMismatch, i)
		}
	}
	return nil
}
