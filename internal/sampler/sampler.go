// Package sampler subsamples a time series by stride and truncation length.
package sampler

import (
	"fmt"

	"github.com/san-kum/sigsynth/internal/signal"
)

type config struct {
	limit    int
	hasLimit bool
}

type Option func(*config)

// WithLimit keeps only the first n time steps before striding. A limit past
// the end keeps everything.
func WithLimit(n int) Option {
	return func(c *config) { c.limit, c.hasLimit = n, true }
}

// Sample truncates data and time to the limit, then keeps every stride-th
// entry starting at index 0. Rows are not copied; see SampleField.
func Sample[T any](data []T, time []float64, stride int, opts ...Option) ([]T, []float64, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if stride < 1 {
		return nil, nil, fmt.Errorf("%w: stride must be >= 1, got %d", signal.ErrInvalidParameter, stride)
	}
	if c.hasLimit && c.limit < 0 {
		return nil, nil, fmt.Errorf("%w: limit must be >= 0, got %d", signal.ErrInvalidParameter, c.limit)
	}
	if len(data) != len(time) {
		return nil, nil, fmt.Errorf("%w: %d data rows vs %d time points", signal.ErrDimensionMismatch, len(data), len(time))
	}

	n := len(time)
	if c.hasLimit && c.limit < n {
		n = c.limit
	}

	size := (n + stride - 1) / stride
	subData := make([]T, 0, size)
	subTime := make([]float64, 0, size)
	for i := 0; i < n; i += stride {
		subData = append(subData, data[i])
		subTime = append(subTime, time[i])
	}
	return subData, subTime, nil
}

// SampleField is Sample over a field, with every kept row copied.
func SampleField(data signal.Field, time []float64, stride int, opts ...Option) (signal.Field, []float64, error) {
	rows, subTime, err := Sample(data, time, stride, opts...)
	if err != nil {
		return nil, nil, err
	}
	return signal.Field(rows).Clone(), subTime, nil
}
