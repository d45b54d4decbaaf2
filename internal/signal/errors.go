package signal

import (
	"errors"
	"fmt"
)

// Error kinds shared by every synthesis package. Call sites wrap them with
// context; callers branch with errors.Is.
var (
	// ErrInvalidDomain indicates bad grid bounds or sizes.
	ErrInvalidDomain = errors.New("sigsynth: invalid domain")

	// ErrInvalidParameter indicates a non-finite or out-of-range waveform, noise or sampler parameter.
	ErrInvalidParameter = errors.New("sigsynth: invalid parameter")

	// ErrDegenerateNormalization indicates a normalization denominator too close to zero.
	ErrDegenerateNormalization = errors.New("sigsynth: degenerate normalization")

	// ErrUnknownFamily indicates a waveform family tag outside the library.
	ErrUnknownFamily = errors.New("sigsynth: unknown waveform family")

	// ErrUnknownGroup indicates a preset group name that is not registered.
	ErrUnknownGroup = errors.New("sigsynth: unknown group")

	// ErrDimensionMismatch indicates arrays whose shapes do not line up.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidParameter)
)

// ComponentError wraps an error with the position of the component in a batch.
type ComponentError struct {
	Index   int
	Label   string
	Wrapped error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %d (%s): %v", e.Index, e.Label, e.Wrapped)
}

func (e *ComponentError) Unwrap() error {
	return e.Wrapped
}
