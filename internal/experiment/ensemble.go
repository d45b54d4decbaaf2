package experiment

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/sigsynth/internal/config"
	"github.com/san-kum/sigsynth/internal/signal"
)

// Ensemble runs isolated copies of one configuration concurrently, run i
// seeded with seedStart+i.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	opts      []Option
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{cfg: cfg.Clone(), numRuns: numRuns, seedStart: seedStart, opts: opts}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("%w: ensemble needs at least 1 run, got %d", signal.ErrInvalidParameter, e.numRuns)
	}
	results := make([]*Result, e.numRuns)

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		eg.Go(func() error {
			cfg := e.cfg.Clone()
			seed := e.seedStart + int64(i)
			cfg.Noise.Seed = &seed

			res, err := New(cfg, e.opts...).Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
