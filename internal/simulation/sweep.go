package simulation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Sweep runs base at every noise level, at most workers at a time, and
// returns results in the order of noises. Each level gets its own engine;
// a seeded base gives level i the seed base.Seed+i.
func (r *Runner) Sweep(ctx context.Context, base Scenario, noises []float64, workers int) ([]Result, error) {
	if len(noises) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(noises))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range noises {
		sc := base.WithNoise(p)
		if base.Seed != 0 {
			sc.Seed = base.Seed + uint64(i)
		}
		g.Go(func() error {
			res, err := r.Run(ctx, sc)
			if err != nil {
				return fmt.Errorf("sweep: %w", err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
