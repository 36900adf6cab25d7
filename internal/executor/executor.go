// Package executor provides the generic map-collect execution facility
// (spec §6 Executor collaborator): a bounded-parallelism map over partition
// work that preserves input order via item-embedded ordinals, grounded on
// the teacher's errgroup-based worker/collector shape (motor/searcher.go,
// hargen's walker phase).
package executor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapCollect runs fn over each item in items with at most parallelism
// concurrent workers, returning results in input order. The first worker
// error cancels the remaining batch and is returned (spec §5: "if any
// worker fails with a stream error, the batch fails; no partial commit").
func MapCollect[T, R any](ctx context.Context, items []T, parallelism int, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	results := make([]R, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
