package docset

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BuildAll builds one Set per list of sorted doc IDs, in parallel.
// WithConcurrency bounds the number of concurrent builds.
//
// The result is in input order. The first failing list cancels the rest and
// its error is returned wrapped with the list number.
func BuildAll(ctx context.Context, lists [][]uint32, opts ...Option) ([]*Set, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	sets := make([]*Set, len(lists))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, ids := range lists {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b := newBuilder(o)
			if err := b.AddMany(ids); err != nil {
				return fmt.Errorf("list %d: %w", i, err)
			}
			sets[i] = b.Build()
			return nil
		})
	}

	err = g.Wait()
	o.logger.LogBuildAll(ctx, len(lists), err)
	if err != nil {
		return nil, err
	}
	return sets, nil
}
