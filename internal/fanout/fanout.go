// netra-dburl: database connection URL resolution and diagnostics for Netra
// SPDX-License-Identifier: MIT
//
// Parallel fanout across configuration environments.

package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Fanout runs fn concurrently over items and returns results in input order.
func Fanout[I, T any](ctx context.Context, items []I, fn func(context.Context, I) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]T, len(items))
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			r, err := fn(ctx, it)
			if err != nil {
				var zero T
				results[i] = zero
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
