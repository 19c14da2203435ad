package cidbatch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mintprep/internal/services/cidtool"
)

// DefaultLimit bounds concurrently outstanding cid invocations.
const DefaultLimit = 16

// Compute invokes client for every path with at most limit calls in flight
// and returns the identifiers aligned to the input order: result[i] always
// belongs to paths[i], regardless of completion order. The first failure
// cancels the remaining work and fails the whole batch; no partial results
// are returned. onDone, when non-nil, fires with the input index after each
// successful computation.
func Compute(ctx context.Context, client cidtool.Client, paths []string, limit int, onDone func(index int)) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			cid, err := client.Compute(ctx, path)
			if err != nil {
				return err
			}
			results[i] = cid
			if onDone != nil {
				onDone(i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
