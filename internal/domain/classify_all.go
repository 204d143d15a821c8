package domain

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const minChunk = 256

// ClassifyAll runs CategorizeExclusive over devices with up to workers
// goroutines. The result is index-aligned with devices. It only fails when
// ctx is cancelled.
func ClassifyAll(ctx context.Context, devices []*Device, workers int) ([]Category, error) {
	out := make([]Category, len(devices))
	if len(devices) == 0 {
		return out, nil
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (len(devices) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(devices); start += chunk {
		end := min(start+chunk, len(devices))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i] = CategorizeExclusive(devices[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
