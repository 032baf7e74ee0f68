package dumpio

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DumpTimes reads the times of many dumps, using at most workers goroutines.
// Times are returned in the same order as fnames. workers <= 0 means one per
// CPU. The first error stops the remaining reads.
func DumpTimes(ctx context.Context, fnames []string, workers int) ([]float64, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	times := make([]float64, len(fnames))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range fnames {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := DumpTime(fnames[i])
			if err != nil {
				return fmt.Errorf("reading time of %s: %w", fnames[i], err)
			}
			times[i] = t
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return times, nil
}
