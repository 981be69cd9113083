package sim

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"golang.org/x/sync/errgroup"
)

// Job is one independent run in a batch.
type Job struct {
	Method integrators.Method
	X0     dynamo.State
	Config Config
}

// RunBatch executes independent runs of sys concurrently, at most workers at
// a time (GOMAXPROCS when workers <= 0). Each job gets its own stepper and
// simulator; sys must be reentrant. Results are in job order. The first
// failure cancels the jobs not yet finished.
func RunBatch(ctx context.Context, sys dynamo.System, jobs []Job, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			stepper, err := integrators.New(job.Method)
			if err != nil {
				return errors.Wrapf(err, "job %d", i)
			}
			res, err := New(sys, stepper).Run(ctx, job.X0, job.Config)
			if err != nil {
				return errors.Wrapf(err, "job %d (%s)", i, job.Method)
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
