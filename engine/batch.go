package engine

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
	"github.com/sbl8/wick/internal/logger"
)

// Job is one named term to contract.
type Job struct {
	Name string
	Term core.Term
	Mode contract.Mode
}

// BatchResult is the outcome of one Job.
type BatchResult struct {
	Name    string
	Mode    contract.Mode
	Sum     *core.Sum
	Err     error
	Elapsed time.Duration
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Workers bounds the number of terms computed at once. Default: NumCPU.
	Workers int
	Logger  *zap.Logger
}

// DefaultBatchOptions uses one worker per CPU.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{Workers: runtime.NumCPU(), Logger: zap.NewNop()}
}

// RunBatch computes every job, at most Workers at a time, and returns the
// results in job order.
//
// A failing job records its error in its BatchResult without stopping the
// others. The returned error is non-nil only when ctx is cancelled, in
// which case jobs that never started carry the context error.
func RunBatch(ctx context.Context, jobs []Job, opts *BatchOptions) ([]BatchResult, error) {
	o := DefaultBatchOptions()
	if opts != nil {
		o = *opts
		if o.Workers <= 0 {
			o.Workers = runtime.NumCPU()
		}
	}
	log := logger.OrNop(o.Logger)

	ctx, span := engineTracer.Start(ctx, "RunBatch",
		trace.WithAttributes(
			attribute.Int("wick.jobs", len(jobs)),
			attribute.Int("wick.workers", o.Workers),
		),
	)
	defer span.End()

	results := make([]BatchResult, len(jobs))
	for i, job := range jobs {
		results[i] = BatchResult{Name: job.Name, Mode: job.Mode}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)

	for i, job := range jobs {
		if err := gctx.Err(); err != nil {
			for k := i; k < len(jobs); k++ {
				results[k].Err = err
			}
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			start := time.Now()
			c := New(job.Term, &Options{Mode: job.Mode, Logger: log.With(zap.String("term", job.Name)), EnableStats: true})
			if err := c.Compute(gctx); err != nil {
				results[i].Err = err
				log.Warn("term failed", zap.String("term", job.Name), zap.Error(err))
				return nil
			}
			results[i].Sum = c.Result()
			results[i].Elapsed = time.Since(start)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return results, err
	}
	return results, ctx.Err()
}
