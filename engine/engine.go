// Package engine orchestrates Wick contractions of a term.
//
// Key components:
//   - Contractor: holds one input term, the selected mode, and the vacuum
//     and statistics inferred from the term; Compute dispatches through
//     contract.Catalog and stores the simplified result
//   - Stats: per-contractor execution counters and latency
//   - RunBatch: computes independent terms concurrently, one Contractor
//     per term
//
// Every computation is single-threaded and synchronous. Contractors emit
// OpenTelemetry spans and metrics through the global providers and log
// through zap at debug level.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
	"github.com/sbl8/wick/internal/logger"
)

var engineTracer = otel.Tracer("wick.engine")

var (
	ErrUnsupportedVacuum = errors.New("unsupported vacuum")
	ErrUnknownMode       = errors.New("unknown contraction mode")
)

// Options configures a Contractor.
type Options struct {
	Mode        contract.Mode
	Logger      *zap.Logger
	EnableStats bool
}

// Stats tracks contractor execution metrics.
type Stats struct {
	TotalComputations int64
	AverageLatency    time.Duration
	ModeComputations  map[contract.Mode]int64
	LastResultTerms   int
}

// DefaultOptions selects the general expansion with a no-op logger.
func DefaultOptions() Options {
	return Options{
		Mode:        contract.ModeGeneral,
		Logger:      zap.NewNop(),
		EnableStats: true,
	}
}

// Contractor applies Wick's theorem to a single term.
type Contractor struct {
	term   core.Term
	mode   contract.Mode
	vacuum core.Vacuum
	stats  core.Statistics
	log    *zap.Logger
	opts   Options

	mu        sync.RWMutex
	result    *core.Sum
	execStats Stats
}

// New creates a contractor over a copy of term. A nil opts uses DefaultOptions.
func New(term core.Term, opts *Options) *Contractor {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.Logger = logger.OrNop(o.Logger)

	return &Contractor{
		term:      term.Clone(),
		mode:      o.Mode,
		vacuum:    inferVacuum(term),
		stats:     term.Statistics(),
		log:       o.Logger,
		opts:      o,
		execStats: Stats{ModeComputations: make(map[contract.Mode]int64)},
	}
}

// inferVacuum takes the vacuum of the first operator, Physical if there is none.
func inferVacuum(t core.Term) core.Vacuum {
	if t.Len() == 0 {
		return core.Physical
	}
	return t.Operator(0).Index.Vacuum()
}

// SetMode selects the contraction algorithm for the next Compute.
func (c *Contractor) SetMode(m contract.Mode) *Contractor {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
	return c
}

// FullContractions selects full contraction when full is true and the
// general expansion otherwise.
func (c *Contractor) FullContractions(full bool) *Contractor {
	if full {
		return c.SetMode(contract.ModeFull)
	}
	return c.SetMode(contract.ModeGeneral)
}

func (c *Contractor) Mode() contract.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

func (c *Contractor) Vacuum() core.Vacuum         { return c.vacuum }
func (c *Contractor) Statistics() core.Statistics { return c.stats }
func (c *Contractor) Term() core.Term             { return c.term.Clone() }

// Compute runs the selected algorithm and stores the simplified result.
//
// Only the physical vacuum is supported; other vacua return
// ErrUnsupportedVacuum and leave the previous result in place.
func (c *Contractor) Compute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := c.Mode()

	ctx, span := engineTracer.Start(ctx, "Contractor.Compute",
		trace.WithAttributes(
			attribute.String("wick.mode", mode.String()),
			attribute.String("wick.vacuum", c.vacuum.String()),
			attribute.String("wick.statistics", c.stats.String()),
			attribute.Int("wick.operators", c.term.Len()),
		),
	)
	defer span.End()

	if c.vacuum != core.Physical {
		err := fmt.Errorf("%w: %s", ErrUnsupportedVacuum, c.vacuum)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unsupported vacuum")
		return err
	}

	fn := contract.Lookup(mode)
	if fn == nil {
		err := fmt.Errorf("%w: %s", ErrUnknownMode, mode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown mode")
		return err
	}

	start := time.Now()
	result := fn(c.term)
	result.Simplify()
	elapsed := time.Since(start)

	c.mu.Lock()
	c.result = result
	if c.opts.EnableStats {
		c.recordLocked(mode, elapsed, result.Len())
	}
	c.mu.Unlock()

	recordMetrics(ctx, mode, result.Len())
	span.SetAttributes(attribute.Int("wick.result_terms", result.Len()))

	c.log.Debug("compute finished",
		zap.String("mode", mode.String()),
		zap.String("vacuum", c.vacuum.String()),
		zap.Int("operators", c.term.Len()),
		zap.Int("terms", result.Len()),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

func (c *Contractor) recordLocked(mode contract.Mode, elapsed time.Duration, terms int) {
	n := c.execStats.TotalComputations
	c.execStats.AverageLatency = time.Duration((int64(c.execStats.AverageLatency)*n + int64(elapsed)) / (n + 1))
	c.execStats.TotalComputations = n + 1
	c.execStats.ModeComputations[mode]++
	c.execStats.LastResultTerms = terms
}

// Result returns a copy of the last computed sum, or the empty sum.
func (c *Contractor) Result() *core.Sum {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return core.NewSum().Add(c.result)
}

// Stats returns a snapshot of the execution statistics.
func (c *Contractor) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.execStats
	stats.ModeComputations = make(map[contract.Mode]int64, len(c.execStats.ModeComputations))
	for k, v := range c.execStats.ModeComputations {
		stats.ModeComputations[k] = v
	}
	return stats
}

// Compute is a convenience for New(term, &Options{Mode: mode}).Compute.
func Compute(ctx context.Context, term core.Term, mode contract.Mode) (*core.Sum, error) {
	c := New(term, &Options{Mode: mode})
	if err := c.Compute(ctx); err != nil {
		return nil, err
	}
	return c.Result(), nil
}

var (
	instrumentsOnce sync.Once
	computeCounter  metric.Int64Counter
	termsHistogram  metric.Int64Histogram
)

func recordMetrics(ctx context.Context, mode contract.Mode, terms int) {
	instrumentsOnce.Do(func() {
		meter := otel.Meter("wick.engine")
		computeCounter, _ = meter.Int64Counter("wick.compute.count",
			metric.WithDescription("Number of completed contractions"))
		termsHistogram, _ = meter.Int64Histogram("wick.compute.terms",
			metric.WithDescription("Terms in each simplified result"))
	})

	attrs := metric.WithAttributes(attribute.String("wick.mode", mode.String()))
	if computeCounter != nil {
		computeCounter.Add(ctx, 1, attrs)
	}
	if termsHistogram != nil {
		termsHistogram.Record(ctx, int64(terms), attrs)
	}
}
