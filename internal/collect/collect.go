// Package collect fans out over discovered history sources, extracts their
// visits concurrently and merges everything into one sorted timeline. One
// failing source never aborts the run: its error lands in the per-source
// report and the remaining browsers still contribute.
package collect

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/webtrail/internal/adapter"
	"github.com/vburojevic/webtrail/internal/domain"
	"github.com/vburojevic/webtrail/internal/timeline"
)

// DefaultDaysBack bounds discovery mode when no explicit window is given
const DefaultDaysBack = 30

// Post-filters discard rows after extraction, so a filtered run fetches a
// wider per-source budget to keep the final page full.
const restrictiveFetchMultiplier = 10

// Options shapes one collection pass
type Options struct {
	// DaysBack bounds extraction to the last N days. Zero or negative
	// falls back to DefaultDaysBack unless NoTimeFilter is set.
	DaysBack int
	// Limit caps rows fetched per source. Zero means unbounded.
	Limit int
	// NoTimeFilter disables the lookback window entirely (exhaustive mode).
	NoTimeFilter bool
	// Restrictive widens the per-source budget because post-extraction
	// filters will discard rows.
	Restrictive bool
}

// SourceReport is the per-source outcome of a collection pass
type SourceReport struct {
	Source  adapter.Source
	Visits  int
	Skipped int
	Err     error
}

// Result is a merged, sorted timeline plus per-source diagnostics
type Result struct {
	Timeline *timeline.Timeline
	Reports  []SourceReport
}

// Collector merges visits from many sources into one timeline
type Collector struct {
	clk    clock.Clock
	logger *zap.Logger
}

// New returns a collector. Nil arguments get working defaults.
func New(clk clock.Clock, logger *zap.Logger) *Collector {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{clk: clk, logger: logger}
}

// Collect extracts every source concurrently and merges the results. The
// returned error reflects context cancellation only; per-source failures
// are reported in Result.Reports.
func (c *Collector) Collect(ctx context.Context, sources []adapter.Source, opts Options) (Result, error) {
	extractOpts := c.extractOptions(opts)

	type outcome struct {
		visits  []domain.Visit
		skipped int
		err     error
	}
	outcomes := make([]outcome, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			visits, skipped, err := c.extract(gctx, src, extractOpts)
			outcomes[i] = outcome{visits: visits, skipped: skipped, err: err}
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Single sync point: merge in source order, then one sort.
	result := Result{Timeline: timeline.New(nil)}
	for i, src := range sources {
		o := outcomes[i]
		result.Reports = append(result.Reports, SourceReport{
			Source:  src,
			Visits:  len(o.visits),
			Skipped: o.skipped,
			Err:     o.err,
		})
		result.Timeline.Append(o.visits...)
	}
	result.Timeline.Sort()

	c.logger.Debug("collection finished",
		zap.Int("sources", len(sources)),
		zap.Int("visits", result.Timeline.Len()))
	return result, nil
}

func (c *Collector) extractOptions(opts Options) adapter.Options {
	var cutoff time.Time
	if !opts.NoTimeFilter {
		days := opts.DaysBack
		if days <= 0 {
			days = DefaultDaysBack
		}
		cutoff = c.clk.Now().UTC().AddDate(0, 0, -days)
	}
	limit := opts.Limit
	if opts.Restrictive && limit > 0 {
		limit *= restrictiveFetchMultiplier
	}
	return adapter.Options{Cutoff: cutoff, Limit: limit}
}

func (c *Collector) extract(ctx context.Context, src adapter.Source, opts adapter.Options) ([]domain.Visit, int, error) {
	a := adapter.New(src, c.clk, c.logger)
	it, err := a.Visits(ctx, opts)
	if err != nil {
		c.logger.Debug("source failed",
			zap.String("browser", string(src.Browser)),
			zap.String("path", src.Path),
			zap.Error(err))
		return nil, 0, err
	}
	defer it.Close()

	var visits []domain.Visit
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, it.Skipped(), err
		}
		visits = append(visits, it.Visit())
	}
	if err := it.Err(); err != nil {
		return visits, it.Skipped(), err
	}
	c.logger.Debug("source extracted",
		zap.String("browser", string(src.Browser)),
		zap.String("profile", src.Profile),
		zap.Int("visits", len(visits)),
		zap.Int("skipped", it.Skipped()))
	return visits, it.Skipped(), nil
}
