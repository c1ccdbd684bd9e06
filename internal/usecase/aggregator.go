// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/gitissues/internal/domain"
	"github.com/naka-gawa/gitissues/internal/gateway"
	"github.com/naka-gawa/gitissues/internal/metrics"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Aggregator is the use case for counting open issues per time window.
// It orchestrates the bucket searches and merges their results.
type Aggregator struct {
	searcher gateway.Searcher
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithClock replaces time.Now as the source of the reference instant.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(searcher gateway.Searcher, logger *slog.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		searcher: searcher,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Windows derives the search window of every bucket from a single reference instant.
// now is truncated to the second so that all bounds share the same precision.
func Windows(repo domain.Repository, now time.Time) map[domain.BucketKey]domain.QueryWindow {
	now = now.UTC().Truncate(time.Second)
	owner, name := repo.Owner, repo.Name
	return map[domain.BucketKey]domain.QueryWindow{
		domain.BucketTotal:         domain.NewQueryWindow(owner, name),
		domain.BucketLast24h:       domain.NewQueryWindow(owner, name, domain.Since(now.Add(-day))),
		domain.BucketLast7dExcl24h: domain.NewQueryWindow(owner, name, domain.Since(now.Add(-week)), domain.Until(now.Add(-day))),
		domain.BucketAllExcl7d:     domain.NewQueryWindow(owner, name, domain.Until(now.Add(-week))),
	}
}

// Aggregate counts open issues of repo in every bucket.
// Buckets are searched concurrently. A failed search never fails the
// aggregate; it is reported as an error marker in that bucket only.
func (a *Aggregator) Aggregate(ctx context.Context, repo domain.Repository) domain.AggregateResponse {
	a.logger.DebugContext(ctx, "Usecase: Starting open issue aggregation...", "repo", repo.String())

	windows := Windows(repo, a.now())
	outcomes := make([]domain.BucketOutcome, len(domain.Buckets))

	// Goroutines never return an error, so one failing bucket cannot cancel the others.
	var eg errgroup.Group
	for i, key := range domain.Buckets {
		eg.Go(func() error {
			outcomes[i] = a.countBucket(ctx, key, windows[key])
			return nil
		})
	}
	_ = eg.Wait()

	a.logger.DebugContext(ctx, "Usecase: Aggregation complete.", "repo", repo.String())
	return domain.NewAggregateResponse(outcomes)
}

func (a *Aggregator) countBucket(ctx context.Context, key domain.BucketKey, window domain.QueryWindow) domain.BucketOutcome {
	start := time.Now()
	result, err := a.searcher.SearchOpenIssues(ctx, window)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordSearch(string(key), metrics.StatusError, elapsed)
		a.logger.WarnContext(ctx, "bucket search failed",
			"repo", window.Repo(),
			"bucket", string(key),
			"error", err,
		)
		return domain.BucketOutcome{Key: key, Err: err}
	}

	metrics.RecordSearch(string(key), metrics.StatusOK, elapsed)
	if result.Incomplete {
		a.logger.WarnContext(ctx, "issue search returned incomplete results",
			"repo", window.Repo(),
			"bucket", string(key),
			"total_count", result.TotalCount,
		)
	}
	return domain.BucketOutcome{Key: key, Count: result.TotalCount}
}
