// Package ingest orchestrates the fetch-decode-store refresh cycle.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mesowx/mesoanalysis/internal/analysis"
	"github.com/mesowx/mesoanalysis/internal/domain"
	"github.com/mesowx/mesoanalysis/internal/observability"
	"github.com/mesowx/mesoanalysis/internal/store"
)

// ErrSuperseded is returned by Refresh when a newer refresh started while
// this one was in flight; the stale result is discarded, not stored.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Fetcher retrieves the current observation set from upstream.
type Fetcher interface {
	FetchCurrent(ctx context.Context) ([]domain.Observation, error)
}

// Publisher pushes a completed snapshot to downstream consumers.
type Publisher interface {
	PublishSnapshot(ctx context.Context, snap store.Snapshot) error
}

// Refresher runs refresh cycles: fetch observations, store a snapshot, and
// optionally publish it.
type Refresher struct {
	fetcher   Fetcher
	history   *store.History
	publisher Publisher // nil when publishing is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	refreshes analysis.Coalescer
}

// New creates a Refresher. publisher may be nil.
func New(f Fetcher, h *store.History, p Publisher, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		fetcher:   f,
		history:   h,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one refresh has stored a snapshot,
// or an error describing why the service is not yet ready.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no observation snapshot stored yet")
	}
	return nil
}

// Refresh executes one fetch-store-publish cycle. Overlapping calls coalesce:
// starting a refresh cancels the context of any refresh still in flight, and
// a fetch that completes after being superseded returns ErrSuperseded without
// storing its snapshot. A fetch that decodes zero observations is treated as
// a failure so the previous snapshot stays current.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()
	ctx, gen := r.refreshes.Next(ctx)
	r.metrics.RefreshTotal.Inc()
	r.metrics.RefreshRunning.Set(1)
	defer r.metrics.RefreshRunning.Set(0)

	obs, err := r.fetcher.FetchCurrent(ctx)
	if r.refreshes.Stale(gen) {
		r.logger.Info("refresh superseded, discarding result", "generation", gen)
		return ErrSuperseded
	}
	if err != nil {
		r.metrics.RefreshErrors.Inc()
		r.logger.Error("refresh failed", "error", err)
		return fmt.Errorf("fetch observations: %w", err)
	}
	if len(obs) == 0 {
		r.metrics.RefreshErrors.Inc()
		r.logger.Warn("refresh returned no observations, keeping previous snapshot")
		return errors.New("no observations decoded")
	}

	snap := store.Snapshot{
		Time:         domain.TimeNow().UTC(),
		Observations: obs,
	}
	r.history.Add(snap)
	r.ready.Store(true)

	r.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	r.metrics.StationsCurrent.Set(float64(len(obs)))
	r.metrics.SnapshotsHeld.Set(float64(r.history.Len()))

	r.logger.Info("snapshot stored",
		"stations", len(obs),
		"snapshots_held", r.history.Len(),
		"duration", time.Since(start))

	if r.publisher != nil {
		if err := r.publisher.PublishSnapshot(ctx, snap); err != nil {
			// Publishing is best-effort; local consumers already have the
			// snapshot.
			r.metrics.PublishErrors.Inc()
			r.logger.Warn("snapshot publish failed", "error", err)
		} else {
			r.metrics.SnapshotsPublished.Inc()
		}
	}
	return nil
}
