// Package scheduler triggers periodic observation refreshes.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher is the job the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler runs the refresh job on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Scheduler that refreshes every interval, bounding each cycle
// by timeout.
func New(r Refresher, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: r,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start runs one refresh immediately so the service becomes ready without
// waiting a full interval, then schedules the periodic job.
func (s *Scheduler) Start() error {
	s.runOnce()

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval_minutes", minutes)
	return nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Error("scheduled refresh failed", "error", err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
