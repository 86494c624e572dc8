package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsTagger/internal/domain"
	"NewsTagger/internal/ports"
)

// CollectRunner is the collection entry point the scheduler triggers. Using
// the guarded application method here keeps overlapping runs impossible.
type CollectRunner interface {
	Collect(ctx context.Context) (domain.CollectionStats, error)
}

// Scheduler wires the interval driver with the collection entry point.
type Scheduler struct {
	driver    ports.CollectionDriver
	collector CollectRunner
	logger    *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring collection runs.
func NewScheduler(driver ports.CollectionDriver, collector CollectRunner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, collector: collector, logger: logger}
}

// Start registers the collection job with the provided driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.collector == nil {
		return nil
	}

	job := func(trigger time.Time) {
		stats, err := s.collector.Collect(ctx)
		if err != nil {
			s.logger.Error("scheduled collection failed",
				"trigger", trigger,
				"error", err)
			return
		}
		s.logger.Info("scheduled collection finished",
			"trigger", trigger,
			"new_articles", stats.NewArticles,
			"duplicates", stats.Duplicates)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
