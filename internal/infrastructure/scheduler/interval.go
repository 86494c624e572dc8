package scheduler

import (
	"context"
	"time"

	"NewsTagger/internal/ports"
)

// IntervalDriver triggers the collection job on a fixed time.Ticker cadence.
type IntervalDriver struct {
	interval time.Duration
	stop     chan struct{}
}

var _ ports.CollectionDriver = (*IntervalDriver)(nil)

// NewIntervalDriver builds a driver ticking at the given interval.
func NewIntervalDriver(interval time.Duration) *IntervalDriver {
	if interval <= 0 {
		interval = time.Hour
	}
	return &IntervalDriver{interval: interval}
}

// Start runs the job once immediately, then on every tick until Stop or
// context cancellation.
func (d *IntervalDriver) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if d.stop != nil {
		return nil
	}

	d.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-d.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (d *IntervalDriver) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	close(d.stop)
	d.stop = nil
	return nil
}
