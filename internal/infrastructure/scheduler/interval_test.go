package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestIntervalDriverRunsImmediatelyAndTicks(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	driver := NewIntervalDriver(10 * time.Millisecond)

	ctx := context.Background()
	if err := driver.Start(ctx, func(time.Time) { runs.Add(1) }); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer driver.Stop(ctx)

	deadline := time.After(500 * time.Millisecond)
	for runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 runs, got %d", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestIntervalDriverStop(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	driver := NewIntervalDriver(5 * time.Millisecond)

	ctx := context.Background()
	if err := driver.Start(ctx, func(time.Time) { runs.Add(1) }); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if err := driver.Stop(ctx); err != nil {
		t.Fatalf("Stop error: %v", err)
	}

	// A tick already selected when Stop landed may still finish.
	time.Sleep(10 * time.Millisecond)
	settled := runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runs.Load() != settled {
		t.Fatal("job kept running after Stop")
	}

	// Stop is idempotent.
	if err := driver.Stop(ctx); err != nil {
		t.Fatalf("second Stop error: %v", err)
	}
}

func TestIntervalDriverNilJob(t *testing.T) {
	t.Parallel()

	driver := NewIntervalDriver(time.Minute)
	if err := driver.Start(context.Background(), nil); err != nil {
		t.Fatalf("nil job must be a no-op, got %v", err)
	}
}
