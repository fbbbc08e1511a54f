package scale

import (
	"context"
	"time"
)

// Delay provides the timing waits that register sequencing depends on.
// Granularity requirements go down to microseconds; implementations should be
// treated as best-effort on a general-purpose OS.
type Delay interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerDelay implements Delay with a timer raced against context cancellation.
type TimerDelay struct{}

func (TimerDelay) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
