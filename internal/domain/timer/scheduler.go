package timer

import (
	"context"
	"time"
)

// IntervalScheduler drives ticks from a time.Ticker.
type IntervalScheduler struct {
	interval time.Duration
}

// NewIntervalScheduler creates a scheduler ticking every interval. A
// non-positive interval means one second.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &IntervalScheduler{interval: interval}
}

// Schedule starts a ticker goroutine and returns its cancel func.
func (s *IntervalScheduler) Schedule(tick func()) func() {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(s.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				tick()
			}
		}
	}()

	return cancel
}
