package timing

import (
	"context"
	"time"
)

// TickerLimiter uses time.Ticker for a simple, consistent poll rate.
type TickerLimiter struct {
	interval time.Duration
	ticker   *time.Ticker
	ch       <-chan time.Time
}

func NewTickerLimiter(interval time.Duration) *TickerLimiter {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	return &TickerLimiter{
		interval: interval,
		ticker:   ticker,
		ch:       ticker.C,
	}
}

func (t *TickerLimiter) WaitForNextPoll(ctx context.Context) error {
	select {
	case <-t.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.interval)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
