package timing

import (
	"context"
	"time"
)

// Limiter controls the polling cadence.
type Limiter interface {
	// WaitForNextPoll blocks until it's time for the next poll, or until ctx
	// is done, in which case it returns ctx.Err().
	WaitForNextPoll(ctx context.Context) error

	// Reset restarts the cadence, useful after a long bounce guard.
	Reset()
}

// Defaults for the polling loop.
const (
	// DefaultPollInterval is the time between polling cycles.
	DefaultPollInterval = 2 * time.Millisecond
	// DefaultBounceGuard is the pause after every cycle that reads a button
	// as held. Contact chatter on arcade microswitches settles well within it.
	DefaultBounceGuard = 20 * time.Millisecond
)

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode and
// tests).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextPoll(ctx context.Context) error { return ctx.Err() }
func (n *noOpLimiter) Reset()                                   {}
