package timing

import (
	"sync"
	"time"
)

// Sleeper blocks the polling loop for the bounce guard.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a function to a Sleeper.
type SleepFunc func(time.Duration)

func (f SleepFunc) Sleep(d time.Duration) { f(d) }

// RealSleeper sleeps on the wall clock.
var RealSleeper Sleeper = SleepFunc(time.Sleep)

// RecordingSleeper never blocks; it remembers what it was asked to do.
type RecordingSleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (r *RecordingSleeper) Sleep(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sleeps = append(r.sleeps, d)
}

// Sleeps returns every requested duration in order.
func (r *RecordingSleeper) Sleeps() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.sleeps))
	copy(out, r.sleeps)
	return out
}

// Total returns the sum of every requested duration.
func (r *RecordingSleeper) Total() time.Duration {
	var total time.Duration
	for _, d := range r.Sleeps() {
		total += d
	}
	return total
}
