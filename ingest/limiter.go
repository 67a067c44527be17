package ingest

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the number of documents processed in parallel when
// no explicit limit is configured.
const DefaultConcurrency = 5

// Limiter bounds the number of in-flight embed-and-store tasks.
// Acquire blocks until a slot is free or the context is cancelled; every
// successful Acquire must be paired with exactly one Release.
type Limiter struct {
	sem *semaphore.Weighted
	cap int64
}

// NewLimiter creates a limiter with the given capacity.
// Capacities below one are raised to one.
func NewLimiter(capacity int) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{
		sem: semaphore.NewWeighted(int64(capacity)),
		cap: int64(capacity),
	}
}

// Acquire claims a slot, blocking until one is available.
// Returns the context's error if it is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// Release returns a previously acquired slot.
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Cap returns the configured capacity.
func (l *Limiter) Cap() int {
	return int(l.cap)
}
