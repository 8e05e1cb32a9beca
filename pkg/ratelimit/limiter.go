// Package ratelimit implements a fixed-window per-client request throttle.
// The window resets at fixed intervals, so bursts straddling a boundary can
// briefly exceed the configured rate.
package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// ErrLimited is returned when a client exhausts its window allowance.
var ErrLimited = errors.New("rate limit exceeded")

type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter tracks one fixed-window counter per client identifier.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]bucket

	now func() time.Time // injectable clock
}

// New builds a limiter allowing limit requests per window per client.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]bucket),
		now:     time.Now,
	}
}

// Check records one request for clientID, returning ErrLimited when the
// allowance for the current window is already spent.
func (l *Limiter) Check(clientID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[clientID]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[clientID] = bucket{count: 1, windowStart: now}
		return nil
	}
	if b.count+1 > l.limit {
		return ErrLimited
	}
	b.count++
	l.buckets[clientID] = b
	return nil
}
