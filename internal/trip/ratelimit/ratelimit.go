// Package ratelimit provides a sliding-window request limiter keyed by client.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter allows up to limit requests per key within any rolling period. It
// keeps a timestamp log per key rather than a windowed counter, so a burst
// that filled the window frees up gradually as its entries age out instead of
// all at once on a reset tick.
type Limiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	period time.Duration
	done   chan struct{}
}

// New creates a Limiter.
func New(limit int, period time.Duration) *Limiter {
	l := &Limiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		period: period,
		done:   make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether another request for key fits in the rolling window
// ending now, and records it when it does.
func (l *Limiter) Allow(key string) bool {
	if l.limit <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.period)

	recent := l.hits[key]
	for len(recent) > 0 && !recent[0].After(cutoff) {
		recent = recent[1:]
	}

	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// Close stops the background sweep goroutine.
func (l *Limiter) Close() {
	close(l.done)
}

// sweep drops keys whose whole log has aged out of the window.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-l.period)
			for key, stamps := range l.hits {
				if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
					delete(l.hits, key)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}
