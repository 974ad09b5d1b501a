package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window admission counter. Each key gets at most
// `limit` admissions per `windowLength`; a rejected request does not
// touch the window, so hammering past the limit does not extend it.
type Limiter struct {
	limit        int
	windowLength time.Duration
	now          func() time.Time

	mu      sync.Mutex
	windows map[string]window
}

func NewLimiter(limit int, windowLength time.Duration) *Limiter {
	return &Limiter{
		limit:        limit,
		windowLength: windowLength,
		now:          time.Now,
		windows:      map[string]window{},
	}
}

// SetClock replaces the time source, for tests.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// Allow reports whether a request for the given key is admitted.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	current, ok := l.windows[key]
	if !ok || now.After(current.resetAt) {
		l.windows[key] = window{count: 1, resetAt: now.Add(l.windowLength)}
		return true
	}
	if current.count >= l.limit {
		return false
	}
	current.count++
	l.windows[key] = current
	return true
}
