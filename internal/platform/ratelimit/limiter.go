package ratelimit

import (
	"math/rand"
	"sync"
	"time"
)

// Limiter is a fixed-window request counter keyed by client IP.
//
// It is deliberately best-effort: single-process, no shared backend,
// expired windows reclaimed by a probabilistic sweep on the write path.
// Callers that need cross-instance limits should swap in an external
// store behind the same interface.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	max      int
	duration time.Duration
	now      func() time.Time
	sweepOdd func() bool
}

type window struct {
	count   int
	resetAt time.Time
}

func NewLimiter(max int, duration time.Duration) *Limiter {
	if max < 1 {
		max = 1
	}
	if duration <= 0 {
		duration = time.Minute
	}

	return &Limiter{
		windows:  make(map[string]*window),
		max:      max,
		duration: duration,
		now:      time.Now,
		sweepOdd: func() bool { return rand.Intn(50) == 0 },
	}
}

// Allow records one request for key and reports whether it is within
// the window budget. An empty key is never limited.
func (l *Limiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.sweepOdd() {
		l.sweepLocked(now)
	}

	w, ok := l.windows[key]
	if !ok || !w.resetAt.After(now) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.duration)}
		return true
	}

	w.count++
	return w.count <= l.max
}

// Remaining reports the requests left in the current window for key.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !w.resetAt.After(l.now()) {
		return l.max
	}
	if w.count >= l.max {
		return 0
	}
	return l.max - w.count
}

func (l *Limiter) sweepLocked(now time.Time) {
	for key, w := range l.windows {
		if !w.resetAt.After(now) {
			delete(l.windows, key)
		}
	}
}
