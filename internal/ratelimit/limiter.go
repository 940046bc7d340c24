package ratelimit

import (
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// ErrRateLimited is returned by callers of Admit when the window is full.
// The limiter itself never returns it; a denial is an ordinary false.
var ErrRateLimited = errors.New("rate limit exceeded")

const (
	DefaultWindow = 60 * time.Second
	DefaultLimit  = 5
)

// SlidingWindowLimiter admits at most `limit` calls per key within any
// trailing interval of length `window`. The caller supplies the clock:
// Admit never reads wall time, so tests drive it with fixed instants.
//
// Per-key state lives in a go-cache map whose TTL is refreshed on every
// admission. Keys that stop sending fall out of the map on the cache's
// janitor sweep, bounding total memory. The TTL is kept strictly larger
// than the window so an entry can only expire after all of its timestamps
// already left the window.
type SlidingWindowLimiter struct {
	window time.Duration
	limit  int
	keys   *cache.Cache
}

type keyWindow struct {
	mu     sync.Mutex
	stamps []time.Time
}

func NewSlidingWindowLimiter(window time.Duration, limit int) *SlidingWindowLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &SlidingWindowLimiter{
		window: window,
		limit:  limit,
		keys:   cache.New(2*window, 2*window),
	}
}

// Admit reports whether a call for `key` at instant `now` is within quota.
// On admission the instant is recorded; a denial records nothing and does
// not extend the window. The check-and-record step holds the key's lock,
// so two concurrent callers at the threshold boundary cannot both admit.
func (l *SlidingWindowLimiter) Admit(key string, now time.Time) bool {
	w := l.keyWindow(key)

	w.mu.Lock()
	defer w.mu.Unlock()

	// Lazy eviction: drop everything at or before now-window. The window
	// is half-open [now-W, now), so a stamp exactly W old is expired.
	cutoff := now.Add(-l.window)
	kept := w.stamps[:0]
	for _, ts := range w.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.stamps = kept

	if len(w.stamps) >= l.limit {
		return false
	}

	w.stamps = append(w.stamps, now)
	// Refresh the idle-eviction TTL while the key is active.
	l.keys.Set(key, w, cache.DefaultExpiration)
	return true
}

// keyWindow returns the state for key, creating it on first sight.
// cache.Add is first-writer-wins, so concurrent first calls for the same
// key converge on a single window.
func (l *SlidingWindowLimiter) keyWindow(key string) *keyWindow {
	if x, found := l.keys.Get(key); found {
		return x.(*keyWindow)
	}
	w := &keyWindow{}
	if err := l.keys.Add(key, w, cache.DefaultExpiration); err != nil {
		if x, found := l.keys.Get(key); found {
			return x.(*keyWindow)
		}
	}
	return w
}
