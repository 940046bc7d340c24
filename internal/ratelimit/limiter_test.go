package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(base time.Time, offset time.Duration) time.Time {
	return base.Add(offset)
}

func TestAdmitWithinLimit(t *testing.T) {
	l := NewSlidingWindowLimiter(60*time.Second, 5)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Admit("10.0.0.1", at(base, time.Duration(i*10)*time.Second)), "send %d should be admitted", i+1)
	}
}

func TestDenyWhenWindowFull(t *testing.T) {
	l := NewSlidingWindowLimiter(60*time.Second, 5)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Admit("10.0.0.1", at(base, time.Duration(i*10)*time.Second)))
	}

	// Five admissions in the last 45 seconds: the sixth is denied.
	assert.False(t, l.Admit("10.0.0.1", at(base, 45*time.Second)))
}

func TestWindowSlides(t *testing.T) {
	l := NewSlidingWindowLimiter(60*time.Second, 5)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Admit("10.0.0.1", at(base, time.Duration(i*10)*time.Second)))
	}
	assert.False(t, l.Admit("10.0.0.1", at(base, 45*time.Second)))

	// At t=60 the stamp from t=0 is exactly window-old: the interval is
	// half-open, so it no longer counts.
	assert.True(t, l.Admit("10.0.0.1", at(base, 60*time.Second)))

	// Now stamps at 10,20,30,40,60 fill the window again.
	assert.False(t, l.Admit("10.0.0.1", at(base, 65*time.Second)))
}

func TestDenialRecordsNothing(t *testing.T) {
	l := NewSlidingWindowLimiter(60*time.Second, 2)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.Admit("k", at(base, 0)))
	assert.True(t, l.Admit("k", at(base, time.Second)))

	// Hammering while denied must not extend the window: only the two
	// admitted stamps count, and both expire by base+62s.
	for i := 2; i < 30; i++ {
		assert.False(t, l.Admit("k", at(base, time.Duration(i)*time.Second)))
	}
	assert.True(t, l.Admit("k", at(base, 62*time.Second)))
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewSlidingWindowLimiter(60*time.Second, 1)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, l.Admit("10.0.0.1", base))
	assert.False(t, l.Admit("10.0.0.1", base))

	// A different key has its own window.
	assert.True(t, l.Admit("10.0.0.2", base))
}

func TestFirstCallAlwaysAdmitted(t *testing.T) {
	l := NewSlidingWindowLimiter(60*time.Second, 5)
	assert.True(t, l.Admit("fresh", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDefaultsApplied(t *testing.T) {
	l := NewSlidingWindowLimiter(0, 0)
	assert.Equal(t, DefaultWindow, l.window)
	assert.Equal(t, DefaultLimit, l.limit)
}

func TestConcurrentAdmitNeverExceedsLimit(t *testing.T) {
	const limit = 5
	const callers = 50

	l := NewSlidingWindowLimiter(60*time.Second, limit)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	admitted := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Admit("shared", now) {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for range admitted {
		count++
	}
	assert.Equal(t, limit, count)
}

func TestConcurrentDistinctKeys(t *testing.T) {
	l := NewSlidingWindowLimiter(60*time.Second, 1)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make([]bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Admit(fmt.Sprintf("key-%d", i), now)
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "key-%d should be admitted", i)
	}
}
