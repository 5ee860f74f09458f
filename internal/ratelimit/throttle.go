package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces each provider's requests-per-minute ceiling before a call
// is made. It is the proactive half of rate limiting; Tracker is the reactive half.
type Throttle struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
}

// NewThrottle builds a limiter per provider from its requests-per-minute
// ceiling. A ceiling of zero or less leaves the provider unthrottled.
func NewThrottle(rpm map[string]int) *Throttle {
	t := &Throttle{limiters: make(map[string]*rate.Limiter, len(rpm))}
	for id, n := range rpm {
		t.Set(id, n)
	}
	return t
}

// Set installs or replaces the ceiling for one provider.
func (t *Throttle) Set(id string, rpm int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if rpm <= 0 {
		delete(t.limiters, id)
		return
	}
	// One token every 60/rpm seconds, burst of one so a cold provider is usable immediately
	t.limiters[id] = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

// Wait blocks until the provider's limiter permits a call.
// It returns an error if the context is canceled, or its deadline would
// pass, before the call can proceed.
func (t *Throttle) Wait(ctx context.Context, id string) error {
	t.mu.RLock()
	limiter, exists := t.limiters[id]
	t.mu.RUnlock()

	if !exists {
		return nil
	}

	return limiter.Wait(ctx)
}
