package ratelimit

import (
	"sync"
	"time"
)

// Cooldown is how long a provider stays excluded after it was seen rate-limited.
const Cooldown = time.Hour

// Tracker remembers which providers recently reported rate limiting.
// Entries expire lazily: the first check after the cooldown removes them.
type Tracker struct {
	mu       sync.Mutex
	limited map[string]time.Time
	now     func() time.Time
}

// TrackerOption customizes a Tracker.
type TrackerOption func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		limited: make(map[string]time.Time),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsLimited reports whether id is inside its cooldown window.
// An expired entry is removed as a side effect.
func (t *Tracker) IsLimited(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isLimitedLocked(id)
}

func (t *Tracker) isLimitedLocked(id string) bool {
	at, ok := t.limited[id]
	if !ok {
		return false
	}
	if t.now().Sub(at) < Cooldown {
		return true
	}
	delete(t.limited, id)
	return false
}

// MarkLimited starts (or restarts) the cooldown for id.
func (t *Tracker) MarkLimited(id string) {
	t.mu.Lock()
	t.limited[id] = t.now()
	t.mu.Unlock()
}

// CountLimited returns how many of ids are currently cooling down.
func (t *Tracker) CountLimited(ids []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, id := range ids {
		if t.isLimitedLocked(id) {
			n++
		}
	}
	return n
}

// LimitedSince returns when id was marked, if it is still cooling down.
func (t *Tracker) LimitedSince(id string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isLimitedLocked(id) {
		return time.Time{}, false
	}
	return t.limited[id], true
}
