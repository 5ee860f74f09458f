package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// entry stores one cached value with the time it was stored.
type entry struct {
	storedAt time.Time
	value    any
}

// Cache holds the most recent successful result per request fingerprint.
// It never persists across process restarts.
type Cache struct {
	enabled bool
	ttl     time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	items map[string]entry
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache. A disabled cache or a non-positive ttl never hits.
func New(enabled bool, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		enabled: enabled,
		ttl:     ttl,
		now:     time.Now,
		items:   make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a deterministic fingerprint for a request: the capability name
// followed by the parameters sorted by name, e.g. "quote?symbol=AAPL".
// Map iteration order never affects the result.
func Key(capability string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(capability)
	for i, k := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// Enabled reports whether the cache stores and serves anything.
func (c *Cache) Enabled() bool { return c.enabled && c.ttl > 0 }

// TTL returns the configured freshness window.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the value stored under key if it is younger than the TTL.
func (c *Cache) Get(key string) (any, bool) {
	if !c.Enabled() {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Put stores value under key, replacing any previous entry.
// Callers only hand it successful results.
func (c *Cache) Put(key string, value any) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	c.items[key] = entry{storedAt: c.now(), value: value}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Prune removes stale entries and returns how many were dropped.
func (c *Cache) Prune() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k, e := range c.items {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.items, k)
			n++
		}
	}
	return n
}
