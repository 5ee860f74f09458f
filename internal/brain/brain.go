// Package brain is the orchestration engine: it cascades each request through
// the prioritized provider roster until one answers, skipping providers that
// are cooling down after a rate limit, and caches what succeeds.
package brain

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"marketbrain/internal/cache"
	"marketbrain/internal/config"
	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
	"marketbrain/internal/ratelimit"
	"marketbrain/internal/registry"
)

const (
	errNoProviders    = "no providers available"
	errSymbolRequired = "symbol is required"
)

// Orchestrator owns the provider roster and the shared cache and rate-limit
// state. All methods are safe for concurrent use.
type Orchestrator struct {
	registry *registry.Registry
	cache    *cache.Cache
	tracker  *ratelimit.Tracker
	throttle *ratelimit.Throttle
	log      *zap.Logger
	now      func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

func WithCache(c *cache.Cache) Option { return func(o *Orchestrator) { o.cache = c } }

func WithTracker(t *ratelimit.Tracker) Option { return func(o *Orchestrator) { o.tracker = t } }

func WithThrottle(t *ratelimit.Throttle) Option { return func(o *Orchestrator) { o.throttle = t } }

func WithLogger(l *zap.Logger) Option { return func(o *Orchestrator) { o.log = l } }

// WithClock sets the clock used to timestamp results.
func WithClock(now func() time.Time) Option { return func(o *Orchestrator) { o.now = now } }

// New creates an orchestrator over reg. Without options it caches nothing,
// throttles nothing and logs nowhere.
func New(reg *registry.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: reg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.cache == nil {
		o.cache = cache.New(false, 0)
	}
	if o.tracker == nil {
		o.tracker = ratelimit.NewTracker()
	}
	if o.throttle == nil {
		o.throttle = ratelimit.NewThrottle(nil)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	o.log = o.log.With(zap.String("component", "brain"))
	return o
}

// NewFromConfig wires cache and throttle from cfg.
func NewFromConfig(cfg *config.Config, reg *registry.Registry, log *zap.Logger) *Orchestrator {
	rpm := make(map[string]int, reg.Len())
	for _, e := range reg.All() {
		rpm[e.ID()] = e.Config.RequestsPerMinute
	}

	return New(reg,
		WithCache(cache.New(cfg.CachingEnabled, cfg.CacheTTL())),
		WithThrottle(ratelimit.NewThrottle(rpm)),
		WithLogger(log),
	)
}

// invoker calls the adapter method for one capability.
type invoker[T any] func(ctx context.Context, p provider.Provider) (optional.Option[T], error)

// fetch runs the fallback cascade for a single request:
//
//  1. a fresh cached success is returned as is
//  2. candidates are the enabled providers for the capability, in priority
//     order, minus those cooling down after a rate limit
//  3. if that leaves nothing, the cooling-down providers are tried anyway
//  4. the first non-empty answer wins and is cached
//
// Provider errors never escape; total failure is reported in the Result.
func fetch[T any](ctx context.Context, o *Orchestrator, capability provider.Capability, params map[string]string, call invoker[T]) fetcher.Result[T] {
	key := cache.Key(capability.String(), params)

	if v, ok := o.cache.Get(key); ok {
		if res, ok := v.(fetcher.Result[T]); ok {
			o.log.Debug("cache hit", zap.String("key", key), zap.String("provider", res.Provider))
			return res
		}
	}

	roster := o.registry.Enabled(capability)
	if len(roster) == 0 {
		return fetcher.Failed[T](errNoProviders, o.now())
	}

	candidates := make([]registry.Entry, 0, len(roster))
	for _, e := range roster {
		if !o.tracker.IsLimited(e.ID()) {
			candidates = append(candidates, e)
		}
	}

	log := o.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.Stringer("capability", capability),
		zap.String("key", key),
	)

	degraded := false
	if len(candidates) == 0 {
		degraded = true
		candidates = roster
		log.Warn("all providers rate-limited, retrying them as a last resort",
			zap.Strings("providers", entryIDs(roster)))
	}

	for _, e := range candidates {
		if err := ctx.Err(); err != nil {
			res := fetcher.Failed[T](fmt.Sprintf("request canceled: %v", err), o.now())
			res.Degraded = degraded
			return res
		}

		id := e.ID()
		data, err := attempt(ctx, o, e, call)
		if err != nil {
			limited := fetcher.IsRateLimit(err)
			if limited {
				o.tracker.MarkLimited(id)
				log.Info("provider marked rate-limited", zap.String("provider", id), zap.Duration("cooldown", ratelimit.Cooldown))
			}
			log.Warn("provider failed",
				zap.String("provider", id),
				zap.String("error_type", string(fetcher.TypeOf(err))),
				zap.Bool("rate_limited", limited),
				zap.Error(err))
			continue
		}

		if data.IsNone() || isEmpty(data.Unwrap()) {
			log.Debug("provider returned no data", zap.String("provider", id))
			continue
		}

		res := fetcher.Succeeded(data.Unwrap(), id, o.now())
		res.Degraded = degraded
		o.cache.Put(key, res)
		return res
	}

	limited := o.tracker.CountLimited(entryIDs(roster))
	res := fetcher.Failed[T](fmt.Sprintf("all providers failed; %d rate-limited", limited), o.now())
	res.Degraded = degraded
	log.Warn("all providers failed", zap.Int("attempted", len(candidates)), zap.Int("rate_limited", limited))
	return res
}

// attempt makes one throttled, time-bounded call to a single provider.
// A panicking adapter is reported as an error.
func attempt[T any](ctx context.Context, o *Orchestrator, e registry.Entry, call invoker[T]) (data optional.Option[T], err error) {
	if timeout := e.Config.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := o.throttle.Wait(ctx, e.ID()); err != nil {
		return optional.None[T](), fmt.Errorf("throttle: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			data, err = optional.None[T](), fmt.Errorf("provider panicked: %v", r)
		}
	}()

	return call(ctx, e.Provider)
}

// isEmpty treats empty slices and maps, and nil pointers, as no data.
func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Invalid:
		return true
	default:
		return false
	}
}

func entryIDs(entries []registry.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID()
	}
	return ids
}

// ClearCache drops every cached result.
func (o *Orchestrator) ClearCache() {
	o.cache.Clear()
	o.log.Info("cache cleared")
}

// AvailableProviders returns the enabled provider identities in priority order.
func (o *Orchestrator) AvailableProviders() []string {
	return o.registry.IDs()
}

// ProviderStatus reports, per enabled provider, whether it is usable right
// now (true) or cooling down after a rate limit (false).
func (o *Orchestrator) ProviderStatus() map[string]bool {
	ids := o.registry.IDs()
	status := make(map[string]bool, len(ids))
	for _, id := range ids {
		status[id] = !o.tracker.IsLimited(id)
	}
	return status
}

// Close releases every adapter. Individual close failures are logged.
func (o *Orchestrator) Close() {
	o.registry.Close()
}
