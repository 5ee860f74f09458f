package brain

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketbrain/internal/cache"
	"marketbrain/internal/config"
	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
	"marketbrain/internal/ratelimit"
	"marketbrain/internal/registry"
	"marketbrain/internal/testutil"
)

var epoch = time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)

// callLog records the order in which providers were contacted.
type callLog struct {
	mu    sync.Mutex
	order []string
}

func (l *callLog) add(id string) {
	l.mu.Lock()
	l.order = append(l.order, id)
	l.mu.Unlock()
}

func (l *callLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.order...)
}

func quoteStub(id string, log *callLog, price string, err error) *testutil.StubProvider {
	return &testutil.StubProvider{
		ID:   id,
		Caps: provider.NewCapabilitySet(provider.CapabilityQuote, provider.CapabilityHistorical),
		QuoteFunc: func(ctx context.Context, p provider.QuoteParams) (optional.Option[provider.Quote], error) {
			if log != nil {
				log.add(id)
			}
			if err != nil {
				return optional.None[provider.Quote](), err
			}
			if price == "" {
				return optional.None[provider.Quote](), nil
			}
			return optional.Some(provider.Quote{Symbol: p.Symbol, Price: decimal.RequireFromString(price)}), nil
		},
	}
}

func entryFor(p provider.Provider, priority int) registry.Entry {
	return registry.Entry{
		Provider: p,
		Config:   config.ProviderConfig{Name: p.Name(), Enabled: true, APIKey: "key", Priority: priority},
	}
}

type harness struct {
	clock   *testutil.Clock
	tracker *ratelimit.Tracker
	brain   *Orchestrator
}

func newHarness(ttl time.Duration, entries ...registry.Entry) *harness {
	clock := testutil.NewClock(epoch)
	tracker := ratelimit.NewTracker(ratelimit.WithClock(clock.Now))
	b := New(registry.FromEntries(entries, nil),
		WithCache(cache.New(ttl > 0, ttl, cache.WithClock(clock.Now))),
		WithTracker(tracker),
		WithClock(clock.Now),
	)
	return &harness{clock: clock, tracker: tracker, brain: b}
}

func TestFetch_PriorityRespectingFallback(t *testing.T) {
	calls := &callLog{}
	a := quoteStub("a", calls, "", errors.New("connection reset by peer"))
	b := quoteStub("b", calls, "", nil) // capability gap / no data
	c := quoteStub("c", calls, "187.20", nil)

	// declared out of order on purpose
	h := newHarness(0, entryFor(c, 3), entryFor(a, 1), entryFor(b, 2))

	res := h.brain.GetQuote(context.Background(), "aapl")

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "c", res.Provider)
	assert.Equal(t, "AAPL", res.Data.Symbol)
	assert.True(t, res.Data.Price.Equal(decimal.RequireFromString("187.20")))
	assert.Equal(t, []string{"a", "b", "c"}, calls.get())
	assert.Empty(t, res.Error)
	assert.False(t, res.Degraded)
	assert.Equal(t, epoch, res.Timestamp)

	// a generic failure and an empty answer never start a cooldown
	assert.False(t, h.tracker.IsLimited("a"))
	assert.False(t, h.tracker.IsLimited("b"))
}

func TestFetch_FirstSuccessWins(t *testing.T) {
	a := quoteStub("a", nil, "10", nil)
	b := quoteStub("b", nil, "20", nil)
	c := quoteStub("c", nil, "30", nil)
	h := newHarness(0, entryFor(a, 1), entryFor(b, 2), entryFor(c, 3))

	res := h.brain.GetQuote(context.Background(), "MSFT")

	require.True(t, res.Success)
	assert.Equal(t, "a", res.Provider)
	assert.Equal(t, 1, a.Calls())
	assert.Equal(t, 0, b.Calls())
	assert.Equal(t, 0, c.Calls())
}

func TestFetch_CacheShortCircuit(t *testing.T) {
	a := quoteStub("a", nil, "10", nil)
	h := newHarness(300*time.Second, entryFor(a, 1))
	ctx := context.Background()

	first := h.brain.GetQuote(ctx, "AAPL")
	require.True(t, first.Success)
	require.Equal(t, 1, a.Calls())

	h.clock.Advance(10 * time.Second)
	second := h.brain.GetQuote(ctx, "AAPL")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, a.Calls(), "cached answer must not contact providers")

	h.clock.Advance(291 * time.Second)
	third := h.brain.GetQuote(ctx, "AAPL")
	require.True(t, third.Success)
	assert.Equal(t, 2, a.Calls())
	assert.Equal(t, epoch.Add(301*time.Second), third.Timestamp)
}

func TestFetch_CacheKeyDeterminism(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var hist int
	a := &testutil.StubProvider{
		ID:   "a",
		Caps: provider.NewCapabilitySet(provider.CapabilityHistorical),
		HistoricalFunc: func(ctx context.Context, p provider.HistoricalParams) (optional.Option[[]provider.Bar], error) {
			hist++
			return optional.Some([]provider.Bar{{Time: p.Start, Close: decimal.NewFromInt(1)}}), nil
		},
	}
	h := newHarness(time.Minute, entryFor(a, 1))
	ctx := context.Background()

	first := h.brain.GetHistorical(ctx, "AAPL", d1, d2, "")
	second := h.brain.GetHistorical(ctx, " aapl", d1, d2, "")

	require.True(t, first.Success)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, hist)

	params1 := map[string]string{"symbol": "AAPL", "start_date": "2024-01-01", "end_date": "2024-03-01"}
	params2 := map[string]string{"end_date": "2024-03-01", "symbol": "AAPL", "start_date": "2024-01-01"}
	assert.Equal(t, cache.Key("historical", params1), cache.Key("historical", params2))
}

func TestFetch_FailuresAreNotCached(t *testing.T) {
	fail := true
	a := &testutil.StubProvider{
		ID:   "a",
		Caps: provider.NewCapabilitySet(provider.CapabilityQuote),
		QuoteFunc: func(ctx context.Context, p provider.QuoteParams) (optional.Option[provider.Quote], error) {
			if fail {
				return optional.None[provider.Quote](), errors.New("malformed response")
			}
			return optional.Some(provider.Quote{Symbol: p.Symbol, Price: decimal.NewFromInt(5)}), nil
		},
	}
	h := newHarness(time.Hour, entryFor(a, 1))
	ctx := context.Background()

	assert.False(t, h.brain.GetQuote(ctx, "AAPL").Success)

	fail = false
	res := h.brain.GetQuote(ctx, "AAPL")
	assert.True(t, res.Success)
	assert.Equal(t, 2, a.Calls())
}

func TestFetch_RateLimitCooldown(t *testing.T) {
	a := quoteStub("a", nil, "", errors.New("upstream returned 429"))
	b := quoteStub("b", nil, "99", nil)
	h := newHarness(0, entryFor(a, 1), entryFor(b, 2))
	ctx := context.Background()

	res := h.brain.GetQuote(ctx, "AAPL")
	require.True(t, res.Success)
	assert.Equal(t, "b", res.Provider)
	assert.True(t, h.tracker.IsLimited("a"))
	assert.Equal(t, 1, a.Calls())

	h.clock.Advance(3599 * time.Second)
	res = h.brain.GetQuote(ctx, "AAPL")
	assert.Equal(t, "b", res.Provider)
	assert.Equal(t, 1, a.Calls(), "limited provider must be skipped during cooldown")

	h.clock.Advance(2 * time.Second)
	h.brain.GetQuote(ctx, "AAPL")
	assert.Equal(t, 2, a.Calls(), "provider must be retried after cooldown")
}

func TestFetch_TypedRateLimitErrorMarksProvider(t *testing.T) {
	a := quoteStub("a", nil, "", fetcher.NewRateLimitNotice("standard API call frequency exceeded"))
	h := newHarness(0, entryFor(a, 1))

	h.brain.GetQuote(context.Background(), "AAPL")
	assert.True(t, h.tracker.IsLimited("a"))
	assert.Equal(t, map[string]bool{"a": false}, h.brain.ProviderStatus())
}

func TestFetch_LastResortDegradation(t *testing.T) {
	calls := &callLog{}
	a := quoteStub("a", calls, "", errors.New("Too Many Requests"))
	b := quoteStub("b", calls, "42", nil)
	h := newHarness(0, entryFor(a, 1), entryFor(b, 2))

	h.tracker.MarkLimited("a")
	h.tracker.MarkLimited("b")

	res := h.brain.GetQuote(context.Background(), "AAPL")

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "b", res.Provider)
	assert.True(t, res.Degraded)
	assert.Equal(t, []string{"a", "b"}, calls.get(), "limited providers are still tried in priority order")
}

func TestFetch_ExhaustionResultShape(t *testing.T) {
	a := quoteStub("a", nil, "", errors.New("daily limit exceeded"))
	b := quoteStub("b", nil, "", errors.New("bad gateway"))
	c := quoteStub("c", nil, "", nil)
	h := newHarness(time.Minute, entryFor(a, 1), entryFor(b, 2), entryFor(c, 3))

	res := h.brain.GetQuote(context.Background(), "AAPL")

	assert.False(t, res.Success)
	assert.Equal(t, fetcher.ProviderNone, res.Provider)
	assert.Equal(t, provider.Quote{}, res.Data)
	assert.Equal(t, "all providers failed; 1 rate-limited", res.Error)
	assert.False(t, res.Degraded)
}

func TestFetch_NoProvidersAvailable(t *testing.T) {
	quoteOnly := quoteStub("a", nil, "1", nil)
	h := newHarness(0, entryFor(quoteOnly, 1))

	res := h.brain.GetNews(context.Background(), "AAPL", 10)

	assert.False(t, res.Success)
	assert.Equal(t, "no providers available", res.Error)
	assert.Equal(t, fetcher.ProviderNone, res.Provider)
	assert.Nil(t, res.Data)
	assert.Equal(t, 0, quoteOnly.Calls())
}

func TestFetch_EmptySliceIsTreatedAsNoData(t *testing.T) {
	empty := &testutil.StubProvider{
		ID:   "empty",
		Caps: provider.NewCapabilitySet(provider.CapabilityNews),
		NewsFunc: func(ctx context.Context, p provider.NewsParams) (optional.Option[[]provider.NewsArticle], error) {
			return optional.Some([]provider.NewsArticle{}), nil
		},
	}
	full := &testutil.StubProvider{
		ID:   "full",
		Caps: provider.NewCapabilitySet(provider.CapabilityNews),
		NewsFunc: func(ctx context.Context, p provider.NewsParams) (optional.Option[[]provider.NewsArticle], error) {
			return optional.Some([]provider.NewsArticle{{Title: "Fed holds rates"}}), nil
		},
	}
	h := newHarness(0, entryFor(empty, 1), entryFor(full, 2))

	res := h.brain.GetNews(context.Background(), "", 5)

	require.True(t, res.Success)
	assert.Equal(t, "full", res.Provider)
	require.Len(t, res.Data, 1)
	assert.False(t, h.tracker.IsLimited("empty"))
}

func TestFetch_PerProviderTimeout(t *testing.T) {
	slow := &testutil.StubProvider{
		ID:   "slow",
		Caps: provider.NewCapabilitySet(provider.CapabilityQuote),
		QuoteFunc: func(ctx context.Context, p provider.QuoteParams) (optional.Option[provider.Quote], error) {
			<-ctx.Done()
			return optional.None[provider.Quote](), ctx.Err()
		},
	}
	fast := quoteStub("fast", nil, "1.5", nil)

	slowEntry := entryFor(slow, 1)
	slowEntry.Config.TimeoutSeconds = 1
	h := newHarness(0, slowEntry, entryFor(fast, 2))

	start := time.Now()
	res := h.brain.GetQuote(context.Background(), "AAPL")

	require.True(t, res.Success)
	assert.Equal(t, "fast", res.Provider)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, h.tracker.IsLimited("slow"))
}

func TestFetch_PanickingProviderIsAFailure(t *testing.T) {
	bad := &testutil.StubProvider{
		ID:   "bad",
		Caps: provider.NewCapabilitySet(provider.CapabilityQuote),
		QuoteFunc: func(ctx context.Context, p provider.QuoteParams) (optional.Option[provider.Quote], error) {
			panic("nil map write")
		},
	}
	good := quoteStub("good", nil, "3", nil)
	h := newHarness(0, entryFor(bad, 1), entryFor(good, 2))

	res := h.brain.GetQuote(context.Background(), "AAPL")
	assert.True(t, res.Success)
	assert.Equal(t, "good", res.Provider)
}

func TestFetch_CanceledContext(t *testing.T) {
	a := quoteStub("a", nil, "1", nil)
	h := newHarness(0, entryFor(a, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := h.brain.GetQuote(ctx, "AAPL")
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Error, "request canceled"))
	assert.Equal(t, 0, a.Calls())
}

func TestFetch_SymbolRequired(t *testing.T) {
	a := quoteStub("a", nil, "1", nil)
	h := newHarness(0, entryFor(a, 1))

	res := h.brain.GetQuote(context.Background(), "   ")
	assert.False(t, res.Success)
	assert.Equal(t, "symbol is required", res.Error)
	assert.Equal(t, 0, a.Calls())
}

func TestFetch_ThrottleFailureFallsThrough(t *testing.T) {
	a := quoteStub("a", nil, "1", nil)
	b := quoteStub("b", nil, "2", nil)

	throttle := ratelimit.NewThrottle(map[string]int{"a": 1})
	require.NoError(t, throttle.Wait(context.Background(), "a"))

	aEntry := entryFor(a, 1)
	aEntry.Config.TimeoutSeconds = 1
	b2 := New(registry.FromEntries([]registry.Entry{aEntry, entryFor(b, 2)}, nil), WithThrottle(throttle))

	res := b2.GetQuote(context.Background(), "AAPL")
	require.True(t, res.Success)
	assert.Equal(t, "b", res.Provider)
	assert.Equal(t, 0, a.Calls())
}

func TestUtilities(t *testing.T) {
	a := quoteStub("a", nil, "1", nil)
	b := quoteStub("b", nil, "2", nil)
	closed := quoteStub("closed", nil, "3", nil)
	closed.CloseFunc = func() error { return errors.New("already closed") }

	h := newHarness(time.Hour, entryFor(b, 2), entryFor(a, 1), entryFor(closed, 3))
	ctx := context.Background()

	assert.Equal(t, []string{"a", "b", "closed"}, h.brain.AvailableProviders())

	h.tracker.MarkLimited("b")
	assert.Equal(t, map[string]bool{"a": true, "b": false, "closed": true}, h.brain.ProviderStatus())

	h.brain.GetQuote(ctx, "AAPL")
	h.brain.ClearCache()
	h.brain.GetQuote(ctx, "AAPL")
	assert.Equal(t, 2, a.Calls())

	h.brain.Close()
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.True(t, closed.Closed())
}
