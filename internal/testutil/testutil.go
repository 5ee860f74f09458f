package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moznion/go-optional"

	"marketbrain/internal/provider"
)

// Clock is a manually advanced clock for cooldown and TTL tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now implements the func() time.Time hook taken by the tracker and cache.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// StubProvider is a hand-rolled implementation of the Provider interface for testing.
// Unset funcs answer with an absent value. Every capability call is counted.
type StubProvider struct {
	provider.Unsupported

	ID   string
	Caps provider.CapabilitySet

	QuoteFunc              func(ctx context.Context, p provider.QuoteParams) (optional.Option[provider.Quote], error)
	HistoricalFunc         func(ctx context.Context, p provider.HistoricalParams) (optional.Option[[]provider.Bar], error)
	CompanyInfoFunc        func(ctx context.Context, p provider.CompanyInfoParams) (optional.Option[provider.CompanyInfo], error)
	NewsFunc               func(ctx context.Context, p provider.NewsParams) (optional.Option[[]provider.NewsArticle], error)
	MarketStatusFunc       func(ctx context.Context, p provider.MarketStatusParams) (optional.Option[provider.MarketStatus], error)
	EarningsTranscriptFunc func(ctx context.Context, p provider.EarningsTranscriptParams) (optional.Option[provider.EarningsTranscript], error)
	CloseFunc              func() error

	calls  atomic.Int64
	closed atomic.Bool
}

// Calls returns how many capability methods were invoked.
func (s *StubProvider) Calls() int { return int(s.calls.Load()) }

// Closed reports whether Close was called.
func (s *StubProvider) Closed() bool { return s.closed.Load() }

func (s *StubProvider) Name() string { return s.ID }

func (s *StubProvider) Capabilities() provider.CapabilitySet { return s.Caps }

func (s *StubProvider) Quote(ctx context.Context, p provider.QuoteParams) (optional.Option[provider.Quote], error) {
	s.calls.Add(1)
	if s.QuoteFunc != nil {
		return s.QuoteFunc(ctx, p)
	}
	return optional.None[provider.Quote](), nil
}

func (s *StubProvider) Historical(ctx context.Context, p provider.HistoricalParams) (optional.Option[[]provider.Bar], error) {
	s.calls.Add(1)
	if s.HistoricalFunc != nil {
		return s.HistoricalFunc(ctx, p)
	}
	return optional.None[[]provider.Bar](), nil
}

func (s *StubProvider) CompanyInfo(ctx context.Context, p provider.CompanyInfoParams) (optional.Option[provider.CompanyInfo], error) {
	s.calls.Add(1)
	if s.CompanyInfoFunc != nil {
		return s.CompanyInfoFunc(ctx, p)
	}
	return optional.None[provider.CompanyInfo](), nil
}

func (s *StubProvider) News(ctx context.Context, p provider.NewsParams) (optional.Option[[]provider.NewsArticle], error) {
	s.calls.Add(1)
	if s.NewsFunc != nil {
		return s.NewsFunc(ctx, p)
	}
	return optional.None[[]provider.NewsArticle](), nil
}

func (s *StubProvider) MarketStatus(ctx context.Context, p provider.MarketStatusParams) (optional.Option[provider.MarketStatus], error) {
	s.calls.Add(1)
	if s.MarketStatusFunc != nil {
		return s.MarketStatusFunc(ctx, p)
	}
	return optional.None[provider.MarketStatus](), nil
}

func (s *StubProvider) EarningsTranscript(ctx context.Context, p provider.EarningsTranscriptParams) (optional.Option[provider.EarningsTranscript], error) {
	s.calls.Add(1)
	if s.EarningsTranscriptFunc != nil {
		return s.EarningsTranscriptFunc(ctx, p)
	}
	return optional.None[provider.EarningsTranscript](), nil
}

func (s *StubProvider) Close() error {
	s.closed.Store(true)
	if s.CloseFunc != nil {
		return s.CloseFunc()
	}
	return nil
}

// NewQuoteProvider creates a stub that answers quotes with a fixed value or error.
func NewQuoteProvider(id string, q provider.Quote, err error) *StubProvider {
	return &StubProvider{
		ID:   id,
		Caps: provider.NewCapabilitySet(provider.CapabilityQuote),
		QuoteFunc: func(ctx context.Context, p provider.QuoteParams) (optional.Option[provider.Quote], error) {
			if err != nil {
				return optional.None[provider.Quote](), err
			}
			q.Symbol = p.Symbol
			return optional.Some(q), nil
		},
	}
}
