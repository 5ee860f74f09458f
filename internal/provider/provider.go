package provider

import (
	"context"

	"github.com/moznion/go-optional"
)

// ID names one configured provider instance, e.g. "alpha_vantage".
type ID = string

// Provider is the interface every market data adapter implements.
//
// Each capability method has three outcomes:
//   - optional.Some(payload), nil: the provider answered
//   - optional.None, nil: the provider has no data for the request (a soft miss, not a failure)
//   - any, err: transport, parsing or rate-limit failure
//
// Capabilities declares which methods are real. The registry never routes an
// undeclared capability to an adapter, so adapters embed Unsupported for the rest.
type Provider interface {
	// Name returns the stable provider identity.
	Name() ID
	// Capabilities returns the set of operations this adapter implements.
	Capabilities() CapabilitySet

	Quote(ctx context.Context, p QuoteParams) (optional.Option[Quote], error)
	Historical(ctx context.Context, p HistoricalParams) (optional.Option[[]Bar], error)
	OptionsChain(ctx context.Context, p OptionsChainParams) (optional.Option[OptionsChain], error)
	CompanyInfo(ctx context.Context, p CompanyInfoParams) (optional.Option[CompanyInfo], error)
	Fundamentals(ctx context.Context, p FundamentalsParams) (optional.Option[Fundamentals], error)
	Earnings(ctx context.Context, p EarningsParams) (optional.Option[[]Earnings], error)
	Dividends(ctx context.Context, p RangeParams) (optional.Option[[]Dividend], error)
	Splits(ctx context.Context, p RangeParams) (optional.Option[[]Split], error)
	News(ctx context.Context, p NewsParams) (optional.Option[[]NewsArticle], error)
	EconomicEvents(ctx context.Context, p EconomicEventsParams) (optional.Option[[]EconomicEvent], error)
	TechnicalIndicator(ctx context.Context, p IndicatorParams) (optional.Option[[]IndicatorValue], error)
	MarketStatus(ctx context.Context, p MarketStatusParams) (optional.Option[MarketStatus], error)
	EarningsCalendar(ctx context.Context, p EarningsCalendarParams) (optional.Option[[]EarningsCalendarEntry], error)
	EarningsTranscript(ctx context.Context, p EarningsTranscriptParams) (optional.Option[EarningsTranscript], error)

	// Close releases any connection or session held by the adapter.
	Close() error
}

// Unsupported answers every capability with an absent value. Adapters embed it
// and override only the methods they list in Capabilities.
type Unsupported struct{}

func (Unsupported) Quote(context.Context, QuoteParams) (optional.Option[Quote], error) {
	return optional.None[Quote](), nil
}

func (Unsupported) Historical(context.Context, HistoricalParams) (optional.Option[[]Bar], error) {
	return optional.None[[]Bar](), nil
}

func (Unsupported) OptionsChain(context.Context, OptionsChainParams) (optional.Option[OptionsChain], error) {
	return optional.None[OptionsChain](), nil
}

func (Unsupported) CompanyInfo(context.Context, CompanyInfoParams) (optional.Option[CompanyInfo], error) {
	return optional.None[CompanyInfo](), nil
}

func (Unsupported) Fundamentals(context.Context, FundamentalsParams) (optional.Option[Fundamentals], error) {
	return optional.None[Fundamentals](), nil
}

func (Unsupported) Earnings(context.Context, EarningsParams) (optional.Option[[]Earnings], error) {
	return optional.None[[]Earnings](), nil
}

func (Unsupported) Dividends(context.Context, RangeParams) (optional.Option[[]Dividend], error) {
	return optional.None[[]Dividend](), nil
}

func (Unsupported) Splits(context.Context, RangeParams) (optional.Option[[]Split], error) {
	return optional.None[[]Split](), nil
}

func (Unsupported) News(context.Context, NewsParams) (optional.Option[[]NewsArticle], error) {
	return optional.None[[]NewsArticle](), nil
}

func (Unsupported) EconomicEvents(context.Context, EconomicEventsParams) (optional.Option[[]EconomicEvent], error) {
	return optional.None[[]EconomicEvent](), nil
}

func (Unsupported) TechnicalIndicator(context.Context, IndicatorParams) (optional.Option[[]IndicatorValue], error) {
	return optional.None[[]IndicatorValue](), nil
}

func (Unsupported) MarketStatus(context.Context, MarketStatusParams) (optional.Option[MarketStatus], error) {
	return optional.None[MarketStatus](), nil
}

func (Unsupported) EarningsCalendar(context.Context, EarningsCalendarParams) (optional.Option[[]EarningsCalendarEntry], error) {
	return optional.None[[]EarningsCalendarEntry](), nil
}

func (Unsupported) EarningsTranscript(context.Context, EarningsTranscriptParams) (optional.Option[EarningsTranscript], error) {
	return optional.None[EarningsTranscript](), nil
}

func (Unsupported) Close() error { return nil }
