package brain

import (
	"context"
	"time"

	"github.com/moznion/go-optional"

	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
)

// GetQuote returns the latest quote for symbol.
func (o *Orchestrator) GetQuote(ctx context.Context, symbol string) fetcher.Result[provider.Quote] {
	p := provider.QuoteParams{Symbol: provider.NormalizeSymbol(symbol)}
	if p.Symbol == "" {
		return fetcher.Failed[provider.Quote](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityQuote, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[provider.Quote], error) {
			return a.Quote(ctx, p)
		})
}

// GetHistorical returns OHLCV bars for symbol between start and end.
func (o *Orchestrator) GetHistorical(ctx context.Context, symbol string, start, end time.Time, interval string) fetcher.Result[[]provider.Bar] {
	p := provider.HistoricalParams{Symbol: provider.NormalizeSymbol(symbol), Start: start, End: end, Interval: interval}
	if p.Symbol == "" {
		return fetcher.Failed[[]provider.Bar](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityHistorical, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.Bar], error) {
			return a.Historical(ctx, p)
		})
}

// GetOptionsChain returns the options chain for symbol; a zero expiration
// asks for the nearest one.
func (o *Orchestrator) GetOptionsChain(ctx context.Context, symbol string, expiration time.Time) fetcher.Result[provider.OptionsChain] {
	p := provider.OptionsChainParams{Symbol: provider.NormalizeSymbol(symbol), Expiration: expiration}
	if p.Symbol == "" {
		return fetcher.Failed[provider.OptionsChain](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityOptionsChain, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[provider.OptionsChain], error) {
			return a.OptionsChain(ctx, p)
		})
}

func (o *Orchestrator) GetCompanyInfo(ctx context.Context, symbol string) fetcher.Result[provider.CompanyInfo] {
	p := provider.CompanyInfoParams{Symbol: provider.NormalizeSymbol(symbol)}
	if p.Symbol == "" {
		return fetcher.Failed[provider.CompanyInfo](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityCompanyInfo, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[provider.CompanyInfo], error) {
			return a.CompanyInfo(ctx, p)
		})
}

func (o *Orchestrator) GetFundamentals(ctx context.Context, symbol, period string) fetcher.Result[provider.Fundamentals] {
	p := provider.FundamentalsParams{Symbol: provider.NormalizeSymbol(symbol), Period: period}
	if p.Symbol == "" {
		return fetcher.Failed[provider.Fundamentals](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityFundamentals, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[provider.Fundamentals], error) {
			return a.Fundamentals(ctx, p)
		})
}

func (o *Orchestrator) GetEarnings(ctx context.Context, symbol string, limit int) fetcher.Result[[]provider.Earnings] {
	p := provider.EarningsParams{Symbol: provider.NormalizeSymbol(symbol), Limit: limit}
	if p.Symbol == "" {
		return fetcher.Failed[[]provider.Earnings](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityEarnings, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.Earnings], error) {
			return a.Earnings(ctx, p)
		})
}

func (o *Orchestrator) GetDividends(ctx context.Context, symbol string, start, end time.Time) fetcher.Result[[]provider.Dividend] {
	p := provider.RangeParams{Symbol: provider.NormalizeSymbol(symbol), Start: start, End: end}
	if p.Symbol == "" {
		return fetcher.Failed[[]provider.Dividend](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityDividends, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.Dividend], error) {
			return a.Dividends(ctx, p)
		})
}

func (o *Orchestrator) GetSplits(ctx context.Context, symbol string, start, end time.Time) fetcher.Result[[]provider.Split] {
	p := provider.RangeParams{Symbol: provider.NormalizeSymbol(symbol), Start: start, End: end}
	if p.Symbol == "" {
		return fetcher.Failed[[]provider.Split](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilitySplits, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.Split], error) {
			return a.Splits(ctx, p)
		})
}

// GetNews returns recent articles for symbol, or general market news when
// symbol is empty.
func (o *Orchestrator) GetNews(ctx context.Context, symbol string, limit int) fetcher.Result[[]provider.NewsArticle] {
	p := provider.NewsParams{Symbol: provider.NormalizeSymbol(symbol), Limit: limit}
	return fetch(ctx, o, provider.CapabilityNews, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.NewsArticle], error) {
			return a.News(ctx, p)
		})
}

func (o *Orchestrator) GetEconomicEvents(ctx context.Context, start, end time.Time, country string) fetcher.Result[[]provider.EconomicEvent] {
	p := provider.EconomicEventsParams{Start: start, End: end, Country: country}
	return fetch(ctx, o, provider.CapabilityEconomicEvents, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.EconomicEvent], error) {
			return a.EconomicEvents(ctx, p)
		})
}

func (o *Orchestrator) GetTechnicalIndicator(ctx context.Context, p provider.IndicatorParams) fetcher.Result[[]provider.IndicatorValue] {
	p.Symbol = provider.NormalizeSymbol(p.Symbol)
	if p.Symbol == "" {
		return fetcher.Failed[[]provider.IndicatorValue](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityTechnicalIndicators, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.IndicatorValue], error) {
			return a.TechnicalIndicator(ctx, p)
		})
}

func (o *Orchestrator) GetMarketStatus(ctx context.Context, market string) fetcher.Result[provider.MarketStatus] {
	p := provider.MarketStatusParams{Market: market}
	return fetch(ctx, o, provider.CapabilityMarketStatus, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[provider.MarketStatus], error) {
			return a.MarketStatus(ctx, p)
		})
}

func (o *Orchestrator) GetEarningsCalendar(ctx context.Context, start, end time.Time) fetcher.Result[[]provider.EarningsCalendarEntry] {
	p := provider.EarningsCalendarParams{Start: start, End: end}
	return fetch(ctx, o, provider.CapabilityEarningsCalendar, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[[]provider.EarningsCalendarEntry], error) {
			return a.EarningsCalendar(ctx, p)
		})
}

func (o *Orchestrator) GetEarningsTranscript(ctx context.Context, symbol string, year, quarter int) fetcher.Result[provider.EarningsTranscript] {
	p := provider.EarningsTranscriptParams{Symbol: provider.NormalizeSymbol(symbol), Year: year, Quarter: quarter}
	if p.Symbol == "" {
		return fetcher.Failed[provider.EarningsTranscript](errSymbolRequired, o.now())
	}
	return fetch(ctx, o, provider.CapabilityEarningsTranscript, p.Values(),
		func(ctx context.Context, a provider.Provider) (optional.Option[provider.EarningsTranscript], error) {
			return a.EarningsTranscript(ctx, p)
		})
}
