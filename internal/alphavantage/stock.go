package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
)

const dateLayout = "2006-01-02"

// compactDays is how far back the compact daily series reaches.
const compactDays = 100

// GlobalQuoteResponse represents the AlphaVantage API response for stock quotes
type GlobalQuoteResponse struct {
	notice
	GlobalQuote struct {
		Symbol           string `json:"01. symbol"`
		Open             string `json:"02. open"`
		High             string `json:"03. high"`
		Low              string `json:"04. low"`
		Price            string `json:"05. price"`
		Volume           string `json:"06. volume"`
		LatestTradingDay string `json:"07. latest trading day"`
		PreviousClose    string `json:"08. previous close"`
		Change           string `json:"09. change"`
		ChangePercent    string `json:"10. change percent"`
	} `json:"Global Quote"`
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// DailySeriesResponse represents the TIME_SERIES_DAILY payload, keyed by date.
type DailySeriesResponse struct {
	notice
	Series map[string]dailyBar `json:"Time Series (Daily)"`
}

// Quote retrieves the latest quote. An unknown symbol yields an empty
// "Global Quote" object, reported as no data.
func (p *Provider) Quote(ctx context.Context, params provider.QuoteParams) (optional.Option[provider.Quote], error) {
	var result GlobalQuoteResponse
	if err := p.query(ctx, "GLOBAL_QUOTE", map[string]string{"symbol": params.Symbol}, &result); err != nil {
		return optional.None[provider.Quote](), fmt.Errorf("failed to fetch quote for %s: %w", params.Symbol, err)
	}

	g := result.GlobalQuote
	if g.Price == "" {
		return optional.None[provider.Quote](), nil
	}

	price, err := decimal.NewFromString(g.Price)
	if err != nil {
		return optional.None[provider.Quote](), fetcher.NewValidationError(fmt.Sprintf("invalid price %q for %s", g.Price, params.Symbol))
	}

	q := provider.Quote{
		Symbol:        params.Symbol,
		Price:         price,
		Open:          num(g.Open),
		High:          num(g.High),
		Low:           num(g.Low),
		PreviousClose: num(g.PreviousClose),
		Change:        num(g.Change),
		ChangePercent: num(g.ChangePercent),
		Volume:        num(g.Volume),
		Currency:      "USD",
	}
	if day, err := time.Parse(dateLayout, g.LatestTradingDay); err == nil {
		q.Timestamp = day
	}
	return optional.Some(q), nil
}

// Historical returns daily bars between Start and End inclusive, oldest first.
// Only daily resolution is offered; other intervals are a capability gap.
func (p *Provider) Historical(ctx context.Context, params provider.HistoricalParams) (optional.Option[[]provider.Bar], error) {
	switch params.Interval {
	case "", "1d", "daily":
	default:
		return optional.None[[]provider.Bar](), nil
	}

	size := "compact"
	if params.Start.IsZero() || time.Since(params.Start) > compactDays*24*time.Hour {
		size = "full"
	}

	var result DailySeriesResponse
	err := p.query(ctx, "TIME_SERIES_DAILY", map[string]string{
		"symbol":     params.Symbol,
		"outputsize": size,
	}, &result)
	if err != nil {
		return optional.None[[]provider.Bar](), fmt.Errorf("failed to fetch daily series for %s: %w", params.Symbol, err)
	}

	bars := make([]provider.Bar, 0, len(result.Series))
	for date, b := range result.Series {
		day, err := time.Parse(dateLayout, date)
		if err != nil {
			continue
		}
		if !params.Start.IsZero() && day.Before(params.Start) {
			continue
		}
		if !params.End.IsZero() && day.After(params.End) {
			continue
		}
		bars = append(bars, provider.Bar{
			Time:   day,
			Open:   num(b.Open),
			High:   num(b.High),
			Low:    num(b.Low),
			Close:  num(b.Close),
			Volume: num(b.Volume),
		})
	}
	if len(bars) == 0 {
		return optional.None[[]provider.Bar](), nil
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return optional.Some(bars), nil
}
