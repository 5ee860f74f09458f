// Package polygon adapts Polygon.io through the official client-go SDK.
package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketbrain/internal/config"
	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
)

const Name = "polygon"

// AggsIterator is the subset of the SDK's paging iterator the adapter reads.
type AggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// API is the slice of the Polygon REST client used here.
type API interface {
	GetPreviousCloseAgg(ctx context.Context, params *models.GetPreviousCloseAggParams, opts ...models.RequestOption) (*models.GetPreviousCloseAggResponse, error)
	ListAggs(ctx context.Context, params *models.ListAggsParams, opts ...models.RequestOption) AggsIterator
	GetMarketStatus(ctx context.Context, opts ...models.RequestOption) (*models.GetMarketStatusResponse, error)
}

// sdkAPI narrows the SDK client's concrete iterator to AggsIterator.
type sdkAPI struct {
	client *polygon.Client
}

func (a sdkAPI) GetPreviousCloseAgg(ctx context.Context, params *models.GetPreviousCloseAggParams, opts ...models.RequestOption) (*models.GetPreviousCloseAggResponse, error) {
	return a.client.GetPreviousCloseAgg(ctx, params, opts...)
}

func (a sdkAPI) ListAggs(ctx context.Context, params *models.ListAggsParams, opts ...models.RequestOption) AggsIterator {
	return a.client.ListAggs(ctx, params, opts...)
}

func (a sdkAPI) GetMarketStatus(ctx context.Context, opts ...models.RequestOption) (*models.GetMarketStatusResponse, error) {
	return a.client.GetMarketStatus(ctx, opts...)
}

type Provider struct {
	provider.Unsupported

	name string
	api  API
	log  *zap.Logger
}

// New creates a Polygon adapter backed by the SDK client.
func New(name, apiKey string, log *zap.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	return NewWithAPI(name, sdkAPI{client: polygon.New(apiKey)}, log), nil
}

// NewWithAPI creates an adapter over any API implementation.
func NewWithAPI(name string, api API, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		name: name,
		api:  api,
		log:  log.With(zap.String("provider", name)),
	}
}

func Factory(cfg config.ProviderConfig, log *zap.Logger) (provider.Provider, error) {
	return New(cfg.Name, cfg.APIKey, log)
}

func (p *Provider) Name() provider.ID { return p.name }

func (p *Provider) Capabilities() provider.CapabilitySet {
	return provider.NewCapabilitySet(
		provider.CapabilityQuote,
		provider.CapabilityHistorical,
		provider.CapabilityMarketStatus,
	)
}

func (p *Provider) Close() error { return nil }

// Quote answers with the previous session's aggregate, the freshest price on
// the free tier.
func (p *Provider) Quote(ctx context.Context, params provider.QuoteParams) (optional.Option[provider.Quote], error) {
	req := models.GetPreviousCloseAggParams{Ticker: params.Symbol}.WithAdjusted(true)

	res, err := p.api.GetPreviousCloseAgg(ctx, req)
	if err != nil {
		return optional.None[provider.Quote](), fmt.Errorf("failed to fetch previous close for %s: %w", params.Symbol, classify(err))
	}
	if res == nil || len(res.Results) == 0 {
		return optional.None[provider.Quote](), nil
	}

	agg := res.Results[0]
	return optional.Some(provider.Quote{
		Symbol:        params.Symbol,
		Price:         decimal.NewFromFloat(agg.Close),
		Open:          decimal.NewFromFloat(agg.Open),
		High:          decimal.NewFromFloat(agg.High),
		Low:           decimal.NewFromFloat(agg.Low),
		Volume:        decimal.NewFromFloat(agg.Volume),
		Change:        decimal.NewFromFloat(agg.Close - agg.Open),
		ChangePercent: changePercent(agg.Open, agg.Close),
		Currency:      "USD",
		Timestamp:     time.Time(agg.Timestamp).UTC(),
	}), nil
}

func (p *Provider) Historical(ctx context.Context, params provider.HistoricalParams) (optional.Option[[]provider.Bar], error) {
	multiplier, timespan, err := ParseInterval(params.Interval)
	if err != nil {
		p.log.Debug("unsupported interval", zap.String("interval", params.Interval))
		return optional.None[[]provider.Bar](), nil
	}

	end := params.End
	if end.IsZero() {
		end = time.Now()
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	req := models.ListAggsParams{
		Ticker:     params.Symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(params.Start),
		To:         models.Millis(end),
	}.WithOrder(models.Asc).WithLimit(50000)

	iter := p.api.ListAggs(ctx, req)

	var bars []provider.Bar
	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, provider.Bar{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   decimal.NewFromFloat(agg.Open),
			High:   decimal.NewFromFloat(agg.High),
			Low:    decimal.NewFromFloat(agg.Low),
			Close:  decimal.NewFromFloat(agg.Close),
			Volume: decimal.NewFromFloat(agg.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return optional.None[[]provider.Bar](), fmt.Errorf("error iterating polygon aggregates: %w", classify(err))
	}
	if len(bars) == 0 {
		return optional.None[[]provider.Bar](), nil
	}
	return optional.Some(bars), nil
}

// MarketStatus reports the US equities session state.
func (p *Provider) MarketStatus(ctx context.Context, params provider.MarketStatusParams) (optional.Option[provider.MarketStatus], error) {
	if params.Market != "" && !strings.EqualFold(params.Market, "us") && !strings.EqualFold(params.Market, "stocks") {
		return optional.None[provider.MarketStatus](), nil
	}

	res, err := p.api.GetMarketStatus(ctx)
	if err != nil {
		return optional.None[provider.MarketStatus](), fmt.Errorf("failed to fetch market status: %w", classify(err))
	}
	if res == nil {
		return optional.None[provider.MarketStatus](), nil
	}

	status := provider.MarketStatus{
		Market:     "us",
		Open:       res.Market == "open",
		EarlyHours: res.EarlyHours,
		AfterHours: res.AfterHours,
	}
	// serverTime is RFC 3339 with the exchange's offset
	if ts, err := time.Parse(time.RFC3339, fmt.Sprint(res.ServerTime)); err == nil {
		status.ServerTime = ts.UTC()
	}
	return optional.Some(status), nil
}

// classify converts SDK errors carrying an HTTP status into FetchErrors so
// throttling is recognized.
func classify(err error) error {
	var resp *models.ErrorResponse
	if errors.As(err, &resp) && resp.StatusCode >= http.StatusBadRequest {
		fe := fetcher.ClassifyHTTPError(resp.StatusCode)
		fe.Cause = err
		return fe
	}
	return err
}

// ParseInterval turns "5m", "1h", "1d", "1w", "1M" into a multiplier and
// timespan. An empty interval means one day.
func ParseInterval(interval string) (int, models.Timespan, error) {
	if interval == "" {
		return 1, models.Day, nil
	}

	unit := interval[len(interval)-1:]
	n, err := strconv.Atoi(interval[:len(interval)-1])
	if err != nil || n <= 0 {
		return 0, "", fmt.Errorf("invalid interval %q", interval)
	}

	switch unit {
	case "m":
		return n, models.Minute, nil
	case "h":
		return n, models.Hour, nil
	case "d":
		return n, models.Day, nil
	case "w":
		return n, models.Week, nil
	case "M":
		return n, models.Month, nil
	default:
		return 0, "", fmt.Errorf("invalid interval %q", interval)
	}
}

func changePercent(open, closePrice float64) decimal.Decimal {
	if open == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat((closePrice - open) / open * 100).Round(4)
}
