// Package binance adapts Binance spot market data (ticker prices and klines)
// through the go-binance SDK. Only public endpoints are used.
package binance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketbrain/internal/config"
	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
)

const (
	Name = "binance"

	// maxKlines is the largest page the klines endpoint returns.
	maxKlines = 1000

	codeTooManyRequests = -1003
	codeInvalidSymbol   = -1121
)

// Binance kline intervals, see https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
var intervals = map[string]bool{
	"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true, "1M": true,
}

type Provider struct {
	provider.Unsupported

	name   string
	client *binance.Client
	log    *zap.Logger
}

// New creates a Binance adapter. A non-empty baseURL replaces the SDK default.
func New(name, apiKey, baseURL string, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}

	client := binance.NewClient(apiKey, "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}

	return &Provider{
		name:   name,
		client: client,
		log:    log.With(zap.String("provider", name)),
	}
}

func Factory(cfg config.ProviderConfig, log *zap.Logger) (provider.Provider, error) {
	return New(cfg.Name, cfg.APIKey, cfg.BaseURL, log), nil
}

func (p *Provider) Name() provider.ID { return p.name }

func (p *Provider) Capabilities() provider.CapabilitySet {
	return provider.NewCapabilitySet(provider.CapabilityQuote, provider.CapabilityHistorical)
}

func (p *Provider) Close() error { return nil }

// Quote returns the last traded price of a spot pair.
func (p *Provider) Quote(ctx context.Context, params provider.QuoteParams) (optional.Option[provider.Quote], error) {
	symbol := Symbol(params.Symbol)

	prices, err := p.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		if isInvalidSymbol(err) {
			return optional.None[provider.Quote](), nil
		}
		return optional.None[provider.Quote](), fmt.Errorf("failed to fetch price for %s: %w", symbol, classify(err))
	}

	for _, sp := range prices {
		if sp == nil || sp.Symbol != symbol {
			continue
		}
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return optional.None[provider.Quote](), fetcher.NewValidationError(fmt.Sprintf("invalid price %q for %s", sp.Price, symbol))
		}
		return optional.Some(provider.Quote{
			Symbol:    params.Symbol,
			Price:     price,
			Currency:  quoteAsset(symbol),
			Timestamp: time.Now().UTC(),
		}), nil
	}
	return optional.None[provider.Quote](), nil
}

// Historical pages through klines between Start and End, oldest first.
func (p *Provider) Historical(ctx context.Context, params provider.HistoricalParams) (optional.Option[[]provider.Bar], error) {
	interval := params.Interval
	if interval == "" {
		interval = "1d"
	}
	if !intervals[interval] {
		p.log.Debug("unsupported interval", zap.String("interval", interval))
		return optional.None[[]provider.Bar](), nil
	}

	symbol := Symbol(params.Symbol)
	end := params.End
	if end.IsZero() {
		end = time.Now()
	}
	endMillis := end.UnixMilli()
	cursor := params.Start.UnixMilli()

	var bars []provider.Bar
	for {
		svc := p.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			EndTime(endMillis).
			Limit(maxKlines)
		if !params.Start.IsZero() {
			svc = svc.StartTime(cursor)
		}

		klines, err := svc.Do(ctx)
		if err != nil {
			if isInvalidSymbol(err) {
				return optional.None[[]provider.Bar](), nil
			}
			return optional.None[[]provider.Bar](), fmt.Errorf("failed to fetch klines for %s: %w", symbol, classify(err))
		}

		for _, k := range klines {
			bars = append(bars, toBar(k))
		}

		// a short page is the last one; without a start there is no paging
		if len(klines) < maxKlines || params.Start.IsZero() {
			break
		}
		cursor = klines[len(klines)-1].CloseTime + 1
		if cursor >= endMillis {
			break
		}
	}

	if len(bars) == 0 {
		return optional.None[[]provider.Bar](), nil
	}
	return optional.Some(bars), nil
}

func toBar(k *binance.Kline) provider.Bar {
	return provider.Bar{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   dec(k.Open),
		High:   dec(k.High),
		Low:    dec(k.Low),
		Close:  dec(k.Close),
		Volume: dec(k.Volume),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Symbol maps user-facing pair spellings onto Binance's: "btc-usd" and
// "BTC/USD" become "BTCUSDT".
func Symbol(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", "/", "", "_", "").Replace(s)
	if strings.HasSuffix(s, "USD") {
		s += "T"
	}
	return s
}

func quoteAsset(symbol string) string {
	for _, q := range []string{"USDT", "USDC", "FDUSD", "BTC", "ETH", "EUR"} {
		if strings.HasSuffix(symbol, q) && len(symbol) > len(q) {
			return q
		}
	}
	return ""
}

func isInvalidSymbol(err error) bool {
	var apiErr *common.APIError
	return errors.As(err, &apiErr) && apiErr.Code == codeInvalidSymbol
}

// classify turns Binance's request-weight rejection into a rate-limit error.
func classify(err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) && apiErr.Code == codeTooManyRequests {
		fe := fetcher.NewRateLimitNotice(apiErr.Message)
		fe.Cause = err
		return fe
	}
	return err
}
