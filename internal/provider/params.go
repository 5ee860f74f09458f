package provider

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// values collects the non-zero request fields used to fingerprint a request.
type values map[string]string

func (v values) str(name, s string) values {
	if s != "" {
		v[name] = s
	}
	return v
}

func (v values) date(name string, t time.Time) values {
	if !t.IsZero() {
		v[name] = t.UTC().Format(dateLayout)
	}
	return v
}

func (v values) num(name string, n int) values {
	if n != 0 {
		v[name] = strconv.Itoa(n)
	}
	return v
}

// NormalizeSymbol upper-cases and trims a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

type QuoteParams struct {
	Symbol string
}

func (p QuoteParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol)
}

type HistoricalParams struct {
	Symbol   string
	Start    time.Time
	End      time.Time
	Interval string // 1d, 1h, 5m ...
}

func (p HistoricalParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).
		date("start_date", p.Start).
		date("end_date", p.End).
		str("interval", p.Interval)
}

type OptionsChainParams struct {
	Symbol     string
	Expiration time.Time // zero means nearest
}

func (p OptionsChainParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).date("expiration", p.Expiration)
}

type CompanyInfoParams struct {
	Symbol string
}

func (p CompanyInfoParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol)
}

type FundamentalsParams struct {
	Symbol string
	Period string // annual or quarterly
}

func (p FundamentalsParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).str("period", p.Period)
}

type EarningsParams struct {
	Symbol string
	Limit  int
}

func (p EarningsParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).num("limit", p.Limit)
}

// RangeParams is shared by the symbol + date window capabilities (dividends, splits).
type RangeParams struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

func (p RangeParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).date("start_date", p.Start).date("end_date", p.End)
}

type NewsParams struct {
	Symbol string // empty for general market news
	Limit  int
}

func (p NewsParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).num("limit", p.Limit)
}

type EconomicEventsParams struct {
	Start   time.Time
	End     time.Time
	Country string
}

func (p EconomicEventsParams) Values() map[string]string {
	return values{}.date("start_date", p.Start).date("end_date", p.End).str("country", p.Country)
}

type IndicatorParams struct {
	Symbol    string
	Indicator string // sma, ema, rsi, macd ...
	Interval  string
	Period    int
}

func (p IndicatorParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).
		str("indicator", strings.ToLower(p.Indicator)).
		str("interval", p.Interval).
		num("period", p.Period)
}

type MarketStatusParams struct {
	Market string
}

func (p MarketStatusParams) Values() map[string]string {
	return values{}.str("market", p.Market)
}

type EarningsCalendarParams struct {
	Start time.Time
	End   time.Time
}

func (p EarningsCalendarParams) Values() map[string]string {
	return values{}.date("start_date", p.Start).date("end_date", p.End)
}

type EarningsTranscriptParams struct {
	Symbol  string
	Year    int
	Quarter int
}

func (p EarningsTranscriptParams) Values() map[string]string {
	return values{}.str("symbol", p.Symbol).num("year", p.Year).num("quarter", p.Quarter)
}
