package provider

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the canonical latest-price snapshot for one symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Volume        decimal.Decimal `json:"volume"`
	Currency      string          `json:"currency,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Bar is one OHLCV interval of a historical series.
type Bar struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

type OptionContract struct {
	ContractSymbol    string          `json:"contract_symbol"`
	Type              string          `json:"type"` // call or put
	Strike            decimal.Decimal `json:"strike"`
	Expiration        time.Time       `json:"expiration"`
	LastPrice         decimal.Decimal `json:"last_price"`
	Bid               decimal.Decimal `json:"bid"`
	Ask               decimal.Decimal `json:"ask"`
	Volume            int64           `json:"volume"`
	OpenInterest      int64           `json:"open_interest"`
	ImpliedVolatility float64         `json:"implied_volatility"`
}

type OptionsChain struct {
	Symbol      string           `json:"symbol"`
	Expirations []time.Time      `json:"expirations"`
	Calls       []OptionContract `json:"calls"`
	Puts        []OptionContract `json:"puts"`
}

type CompanyInfo struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Exchange    string          `json:"exchange"`
	Sector      string          `json:"sector"`
	Industry    string          `json:"industry"`
	Country     string          `json:"country"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Website     string          `json:"website,omitempty"`
	MarketCap   decimal.Decimal `json:"market_cap"`
	Employees   int             `json:"employees,omitempty"`
}

// Fundamentals is a snapshot of headline financial ratios and statement figures.
type Fundamentals struct {
	Symbol        string          `json:"symbol"`
	Period        string          `json:"period"`
	FiscalDate    time.Time       `json:"fiscal_date"`
	Revenue       decimal.Decimal `json:"revenue"`
	NetIncome     decimal.Decimal `json:"net_income"`
	EPS           decimal.Decimal `json:"eps"`
	PERatio       decimal.Decimal `json:"pe_ratio"`
	BookValue     decimal.Decimal `json:"book_value"`
	DividendYield decimal.Decimal `json:"dividend_yield"`
}

type Earnings struct {
	Symbol       string          `json:"symbol"`
	FiscalDate   time.Time       `json:"fiscal_date"`
	ReportedDate time.Time       `json:"reported_date"`
	ReportedEPS  decimal.Decimal `json:"reported_eps"`
	EstimatedEPS decimal.Decimal `json:"estimated_eps"`
	Surprise     decimal.Decimal `json:"surprise"`
}

type Dividend struct {
	Symbol  string          `json:"symbol"`
	ExDate  time.Time       `json:"ex_date"`
	PayDate time.Time       `json:"pay_date"`
	Amount  decimal.Decimal `json:"amount"`
}

type Split struct {
	Symbol      string    `json:"symbol"`
	Date        time.Time `json:"date"`
	Numerator   float64   `json:"numerator"`
	Denominator float64   `json:"denominator"`
}

type NewsArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary"`
	Symbols     []string  `json:"symbols"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   float64   `json:"sentiment"`
}

type EconomicEvent struct {
	Name     string    `json:"name"`
	Country  string    `json:"country"`
	Time     time.Time `json:"time"`
	Impact   string    `json:"impact"`
	Actual   string    `json:"actual,omitempty"`
	Forecast string    `json:"forecast,omitempty"`
	Previous string    `json:"previous,omitempty"`
}

// IndicatorValue is one point of a technical indicator series; Values is keyed
// by output line (e.g. "SMA", or "MACD"/"MACD_Signal"/"MACD_Hist").
type IndicatorValue struct {
	Time   time.Time          `json:"time"`
	Values map[string]float64 `json:"values"`
}

type MarketStatus struct {
	Market     string    `json:"market"`
	Open       bool      `json:"open"`
	EarlyHours bool      `json:"early_hours"`
	AfterHours bool      `json:"after_hours"`
	ServerTime time.Time `json:"server_time"`
}

type EarningsCalendarEntry struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	ReportDate       time.Time       `json:"report_date"`
	FiscalDateEnding time.Time       `json:"fiscal_date_ending"`
	EstimatedEPS     decimal.Decimal `json:"estimated_eps"`
	Currency         string          `json:"currency"`
}

type EarningsTranscript struct {
	Symbol  string    `json:"symbol"`
	Year    int       `json:"year"`
	Quarter int       `json:"quarter"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}
