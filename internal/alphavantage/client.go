// Package alphavantage adapts the Alpha Vantage REST API to the provider
// contract: quotes, daily history, company overviews and news sentiment.
package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"resty.dev/v3"

	"marketbrain/internal/config"
	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
)

const (
	Name           = "alpha_vantage"
	DefaultBaseURL = "https://www.alphavantage.co/query"
)

// Provider talks to Alpha Vantage. Everything it does not declare in
// Capabilities is answered by the embedded Unsupported.
type Provider struct {
	provider.Unsupported

	name   string
	apiKey string
	client *resty.Client
	log    *zap.Logger
}

// New creates an Alpha Vantage adapter registered under name.
func New(name, apiKey, baseURL string, opts fetcher.HTTPOptions) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	opts.Logger = log.With(zap.String("provider", name))

	return &Provider{
		name:   name,
		apiKey: apiKey,
		client: fetcher.NewHTTPClient(baseURL, opts),
		log:    opts.Logger,
	}
}

// Factory builds the adapter from its provider settings.
func Factory(cfg config.ProviderConfig, log *zap.Logger) (provider.Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is required", cfg.Name)
	}
	return New(cfg.Name, cfg.APIKey, cfg.BaseURL, fetcher.HTTPOptions{
		MaxRetries: cfg.MaxRetries,
		Timeout:    cfg.Timeout(),
		Logger:     log,
	}), nil
}

func (p *Provider) Name() provider.ID { return p.name }

func (p *Provider) Capabilities() provider.CapabilitySet {
	return provider.NewCapabilitySet(
		provider.CapabilityQuote,
		provider.CapabilityHistorical,
		provider.CapabilityCompanyInfo,
		provider.CapabilityNews,
	)
}

func (p *Provider) Close() error {
	return p.client.Close()
}

// notice holds the fields Alpha Vantage uses to report problems inside an
// HTTP 200 body.
type notice struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (n notice) err() error {
	switch {
	case n.Note != "":
		return fetcher.NewRateLimitNotice(n.Note)
	case n.Information != "":
		// Information also carries premium-only and plan notices
		if throttled(n.Information) {
			return fetcher.NewRateLimitNotice(n.Information)
		}
		return fetcher.NewClientError(0, n.Information)
	case n.ErrorMessage != "":
		return fetcher.NewValidationError(n.ErrorMessage)
	default:
		return nil
	}
}

// throttled matches the generic signatures plus Alpha Vantage's own
// "call frequency" wording.
func throttled(msg string) bool {
	return fetcher.MentionsRateLimit(msg) || strings.Contains(strings.ToLower(msg), "call frequency")
}

type noticer interface {
	err() error
}

// query calls one Alpha Vantage function and decodes the body into out.
func (p *Provider) query(ctx context.Context, function string, params map[string]string, out noticer) error {
	q := map[string]string{
		"function": function,
		"apikey":   p.apiKey,
	}
	for k, v := range params {
		q[k] = v
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(q).
		SetResult(out).
		Get("")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fetcher.NewTimeoutError(err)
		}
		return fetcher.NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	if err := out.err(); err != nil {
		p.log.Debug("provider notice in response body", zap.String("function", function), zap.Error(err))
		return err
	}
	return nil
}

// num parses an Alpha Vantage numeric field. Missing values ("", "None", "-")
// come back as zero.
func num(s string) decimal.Decimal {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
