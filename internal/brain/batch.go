package brain

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/iter"

	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
)

// batch runs one single-item cascade per distinct key concurrently and maps
// each input key to its own result. A failing item never affects the others.
func batch[T any](keys []string, one func(key string) fetcher.Result[T]) map[string]fetcher.Result[T] {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}

	results := iter.Map(unique, func(k *string) fetcher.Result[T] {
		return one(*k)
	})

	out := make(map[string]fetcher.Result[T], len(unique))
	for i, k := range unique {
		out[k] = results[i]
	}
	return out
}

// GetMultipleQuotes fetches quotes for many symbols, keyed by the symbols as given.
func (o *Orchestrator) GetMultipleQuotes(ctx context.Context, symbols []string) map[string]fetcher.Result[provider.Quote] {
	return batch(symbols, func(symbol string) fetcher.Result[provider.Quote] {
		return o.GetQuote(ctx, symbol)
	})
}

// GetMultipleHistorical fetches the same window of bars for many symbols.
func (o *Orchestrator) GetMultipleHistorical(ctx context.Context, symbols []string, start, end time.Time, interval string) map[string]fetcher.Result[[]provider.Bar] {
	return batch(symbols, func(symbol string) fetcher.Result[[]provider.Bar] {
		return o.GetHistorical(ctx, symbol, start, end, interval)
	})
}

// GetMultipleCompanyInfo fetches company profiles for many symbols.
func (o *Orchestrator) GetMultipleCompanyInfo(ctx context.Context, symbols []string) map[string]fetcher.Result[provider.CompanyInfo] {
	return batch(symbols, func(symbol string) fetcher.Result[provider.CompanyInfo] {
		return o.GetCompanyInfo(ctx, symbol)
	})
}
