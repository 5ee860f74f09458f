package coordinator

import (
	"context"
	"fmt"
	"io"

	"github.com/sourcegraph/conc"

	"marketbrain/internal/fetcher"
	"marketbrain/internal/provider"
)

// QuoteSource answers one quote request. The orchestrator satisfies it.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) fetcher.Result[provider.Quote]
}

// Coordinator fans quote requests out concurrently and streams each result
// as it arrives
type Coordinator struct {
	source QuoteSource
	out    io.Writer
}

// New creates a new Coordinator writing to out
func New(source QuoteSource, out io.Writer) *Coordinator {
	return &Coordinator{
		source: source,
		out:    out,
	}
}

type outcome struct {
	symbol string
	result fetcher.Result[provider.Quote]
}

// Run requests every symbol concurrently and prints results as they arrive in the format:
//   - Success: "SYMBOL: $PRICE (provider)"
//   - Degraded success: "SYMBOL: $PRICE (provider, degraded)"
//   - Error: "SYMBOL: ERROR - error message"
//
// It returns the number of symbols that failed.
func (c *Coordinator) Run(ctx context.Context, symbols []string) (int, error) {
	if len(symbols) == 0 {
		return 0, fmt.Errorf("no symbols given")
	}

	// Create a channel for collecting results
	resultChan := make(chan outcome, len(symbols))

	var wg conc.WaitGroup

	for _, s := range symbols {
		symbol := s
		wg.Go(func() {
			resultChan <- outcome{symbol: symbol, result: c.source.GetQuote(ctx, symbol)}
		})
	}

	// Close the result channel when all workers are done
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	failed := 0
	for o := range resultChan {
		res := o.result
		switch {
		case !res.Success:
			failed++
			fmt.Fprintf(c.out, "%s: ERROR - %s\n", o.symbol, res.Error)
		case res.Degraded:
			fmt.Fprintf(c.out, "%s: $%s (%s, degraded)\n", o.symbol, res.Data.Price.StringFixed(2), res.Provider)
		default:
			fmt.Fprintf(c.out, "%s: $%s (%s)\n", o.symbol, res.Data.Price.StringFixed(2), res.Provider)
		}
	}

	return failed, nil
}
