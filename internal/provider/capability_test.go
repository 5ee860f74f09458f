package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitySet(t *testing.T) {
	set := NewCapabilitySet(CapabilityQuote, CapabilityNews, CapabilityEarningsTranscript)

	assert.True(t, set.Has(CapabilityQuote))
	assert.True(t, set.Has(CapabilityNews))
	assert.True(t, set.Has(CapabilityEarningsTranscript))
	assert.False(t, set.Has(CapabilityHistorical))
	assert.Equal(t, []Capability{CapabilityQuote, CapabilityNews, CapabilityEarningsTranscript}, set.List())
	assert.Equal(t, "quote,news,earnings_transcript", set.String())
}

func TestCapabilityNamesRoundTrip(t *testing.T) {
	all := AllCapabilities()
	require.Len(t, all, 14)

	for _, c := range all {
		got, ok := ParseCapability(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}

	_, ok := ParseCapability("crystal_ball")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Capability(200).String())
}

func TestUnsupportedReturnsAbsent(t *testing.T) {
	var u Unsupported
	ctx := context.Background()

	q, err := u.Quote(ctx, QuoteParams{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.True(t, q.IsNone())

	bars, err := u.Historical(ctx, HistoricalParams{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.True(t, bars.IsNone())

	assert.NoError(t, u.Close())
}

func TestParamsValuesSkipZeroFields(t *testing.T) {
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	got := HistoricalParams{Symbol: "AAPL", Start: d1, End: d2}.Values()
	assert.Equal(t, map[string]string{
		"symbol":     "AAPL",
		"start_date": "2024-01-02",
		"end_date":   "2024-03-04",
	}, got)

	assert.Equal(t, map[string]string{"symbol": "MSFT", "year": "2023", "quarter": "4"},
		EarningsTranscriptParams{Symbol: "MSFT", Year: 2023, Quarter: 4}.Values())
	assert.Empty(t, MarketStatusParams{}.Values())
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol("  aapl "))
}
