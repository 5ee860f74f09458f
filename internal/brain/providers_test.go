package brain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketbrain/internal/provider"
)

func TestProviderDetails(t *testing.T) {
	a := quoteStub("a", nil, "1", nil)
	b := quoteStub("b", nil, "2", nil)
	h := newHarness(0, entryFor(b, 5), entryFor(a, 1))

	h.tracker.MarkLimited("b")
	h.clock.Advance(10 * time.Minute)

	details := h.brain.ProviderDetails()
	require.Len(t, details, 2)

	assert.Equal(t, "a", details[0].ID)
	assert.Equal(t, 1, details[0].Priority)
	assert.Equal(t, []string{"quote", "historical"}, details[0].Capabilities)
	assert.True(t, details[0].Available)
	assert.Nil(t, details[0].LimitedSince)

	assert.Equal(t, "b", details[1].ID)
	assert.False(t, details[1].Available)
	require.NotNil(t, details[1].LimitedSince)
	assert.Equal(t, epoch, *details[1].LimitedSince)

	h.clock.Advance(time.Hour)
	info, ok := h.brain.ProviderDetail("b")
	require.True(t, ok)
	assert.True(t, info.Available)
	assert.Nil(t, info.LimitedSince)

	_, ok = h.brain.ProviderDetail("nope")
	assert.False(t, ok)
}

func TestCoverage(t *testing.T) {
	a := quoteStub("a", nil, "1", nil)
	h := newHarness(0, entryFor(a, 1))

	coverage := h.brain.Coverage()
	assert.Len(t, coverage, len(provider.AllCapabilities()))
	assert.Equal(t, []string{"a"}, coverage["historical"])
	assert.Empty(t, coverage["news"])
	assert.Equal(t, []string{"a"}, h.brain.ProvidersFor(provider.CapabilityQuote))
}

func TestCacheStatsAndPrune(t *testing.T) {
	a := quoteStub("a", nil, "1", nil)
	h := newHarness(time.Minute, entryFor(a, 1))
	ctx := context.Background()

	h.brain.GetQuote(ctx, "AAPL")
	h.clock.Advance(45 * time.Second)
	h.brain.GetQuote(ctx, "MSFT")

	assert.Equal(t, CacheStats{Enabled: true, TTLSeconds: 60, Entries: 2}, h.brain.CacheStats())

	h.clock.Advance(30 * time.Second)
	assert.Equal(t, 1, h.brain.PruneCache())
	assert.Equal(t, 1, h.brain.CacheStats().Entries)

	assert.Equal(t, 0, h.brain.PruneCache())
}
