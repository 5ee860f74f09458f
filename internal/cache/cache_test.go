package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketbrain/internal/testutil"
)

func TestKey_Deterministic(t *testing.T) {
	a := map[string]string{}
	a["symbol"] = "AAPL"
	a["start_date"] = "2024-01-01"
	a["end_date"] = "2024-02-01"

	b := map[string]string{}
	b["end_date"] = "2024-02-01"
	b["start_date"] = "2024-01-01"
	b["symbol"] = "AAPL"

	assert.Equal(t, Key("historical", a), Key("historical", b))
	assert.Equal(t, "historical?end_date=2024-02-01&start_date=2024-01-01&symbol=AAPL", Key("historical", a))
}

func TestKey_Variants(t *testing.T) {
	assert.Equal(t, "market_status", Key("market_status", nil))
	assert.Equal(t, "quote?symbol=AAPL", Key("quote", map[string]string{"symbol": "AAPL"}))
	assert.NotEqual(t, Key("quote", map[string]string{"symbol": "AAPL"}), Key("company_info", map[string]string{"symbol": "AAPL"}))
}

func TestCache_TTL(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := New(true, 300*time.Second, WithClock(clock.Now))

	c.Put("quote?symbol=AAPL", "payload")

	clock.Advance(10 * time.Second)
	v, ok := c.Get("quote?symbol=AAPL")
	assert.True(t, ok)
	assert.Equal(t, "payload", v)

	clock.Advance(291 * time.Second)
	_, ok = c.Get("quote?symbol=AAPL")
	assert.False(t, ok)
}

func TestCache_PutOverwritesAndRefreshes(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := New(true, time.Minute, WithClock(clock.Now))

	c.Put("k", 1)
	clock.Advance(50 * time.Second)
	c.Put("k", 2)
	clock.Advance(50 * time.Second)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCache_Disabled(t *testing.T) {
	c := New(false, time.Minute)
	c.Put("k", 1)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	zeroTTL := New(true, 0)
	zeroTTL.Put("k", 1)
	_, ok = zeroTTL.Get("k")
	assert.False(t, ok)
}

func TestCache_ClearAndPrune(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := New(true, time.Minute, WithClock(clock.Now))

	c.Put("old", 1)
	clock.Advance(2 * time.Minute)
	c.Put("new", 2)

	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("new")
	assert.False(t, ok)
}
