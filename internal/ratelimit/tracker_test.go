package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketbrain/internal/testutil"
)

func TestTracker_CooldownWindow(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	tr := NewTracker(WithClock(clock.Now))

	assert.False(t, tr.IsLimited("alpha_vantage"))

	tr.MarkLimited("alpha_vantage")
	assert.True(t, tr.IsLimited("alpha_vantage"))

	clock.Advance(3599 * time.Second)
	assert.True(t, tr.IsLimited("alpha_vantage"))

	clock.Advance(2 * time.Second)
	assert.False(t, tr.IsLimited("alpha_vantage"))

	// expired entry was removed lazily
	_, ok := tr.LimitedSince("alpha_vantage")
	assert.False(t, ok)
	assert.Empty(t, tr.limited)
}

func TestTracker_MarkRefreshesCooldown(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	tr := NewTracker(WithClock(clock.Now))

	tr.MarkLimited("polygon")
	clock.Advance(50 * time.Minute)
	tr.MarkLimited("polygon")
	clock.Advance(50 * time.Minute)

	assert.True(t, tr.IsLimited("polygon"))
	since, ok := tr.LimitedSince("polygon")
	assert.True(t, ok)
	assert.Equal(t, clock.Now().Add(-50*time.Minute), since)
}

func TestTracker_CountLimited(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	tr := NewTracker(WithClock(clock.Now))

	tr.MarkLimited("a")
	clock.Advance(30 * time.Minute)
	tr.MarkLimited("b")

	assert.Equal(t, 2, tr.CountLimited([]string{"a", "b", "c"}))

	clock.Advance(31 * time.Minute)
	assert.Equal(t, 1, tr.CountLimited([]string{"a", "b", "c"}))

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 0, tr.CountLimited([]string{"a", "b", "c"}))
}
