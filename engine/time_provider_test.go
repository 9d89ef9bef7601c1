package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	assert.True(t, t2.After(t1), "t1=%v t2=%v", t1, t2)
	assert.GreaterOrEqual(t, t2.Sub(t1), 5*time.Millisecond)
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	assert.True(t, clock.Now().Equal(start))

	got := clock.Advance(250 * time.Millisecond)
	assert.Equal(t, start.Add(250*time.Millisecond), got)
	assert.Equal(t, got, clock.Now())

	earlier := start.Add(-time.Hour)
	clock.Set(earlier)
	assert.Equal(t, earlier, clock.Now())
}
