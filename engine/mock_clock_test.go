package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock_Frames(t *testing.T) {
	start := time.Unix(100, 0)
	clock := NewMockClock(start)
	loop := NewFrameLoop()

	var stamps []time.Time
	var rearm FrameFunc
	rearm = func(now time.Time) {
		stamps = append(stamps, now)
		if len(stamps) < 2 {
			loop.RequestFrame(rearm)
		}
	}
	loop.RequestFrame(rearm)

	ran := clock.Frames(loop, 3, 16*time.Millisecond)
	assert.Equal(t, 2, ran, "the third frame has nothing queued")
	assert.Equal(t, []time.Time{start.Add(16 * time.Millisecond), start.Add(32 * time.Millisecond)}, stamps)
	assert.Equal(t, start.Add(48*time.Millisecond), clock.Now())
}
