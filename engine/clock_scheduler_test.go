package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/motion/status"
)

func TestClockScheduler_StepOrder(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	loop := NewFrameLoop()

	var order []string
	var frameTime time.Time
	cs := NewClockScheduler(loop, clock, 10*time.Millisecond,
		WithAfterFrame(func(now time.Time) { order = append(order, "render") }),
	)

	loop.RequestFrame(func(now time.Time) {
		frameTime = now
		order = append(order, "frame")
	})
	cs.Post(func() { order = append(order, "task") })

	cs.Step()

	assert.Equal(t, []string{"task", "frame", "render"}, order)
	assert.Equal(t, start, frameTime)
	assert.Equal(t, uint64(1), cs.TickCount())
}

func TestClockScheduler_PostedFrameRunsSameTick(t *testing.T) {
	loop := NewFrameLoop()
	cs := NewClockScheduler(loop, NewMockClock(time.Unix(0, 0)), time.Millisecond)

	ran := false
	cs.Post(func() {
		loop.RequestFrame(func(time.Time) { ran = true })
	})
	cs.Step()
	assert.True(t, ran, "tasks run before the frame batch is taken")
}

func TestClockScheduler_Metrics(t *testing.T) {
	reg := status.NewRegistry()
	loop := NewFrameLoop()
	cs := NewClockScheduler(loop, NewMockClock(time.Unix(0, 0)), time.Millisecond, WithSchedulerStatus(reg))

	loop.RequestFrame(func(time.Time) {})
	loop.RequestFrame(func(time.Time) {})
	cs.Step()
	cs.Step()

	assert.Equal(t, int64(2), reg.Ints.Get(status.FrameTicks).Load())
	assert.Equal(t, int64(2), reg.Ints.Get(status.FrameCallbacks).Load())
}

func TestClockScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := NewFrameLoop()
	var frames atomic.Int32
	cs := NewClockScheduler(loop, nil, 2*time.Millisecond,
		WithAfterFrame(func(time.Time) { frames.Add(1) }),
	)

	cs.Start()
	cs.Start()
	require.True(t, cs.Running())

	require.Eventually(t, func() bool { return frames.Load() >= 3 }, time.Second, time.Millisecond)

	cs.Stop()
	cs.Stop()
	assert.False(t, cs.Running())

	stopped := frames.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, frames.Load(), "no ticks after Stop")
}

func TestClockScheduler_StopBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	var frames atomic.Int32
	cs := NewClockScheduler(NewFrameLoop(), nil, 2*time.Millisecond,
		WithAfterFrame(func(time.Time) { frames.Add(1) }),
	)

	cs.Stop()
	cs.Start()
	require.True(t, cs.Running())
	require.Eventually(t, func() bool { return frames.Load() >= 1 }, time.Second, time.Millisecond)

	cs.Stop()
	assert.False(t, cs.Running())

	cs.Start()
	assert.False(t, cs.Running(), "a stopped scheduler stays stopped")
}

func TestClockScheduler_Defaults(t *testing.T) {
	cs := NewClockScheduler(NewFrameLoop(), nil, 0)
	assert.Equal(t, DefaultTickInterval, cs.tickInterval)
	assert.NotNil(t, cs.Loop())
}
