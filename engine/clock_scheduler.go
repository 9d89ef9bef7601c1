package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/motion/core"
	"github.com/lixenwraith/motion/status"
)

// ClockScheduler drives a FrameLoop on a fixed tick, acting as the host event loop
// Posted tasks, frame callbacks and the after-frame hook all run on the scheduler goroutine,
// so tween passes never interleave with input handling
type ClockScheduler struct {
	loop  *FrameLoop
	clock TimeProvider

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time
	mu               sync.Mutex

	tickCount atomic.Uint64

	// Posted tasks, drained at the start of each tick
	tasksMu sync.Mutex
	tasks   []func()

	afterFrame FrameFunc
	logger     *zap.Logger

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	stopped  atomic.Bool

	// Cached metric pointers
	statTicks     *atomic.Int64
	statCallbacks *atomic.Int64
	statLag       *status.AtomicFloat
}

// SchedulerOption configures a ClockScheduler
type SchedulerOption func(*ClockScheduler)

// WithAfterFrame installs a hook that runs after every frame's callbacks, typically rendering
func WithAfterFrame(fn FrameFunc) SchedulerOption {
	return func(cs *ClockScheduler) {
		cs.afterFrame = fn
	}
}

// WithSchedulerStatus publishes tick metrics into reg
func WithSchedulerStatus(reg *status.Registry) SchedulerOption {
	return func(cs *ClockScheduler) {
		cs.statTicks = reg.Ints.Get(status.FrameTicks)
		cs.statCallbacks = reg.Ints.Get(status.FrameCallbacks)
		cs.statLag = reg.Floats.Get(status.FrameLagMs)
	}
}

// WithSchedulerLogger sets the logger, default is a no-op logger
func WithSchedulerLogger(logger *zap.Logger) SchedulerOption {
	return func(cs *ClockScheduler) {
		cs.logger = logger
	}
}

// NewClockScheduler creates a scheduler advancing loop every tickInterval
// Frame timestamps come from clock, deadlines from wall time so a paused clock keeps rendering
func NewClockScheduler(loop *FrameLoop, clock TimeProvider, tickInterval time.Duration, opts ...SchedulerOption) *ClockScheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}

	cs := &ClockScheduler{
		loop:          loop,
		clock:         clock,
		tickInterval:  tickInterval,
		logger:        zap.NewNop(),
		stopChan:      make(chan struct{}),
		statTicks:     new(atomic.Int64),
		statCallbacks: new(atomic.Int64),
		statLag:       new(status.AtomicFloat),
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// DefaultTickInterval is roughly one 60Hz display refresh
const DefaultTickInterval = 16 * time.Millisecond

// Loop returns the driven frame loop, which is the FrameScheduler handed to engines
func (cs *ClockScheduler) Loop() *FrameLoop {
	return cs.loop
}

// Post queues fn to run on the scheduler goroutine before the next frame
func (cs *ClockScheduler) Post(fn func()) {
	cs.tasksMu.Lock()
	cs.tasks = append(cs.tasks, fn)
	cs.tasksMu.Unlock()
}

// Start begins the scheduler loop, repeated calls are ignored
// A stopped scheduler stays stopped
func (cs *ClockScheduler) Start() {
	if cs.stopped.Load() {
		return
	}
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
		cs.logger.Debug("clock scheduler started", zap.Duration("interval", cs.tickInterval))
	}
}

// Stop halts the scheduler loop and waits for the current tick to finish
// Stop before Start is a no-op
func (cs *ClockScheduler) Stop() {
	if !cs.running.CompareAndSwap(true, false) {
		return
	}
	cs.stopOnce.Do(func() {
		cs.stopped.Store(true)
		close(cs.stopChan)
		cs.wg.Wait()
		cs.logger.Debug("clock scheduler stopped", zap.Uint64("ticks", cs.tickCount.Load()))
	})
}

// Running reports whether the loop goroutine is active
func (cs *ClockScheduler) Running() bool {
	return cs.running.Load()
}

// TickCount returns the number of processed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Step processes one tick synchronously on the caller's goroutine
// Must not be mixed with a started scheduler
func (cs *ClockScheduler) Step() {
	cs.processTick()
}

// schedulerLoop runs ticks against wall-time deadlines with drift correction
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := time.Now()

		cs.mu.Lock()
		deadline := cs.nextTickDeadline
		cs.mu.Unlock()

		if !now.Before(deadline) {
			cs.statLag.Set(float64(now.Sub(deadline)) / float64(time.Millisecond))
			cs.processTick()

			cs.mu.Lock()
			cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
			// Too far behind: drop the backlog instead of bursting
			if now.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
				cs.nextTickDeadline = now.Add(cs.tickInterval)
			}
			deadline = cs.nextTickDeadline
			cs.mu.Unlock()
		}

		sleep := time.Until(deadline)
		if sleep <= 0 {
			continue
		}

		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}

// processTick executes one host cycle: posted tasks, frame callbacks, after-frame hook
func (cs *ClockScheduler) processTick() {
	cs.tasksMu.Lock()
	tasks := cs.tasks
	cs.tasks = nil
	cs.tasksMu.Unlock()

	for _, task := range tasks {
		task()
	}

	now := cs.clock.Now()
	ran := cs.loop.Advance(now)

	if cs.afterFrame != nil {
		cs.afterFrame(now)
	}

	ticks := cs.tickCount.Add(1)
	cs.statTicks.Store(int64(ticks))
	cs.statCallbacks.Add(int64(ran))
}
