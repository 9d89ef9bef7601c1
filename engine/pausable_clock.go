package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides animation time that stands still while paused
// Tween progress is computed from this clock, so pausing freezes every in-flight request
type PausableClock struct {
	mu sync.RWMutex

	base TimeProvider

	// Epoch and cumulative pause, both in base time
	startTime       time.Time
	totalPausedTime time.Duration

	isPaused       atomic.Bool
	pauseStartTime time.Time
}

// NewPausableClock creates a running clock over base, nil base means wall time
func NewPausableClock(base TimeProvider) *PausableClock {
	if base == nil {
		base = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		base:      base,
		startTime: base.Now(),
	}
}

// Now returns animation time: base elapsed minus paused time since the epoch
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.startTime.Add(pc.pauseStartTime.Sub(pc.startTime) - pc.totalPausedTime)
	}
	return pc.startTime.Add(pc.base.Now().Sub(pc.startTime) - pc.totalPausedTime)
}

// RealTime returns base time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.base.Now()
}

// Pause stops time advancement, no-op when already paused
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		pc.pauseStartTime = pc.base.Now()
		pc.mu.Unlock()
	}
}

// Resume continues time advancement, no-op when running
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.base.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
		pc.mu.Unlock()
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.base.Now().Sub(pc.pauseStartTime)
	}
	return total
}
