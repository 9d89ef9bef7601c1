package engine

import (
	"sync"
	"time"
)

// MockClock is a manually stepped TimeProvider for tests and offline frame rendering
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock creates a clock frozen at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the current mocked time
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set jumps the clock to t, backwards jumps are allowed
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time
func (c *MockClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Frames steps loop n times, advancing the clock by interval before each frame
// It returns the number of callbacks run
func (c *MockClock) Frames(loop *FrameLoop, n int, interval time.Duration) int {
	ran := 0
	for range n {
		ran += loop.Advance(c.Advance(interval))
	}
	return ran
}
