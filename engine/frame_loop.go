package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameToken identifies a pending frame request, zero is never issued
type FrameToken uint64

// FrameFunc runs once on the next display frame with the frame timestamp
type FrameFunc func(now time.Time)

// FrameScheduler is the host's "run on next display frame" primitive
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) FrameToken
	CancelFrame(token FrameToken)
}

type frameRequest struct {
	token     FrameToken
	fn        FrameFunc
	cancelled bool
}

// FrameLoop is a one-shot frame callback queue advanced by its driver
// Callbacks requested while a batch runs are deferred to the following Advance
// Cancelling a callback of the running batch that has not yet run prevents it
type FrameLoop struct {
	mu      sync.Mutex
	next    FrameToken
	queue   []*frameRequest
	pending map[FrameToken]*frameRequest

	frames    atomic.Uint64
	callbacks atomic.Uint64
}

// NewFrameLoop creates an empty frame loop
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{
		pending: make(map[FrameToken]*frameRequest),
	}
}

// RequestFrame queues fn for the next Advance
func (l *FrameLoop) RequestFrame(fn FrameFunc) FrameToken {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	req := &frameRequest{token: l.next, fn: fn}
	l.queue = append(l.queue, req)
	l.pending[req.token] = req
	return req.token
}

// CancelFrame drops a pending request, unknown or already run tokens are ignored
func (l *FrameLoop) CancelFrame(token FrameToken) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if req, ok := l.pending[token]; ok {
		req.cancelled = true
		delete(l.pending, token)
	}
}

// Advance runs every callback queued before the call and returns how many ran
func (l *FrameLoop) Advance(now time.Time) int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	l.frames.Add(1)

	ran := 0
	for _, req := range batch {
		l.mu.Lock()
		if req.cancelled {
			l.mu.Unlock()
			continue
		}
		delete(l.pending, req.token)
		l.mu.Unlock()

		req.fn(now)
		ran++
	}

	l.callbacks.Add(uint64(ran))
	return ran
}

// Pending returns the number of queued, uncancelled requests
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Frames returns the number of Advance calls so far
func (l *FrameLoop) Frames() uint64 {
	return l.frames.Load()
}

// Callbacks returns the number of callbacks run so far
func (l *FrameLoop) Callbacks() uint64 {
	return l.callbacks.Load()
}
