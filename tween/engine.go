package tween

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/motion/engine"
	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/vmath"
)

// Adapter bridges property names to a concrete presentation target
type Adapter interface {
	Read(target any, prop string) (float64, error)
	Write(target any, prop string, value float64) error
}

// Engine owns the registry of in-flight animations and the single shared frame loop
// The loop is requested lazily on first registration and stops the frame the registry empties
type Engine struct {
	frames  engine.FrameScheduler
	clock   engine.TimeProvider
	adapter Adapter

	defaults Options
	logger   *zap.Logger
	onError  ErrorHandler
	stats    engineStats

	mu       sync.Mutex
	registry map[RequestID]*request
	order    []*request

	// Frame loop state
	running bool
	token   engine.FrameToken

	// Structural changes requested during a pass, applied after it
	inPass   bool
	deferred []RequestID
}

// engineStats caches metric pointers, cells are private when no registry is supplied
type engineStats struct {
	active    *atomic.Int64
	started   *atomic.Int64
	completed *atomic.Int64
	cancelled *atomic.Int64
	failed    *atomic.Int64
}

func newEngineStats(reg *status.Registry) engineStats {
	if reg == nil {
		return engineStats{
			active:    new(atomic.Int64),
			started:   new(atomic.Int64),
			completed: new(atomic.Int64),
			cancelled: new(atomic.Int64),
			failed:    new(atomic.Int64),
		}
	}
	return engineStats{
		active:    reg.Ints.Get(status.TweenActive),
		started:   reg.Ints.Get(status.TweenStarted),
		completed: reg.Ints.Get(status.TweenCompleted),
		cancelled: reg.Ints.Get(status.TweenCancelled),
		failed:    reg.Ints.Get(status.TweenFailed),
	}
}

// New creates an engine bound to a frame scheduler, a clock and a property adapter
// The clock must agree with the timestamps the scheduler hands to frame callbacks
func New(frames engine.FrameScheduler, clock engine.TimeProvider, adapter Adapter, opts ...EngineOption) *Engine {
	e := &Engine{
		frames:   frames,
		clock:    clock,
		adapter:  adapter,
		defaults: DefaultOptions(),
		logger:   zap.NewNop(),
		stats:    newEngineStats(nil),
		registry: make(map[RequestID]*request),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Animate registers a tween of target's properties towards goals and returns its id
// Start values are read immediately; the target is not written until the first due frame
func (e *Engine) Animate(target any, goals map[string]float64, opts ...Option) (RequestID, error) {
	o := e.defaults
	for _, opt := range opts {
		opt(&o)
	}

	easing, err := validate(target, goals, o)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(goals))
	for name := range goals {
		names = append(names, name)
	}
	slices.Sort(names)

	tracks := make([]track, 0, len(names))
	for _, name := range names {
		start, err := e.adapter.Read(target, name)
		if err != nil {
			return "", fmt.Errorf("tween: read %q: %w", name, err)
		}
		tracks = append(tracks, track{name: name, start: start, goal: goals[name]})
	}

	r := &request{
		id:         RequestID(uuid.NewString()),
		target:     target,
		tracks:     tracks,
		startTime:  e.clock.Now().Add(o.Delay),
		duration:   o.Duration,
		easing:     easing,
		onFrame:    o.OnFrame,
		onComplete: o.OnComplete,
	}

	e.mu.Lock()
	e.registry[r.id] = r
	e.order = append(e.order, r)
	e.ensureRunningLocked()
	e.stats.active.Store(int64(len(e.registry)))
	e.mu.Unlock()

	e.stats.started.Add(1)
	e.logger.Debug("tween registered",
		zap.String("id", string(r.id)),
		zap.Strings("props", names),
		zap.Duration("duration", o.Duration),
		zap.Duration("delay", o.Delay),
		zap.Stringer("easing", easing))

	return r.id, nil
}

func validate(target any, goals map[string]float64, o Options) (vmath.Easing, error) {
	if target == nil {
		return 0, fmt.Errorf("%w: nil target", ErrInvalidConfiguration)
	}
	if len(goals) == 0 {
		return 0, fmt.Errorf("%w: no property goals", ErrInvalidConfiguration)
	}
	if o.Duration < 0 {
		return 0, fmt.Errorf("%w: negative duration %v", ErrInvalidConfiguration, o.Duration)
	}
	if o.Delay < 0 {
		return 0, fmt.Errorf("%w: negative delay %v", ErrInvalidConfiguration, o.Delay)
	}
	easing, err := vmath.ParseEasing(o.Easing)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return easing, nil
}

// Stop cancels a request; unknown or finished ids are ignored
// A cancelled request never completes, even if it was due in the current pass
func (e *Engine) Stop(id RequestID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.registry[id]
	if !ok || r.cancelled.Load() {
		return
	}
	r.cancelled.Store(true)
	e.stats.cancelled.Add(1)

	if e.inPass {
		e.deferred = append(e.deferred, id)
		return
	}
	e.removeLocked(id)
	if len(e.registry) == 0 {
		e.haltLocked()
	}
}

// KillAll cancels every request silently and halts the loop
// Within a frame pass the registry is cleared once the pass ends
func (e *Engine) KillAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	killed := 0
	for _, r := range e.order {
		if r.cancelled.CompareAndSwap(false, true) {
			killed++
		}
	}
	e.stats.cancelled.Add(int64(killed))

	if e.inPass {
		for _, r := range e.order {
			e.deferred = append(e.deferred, r.id)
		}
		return
	}

	clear(e.registry)
	e.order = nil
	e.haltLocked()
	e.logger.Debug("tweens killed", zap.Int("count", killed))
}

// Len returns the number of registered requests, pending and active
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.registry)
}

// Running reports whether a frame is currently requested for the shared loop
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Has reports whether id is still registered
func (e *Engine) Has(id RequestID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.registry[id]
	return ok && !r.cancelled.Load()
}

// IsActive reports whether id is registered and its start time has passed on a frame
func (e *Engine) IsActive(id RequestID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.registry[id]
	return ok && r.active.Load()
}

func (e *Engine) ensureRunningLocked() {
	if e.running || e.inPass {
		// A running pass schedules the next frame itself
		return
	}
	e.running = true
	e.token = e.frames.RequestFrame(e.tick)
}

func (e *Engine) haltLocked() {
	if e.running && !e.inPass {
		e.frames.CancelFrame(e.token)
	}
	e.running = false
	e.token = 0
	e.stats.active.Store(0)
}

func (e *Engine) removeLocked(id RequestID) {
	if _, ok := e.registry[id]; !ok {
		return
	}
	delete(e.registry, id)
	e.order = slices.DeleteFunc(e.order, func(r *request) bool { return r.id == id })
	e.stats.active.Store(int64(len(e.registry)))
}

// tick is the shared per-frame pass over a snapshot of the registry
// Callbacks run without the lock so they may Animate, Stop or KillAll
func (e *Engine) tick(now time.Time) {
	e.mu.Lock()
	e.inPass = true
	e.token = 0
	batch := slices.Clone(e.order)
	e.mu.Unlock()

	var finished []RequestID
	for _, r := range batch {
		if r.cancelled.Load() {
			continue
		}
		if e.step(r, now) {
			finished = append(finished, r.id)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.inPass = false
	for _, id := range finished {
		e.removeLocked(id)
	}
	for _, id := range e.deferred {
		e.removeLocked(id)
	}
	e.deferred = nil

	if len(e.registry) > 0 {
		e.running = true
		e.token = e.frames.RequestFrame(e.tick)
		return
	}
	e.running = false
	e.stats.active.Store(0)
}

// step advances one request and reports whether it left the registry for good
func (e *Engine) step(r *request, now time.Time) bool {
	if now.Before(r.startTime) {
		return false
	}
	r.active.Store(true)

	raw := r.progress(now)
	eased := r.easing.Apply(raw)

	for _, tr := range r.tracks {
		value := vmath.Lerp(tr.start, tr.goal, eased)
		if err := e.adapter.Write(r.target, tr.name, value); err != nil {
			e.fail(r, fmt.Errorf("tween: write %q: %w", tr.name, err))
			return true
		}
	}

	if r.onFrame != nil {
		r.onFrame(eased)
	}

	if raw < 1 {
		return false
	}

	// A callback may have stopped this request during its own frame
	if r.cancelled.Load() {
		return true
	}
	if r.onComplete != nil {
		r.onComplete()
	}
	e.stats.completed.Add(1)
	return true
}

func (e *Engine) fail(r *request, err error) {
	e.stats.failed.Add(1)
	e.logger.Warn("tween dropped", zap.String("id", string(r.id)), zap.Error(err))
	if e.onError != nil {
		e.onError(r.id, err)
	}
}
