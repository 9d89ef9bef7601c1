package status

import "sync/atomic"

// Metric keys published by the engine, scheduler and reveal consumers
const (
	TweenActive    = "tween.active"
	TweenStarted   = "tween.started"
	TweenCompleted = "tween.completed"
	TweenCancelled = "tween.cancelled"
	TweenFailed    = "tween.failed"

	FrameTicks     = "frame.ticks"
	FrameCallbacks = "frame.callbacks"
	FrameLagMs     = "frame.lag_ms"

	RevealTriggered = "reveal.triggered"
	TextRevealed    = "reveal.text"
	SkillsFilled    = "skills.filled"
	ClockPaused     = "clock.paused"
	ConfigSource    = "config.source"
)

// Registry is the central metrics facade
// Producers cache pointers once; hot paths write straight to the atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Int reads an integer metric without registering it
func (r *Registry) Int(key string) int64 {
	if p, ok := r.Ints.Lookup(key); ok {
		return p.Load()
	}
	return 0
}
