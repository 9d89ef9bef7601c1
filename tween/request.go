package tween

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/motion/vmath"
)

// RequestID is the opaque handle returned by Animate and accepted by Stop
type RequestID string

// track is one animated property with its captured start value
type track struct {
	name  string
	start float64
	goal  float64
}

// request is an in-flight animation owned by the engine registry
type request struct {
	id        RequestID
	target    any
	tracks    []track
	startTime time.Time
	duration  time.Duration
	easing    vmath.Easing

	onFrame    func(float64)
	onComplete func()

	active    atomic.Bool
	cancelled atomic.Bool
}

// progress returns raw linear progress at now, 1 for zero duration
func (r *request) progress(now time.Time) float64 {
	if r.duration <= 0 {
		return 1
	}
	return vmath.Clamp01(float64(now.Sub(r.startTime)) / float64(r.duration))
}
