package tween

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/vmath"
)

// Defaults used by Animate when an option is not given
const (
	DefaultDuration = time.Second
	DefaultDelay    = time.Duration(0)
	DefaultEasing   = "ease-out"
)

// Options is the per-request configuration resolved by Animate
type Options struct {
	// Duration of the interpolation, zero applies the goal on the first due frame
	Duration time.Duration

	// Delay before the request becomes active, measured from registration
	Delay time.Duration

	// Easing curve name, resolved through vmath.ParseEasing
	Easing string

	// OnFrame receives eased progress after each frame's property writes
	OnFrame func(eased float64)

	// OnComplete runs once, after the final frame's writes and OnFrame
	OnComplete func()
}

// Option is a functional option for a single Animate call
type Option func(*Options)

// WithDuration sets the interpolation duration
func WithDuration(d time.Duration) Option {
	return func(o *Options) {
		o.Duration = d
	}
}

// WithDelay postpones the start by d
func WithDelay(d time.Duration) Option {
	return func(o *Options) {
		o.Delay = d
	}
}

// WithEasing selects the curve by name
func WithEasing(name string) Option {
	return func(o *Options) {
		o.Easing = name
	}
}

// WithEasingKind selects the curve by value
func WithEasingKind(e vmath.Easing) Option {
	return func(o *Options) {
		o.Easing = e.String()
	}
}

// OnFrame registers the per-frame progress hook
func OnFrame(fn func(eased float64)) Option {
	return func(o *Options) {
		o.OnFrame = fn
	}
}

// OnComplete registers the completion hook
func OnComplete(fn func()) Option {
	return func(o *Options) {
		o.OnComplete = fn
	}
}

// ErrorHandler observes requests dropped because the adapter failed
type ErrorHandler func(id RequestID, err error)

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLogger sets the engine logger, default is a no-op logger
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStatus publishes engine counters into reg
func WithStatus(reg *status.Registry) EngineOption {
	return func(e *Engine) {
		e.stats = newEngineStats(reg)
	}
}

// WithErrorHandler installs an observer for adapter failures
func WithErrorHandler(fn ErrorHandler) EngineOption {
	return func(e *Engine) {
		e.onError = fn
	}
}

// WithDefaults replaces the per-request defaults applied before call options
func WithDefaults(d Options) EngineOption {
	return func(e *Engine) {
		e.defaults = Options{
			Duration: d.Duration,
			Delay:    d.Delay,
			Easing:   d.Easing,
		}
	}
}

// DefaultOptions returns the built-in per-request defaults
func DefaultOptions() Options {
	return Options{
		Duration: DefaultDuration,
		Delay:    DefaultDelay,
		Easing:   DefaultEasing,
	}
}
