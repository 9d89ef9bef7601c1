// Package reveal drives page-level effects on top of the tween engine:
// scroll-triggered reveals, parallax layers and skill bar fills
package reveal

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/tween"
)

// ErrUnknownPreset is returned when Observe names a preset that is not registered
var ErrUnknownPreset = errors.New("unknown reveal preset")

// Animator is the part of tween.Engine the helpers drive
type Animator interface {
	Animate(target any, goals map[string]float64, opts ...tween.Option) (tween.RequestID, error)
	Stop(id tween.RequestID)
}

// Writer applies property values directly, used for initial states
type Writer interface {
	Write(target any, prop string, value float64) error
}

// Option configures the helpers in this package
type Option func(*settings)

type settings struct {
	logger     *zap.Logger
	reg        *status.Registry
	onComplete func(target any)
}

// WithLogger sets the logger, zap.NewNop by default
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithStatus publishes counters into reg
func WithStatus(reg *status.Registry) Option {
	return func(s *settings) { s.reg = reg }
}

// WithOnComplete runs fn after a target's reveal or fill finishes
func WithOnComplete(fn func(target any)) Option {
	return func(s *settings) { s.onComplete = fn }
}

func newSettings(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// counter returns the registry cell for key, or a private cell without a registry
func (s settings) counter(key string) *atomic.Int64 {
	if s.reg == nil {
		return new(atomic.Int64)
	}
	return s.reg.Ints.Get(key)
}

func (s settings) completer(target any) func() {
	if s.onComplete == nil {
		return nil
	}
	return func() { s.onComplete(target) }
}
