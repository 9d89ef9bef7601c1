package reveal

import (
	"testing"
	"time"

	"github.com/lixenwraith/motion/engine"
	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/tween"
)

// rig wires a real engine to a manual frame clock and the style adapter
type rig struct {
	t0      time.Time
	clock   *engine.MockClock
	loop    *engine.FrameLoop
	adapter *property.StyleAdapter
	reg     *status.Registry
	engine  *tween.Engine
}

func newRig(t *testing.T) *rig {
	t.Helper()
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r := &rig{
		t0:      t0,
		clock:   engine.NewMockClock(t0),
		loop:    engine.NewFrameLoop(),
		adapter: property.NewStyleAdapter(),
		reg:     status.NewRegistry(),
	}
	r.engine = tween.New(r.loop, r.clock, r.adapter, tween.WithStatus(r.reg))
	return r
}

// frameAt moves the clock to t0+offset and runs one frame
func (r *rig) frameAt(offset time.Duration) {
	now := r.t0.Add(offset)
	r.clock.Set(now)
	r.loop.Advance(now)
}

func translateY(t *testing.T, s *property.Style) float64 {
	t.Helper()
	v, _ := s.TransformValue(property.FnTranslateY)
	return v
}

// spyAnimator records the calls it forwards to the engine
type spyAnimator struct {
	inner   *tween.Engine
	started []tween.RequestID
	stopped []tween.RequestID
}

func (s *spyAnimator) Animate(target any, goals map[string]float64, opts ...tween.Option) (tween.RequestID, error) {
	id, err := s.inner.Animate(target, goals, opts...)
	if err == nil {
		s.started = append(s.started, id)
	}
	return id, err
}

func (s *spyAnimator) Stop(id tween.RequestID) {
	s.stopped = append(s.stopped, id)
	s.inner.Stop(id)
}
