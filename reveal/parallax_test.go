package reveal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/tween"
)

func TestParallax_ThrottledToOneFrame(t *testing.T) {
	r := newRig(t)
	p := NewParallax(r.engine, r.loop, 0.25)
	near, far := property.NewStyle(), property.NewStyle()
	p.Add(near, 0.5)
	p.Add(far, 0)

	p.OnScroll(100)
	p.OnScroll(150)
	p.OnScroll(200)
	assert.Equal(t, 1, r.loop.Pending(), "one frame for a burst of scroll events")

	r.frameAt(16 * time.Millisecond)
	assert.Equal(t, uint64(1), p.Updates())

	r.frameAt(32 * time.Millisecond)
	assert.Equal(t, -100.0, translateY(t, near), "latest offset times layer speed")
	assert.Equal(t, -50.0, translateY(t, far), "non-positive speed takes the default")
	assert.Equal(t, 0, r.engine.Len(), "zero duration requests finish on their first frame")
}

func TestParallax_StopsPreviousRequest(t *testing.T) {
	r := newRig(t)
	spy := &spyAnimator{inner: r.engine}
	p := NewParallax(spy, r.loop, 0)
	layer := property.NewStyle()
	p.Add(layer, 1)

	p.OnScroll(10)
	r.frameAt(16 * time.Millisecond)
	require.Len(t, spy.started, 1)
	first := spy.started[0]
	assert.True(t, r.engine.Has(first))

	// Each update stops the layer's previous request before starting the next
	p.OnScroll(40)
	r.frameAt(32 * time.Millisecond)
	require.Len(t, spy.started, 2)
	assert.Equal(t, []tween.RequestID{first}, spy.stopped)

	r.frameAt(48 * time.Millisecond)
	assert.Equal(t, -40.0, translateY(t, layer))
}

func TestParallax_AddReplacesSpeed(t *testing.T) {
	r := newRig(t)
	p := NewParallax(r.engine, r.loop, -1)
	s := property.NewStyle()

	p.Add(s, 0)
	speed, ok := p.Speed(s)
	require.True(t, ok)
	assert.Equal(t, DefaultSpeed, speed)

	p.Add(s, 2)
	speed, _ = p.Speed(s)
	assert.Equal(t, 2.0, speed)

	p.SetDefaultSpeed(0.1)
	other := property.NewStyle()
	p.Add(other, -3)
	speed, _ = p.Speed(other)
	assert.Equal(t, 0.1, speed)

	_, ok = p.Speed(property.NewStyle())
	assert.False(t, ok)
}

func TestParallax_NoLayers(t *testing.T) {
	r := newRig(t)
	p := NewParallax(r.engine, r.loop, 0.5)

	p.OnScroll(500)
	r.frameAt(16 * time.Millisecond)
	assert.Equal(t, uint64(1), p.Updates())
	assert.Equal(t, 0, r.loop.Pending())
}
