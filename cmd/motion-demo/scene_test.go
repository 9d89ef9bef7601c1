package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/motion/config"
	"github.com/lixenwraith/motion/engine"
	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/status"
)

type sceneRig struct {
	demo  *demo
	mock  *engine.MockClock
	clock *engine.PausableClock
	sched *engine.ClockScheduler
	reg   *status.Registry
}

// newSceneRig builds the demo on an 80x25 simulation screen: 24 page rows plus status
func newSceneRig(t *testing.T) *sceneRig {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	mock := engine.NewMockClock(time.Unix(0, 0))
	clock := engine.NewPausableClock(mock)
	loop := engine.NewFrameLoop()
	reg := status.NewRegistry()

	d, err := newDemo(sceneDeps{
		screen: screen,
		clock:  clock,
		frames: loop,
		cfg:    config.Default(),
		reg:    reg,
	})
	require.NoError(t, err)

	sched := engine.NewClockScheduler(loop, clock, 16*time.Millisecond,
		engine.WithAfterFrame(d.frame),
		engine.WithSchedulerStatus(reg),
	)
	return &sceneRig{demo: d, mock: mock, clock: clock, sched: sched, reg: reg}
}

// run steps the scheduler n times, advancing mock time by step before each tick
func (r *sceneRig) run(n int, step time.Duration) {
	for range n {
		r.mock.Advance(step)
		r.sched.Step()
	}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestScene_Layout(t *testing.T) {
	r := newSceneRig(t)
	d := r.demo

	require.Len(t, d.cards, 7)
	require.Len(t, d.bars, 4)
	assert.Equal(t, 57, d.pageHeight)
	assert.Equal(t, 0.0, d.cards[0].sprite.Style.Opacity(), "cards start hidden")
	width, ok := d.bars[0].sprite.Style.Prop("width")
	require.True(t, ok)
	assert.Equal(t, "0%", width.String())
}

func TestScene_RevealsVisibleCards(t *testing.T) {
	r := newSceneRig(t)

	r.run(1, 0)
	// Title plus the three cards that reach into the first 24 rows
	assert.Equal(t, int64(4), r.reg.Int(status.RevealTriggered))
	assert.Equal(t, int64(1), r.reg.Int(status.TextRevealed))

	r.run(40, 100*time.Millisecond)
	assert.Equal(t, 1.0, r.demo.cards[0].sprite.Style.Opacity())
	assert.Equal(t, int64(4+len(r.demo.glyphs)), r.reg.Int(status.TweenCompleted), "cards plus one tween per letter")
	assert.Equal(t, int64(0), r.reg.Int(status.TweenActive))
	assert.NoError(t, r.demo.lastErr)
}

func TestScene_TaglineRises(t *testing.T) {
	r := newSceneRig(t)
	require.Len(t, r.demo.glyphs, 23)

	shown := func() string {
		var b strings.Builder
		for _, g := range r.demo.glyphs {
			ch, _, _, _ := r.demo.deps.screen.GetContent(g.X, g.Y)
			if string(ch) == g.Label {
				b.WriteRune(ch)
			}
		}
		return b.String()
	}

	r.run(1, 0)
	assert.Empty(t, shown(), "letters start below their row")

	r.run(20, 100*time.Millisecond)
	assert.Equal(t, strings.ReplaceAll(taglineText, " ", ""), shown())
}

func TestScene_ScrollFillsBars(t *testing.T) {
	r := newSceneRig(t)
	r.run(1, 0)

	assert.True(t, r.demo.handleKey(key('G')))
	assert.Equal(t, 33, r.demo.scrollY, "bottom of a 57 row page in 24 rows")

	r.run(40, 100*time.Millisecond)
	assert.Equal(t, int64(4), r.reg.Int(status.SkillsFilled))
	assert.Equal(t, "90%", r.demo.bars[0].sprite.Style.Text)
	assert.Equal(t, "60%", r.demo.bars[3].sprite.Style.Text)

	far := r.demo.layers[0].Style
	y, ok := far.TransformValue(property.FnTranslateY)
	require.True(t, ok)
	assert.InDelta(t, -33*16*0.2, y, 1e-9)
}

func TestScene_Replay(t *testing.T) {
	r := newSceneRig(t)
	r.run(1, 0)
	r.demo.handleKey(key('G'))
	r.run(40, 100*time.Millisecond)
	before := r.reg.Int(status.RevealTriggered)

	assert.True(t, r.demo.handleKey(key('r')))
	assert.Equal(t, 0, r.demo.scrollY)
	assert.Equal(t, 0.0, r.demo.cards[0].sprite.Style.Opacity())
	assert.Empty(t, r.demo.bars[0].sprite.Style.Text)
	assert.False(t, r.demo.tagline.Revealed())

	r.run(1, 0)
	assert.Equal(t, before+4, r.reg.Int(status.RevealTriggered))
}

func TestScene_PauseFreezesTweens(t *testing.T) {
	r := newSceneRig(t)
	r.run(4, 100*time.Millisecond)

	r.demo.handleKey(key('p'))
	assert.True(t, r.clock.IsPaused())
	assert.Contains(t, r.demo.statusLine(), "[paused]")

	op := r.demo.cards[0].sprite.Style.Opacity()
	require.Greater(t, op, 0.0)
	require.Less(t, op, 1.0)
	r.run(10, 100*time.Millisecond)
	assert.Equal(t, op, r.demo.cards[0].sprite.Style.Opacity())

	r.demo.handleKey(key('p'))
	assert.False(t, r.clock.IsPaused())
	assert.NotContains(t, r.demo.statusLine(), "[paused]")
	r.run(20, 100*time.Millisecond)
	assert.Equal(t, 1.0, r.demo.cards[0].sprite.Style.Opacity())
}

func TestScene_Keys(t *testing.T) {
	r := newSceneRig(t)
	d := r.demo

	assert.True(t, d.handleKey(key('j')))
	assert.Equal(t, 1, d.scrollY)
	assert.True(t, d.handleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
	assert.Equal(t, 0, d.scrollY)
	assert.True(t, d.handleKey(key('k')))
	assert.Equal(t, 0, d.scrollY, "clamped at the top")
	assert.True(t, d.handleKey(key(' ')))
	assert.Equal(t, 12, d.scrollY)
	assert.True(t, d.handleKey(key('g')))
	assert.Equal(t, 0, d.scrollY)

	assert.False(t, d.handleKey(key('q')))
	assert.False(t, d.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestScene_ApplyConfig(t *testing.T) {
	r := newSceneRig(t)
	d := r.demo

	cfg := config.Default()
	cfg.Parallax.Speed = 0.8
	cfg.Reveal.Presets["blink"] = config.PresetConfig{DurationMs: 100, Easing: "linear", Goals: map[string]float64{"opacity": 1}}
	d.applyConfig(cfg)

	assert.Contains(t, d.scroll.Presets(), "blink")

	speed, ok := d.parallax.Speed(d.layers[1].Style)
	require.True(t, ok)
	assert.Equal(t, 0.5, speed, "existing layers keep their speed")

	extra := property.NewStyle()
	d.parallax.Add(extra, 0)
	speed, _ = d.parallax.Speed(extra)
	assert.Equal(t, 0.8, speed)
}
