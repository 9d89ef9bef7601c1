package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/lixenwraith/motion/audio"
	"github.com/lixenwraith/motion/config"
	"github.com/lixenwraith/motion/engine"
	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/render"
	"github.com/lixenwraith/motion/reveal"
	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/tween"
)

// skillThreshold is the visible share a bar needs before it fills
const skillThreshold = 0.5

const taglineText = "one frame loop, many tweens"

var cardColors = []colorful.Color{render.ColorCyan, render.ColorMagenta, render.ColorGreen, render.ColorOrange}

// pauser is implemented by clocks that can freeze animation time
type pauser interface {
	Toggle() bool
}

// sceneDeps is everything a demo page needs from its host
type sceneDeps struct {
	screen tcell.Screen
	clock  engine.TimeProvider
	frames engine.FrameScheduler
	cfg    *config.Config
	reg    *status.Registry
	chime  *audio.Chime
	logger *zap.Logger
}

type card struct {
	sprite *render.Sprite
	preset string
	delay  time.Duration
}

type skill struct {
	sprite   *render.Sprite
	progress float64
}

// demo is the scrolling page: reveal cards, a letter-by-letter tagline, skill bars and parallax layers
// Every method runs on the scheduler goroutine
type demo struct {
	deps   sceneDeps
	stage  *render.Stage
	engine *tween.Engine

	scroll   *reveal.ScrollAnimator
	parallax *reveal.Parallax
	skills   *reveal.SkillBars
	tagline  *reveal.TextReveal

	glyphs     []*render.Sprite
	cards      []card
	bars       []skill
	layers     []*render.Sprite
	pageHeight int
	scrollY    int
	lastErr    error
}

func engineDefaults(cfg *config.Config) tween.Options {
	return tween.Options{
		Duration: time.Duration(cfg.Engine.DurationMs) * time.Millisecond,
		Delay:    time.Duration(cfg.Engine.DelayMs) * time.Millisecond,
		Easing:   cfg.Engine.Easing,
	}
}

func newDemo(deps sceneDeps) (*demo, error) {
	logger := deps.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deps.logger = logger

	eng := tween.New(deps.frames, deps.clock, property.NewStyleAdapter(),
		tween.WithLogger(logger.Named("tween")),
		tween.WithStatus(deps.reg),
		tween.WithDefaults(engineDefaults(deps.cfg)),
		tween.WithErrorHandler(func(id tween.RequestID, err error) {
			logger.Warn("tween failed", zap.String("id", string(id)), zap.Error(err))
		}),
	)

	d := &demo{
		deps:   deps,
		stage:  render.NewStage(deps.screen),
		engine: eng,
	}

	onReveal := func(any) {
		if deps.chime != nil {
			deps.chime.Play()
		}
	}
	onFill := func(any) {
		if deps.chime != nil {
			deps.chime.PlayStep(7)
		}
	}

	adapter := property.NewStyleAdapter()
	d.scroll = reveal.NewScrollAnimator(eng, adapter, reveal.PresetsFromConfig(deps.cfg.Reveal),
		reveal.WithLogger(logger.Named("reveal")), reveal.WithStatus(deps.reg), reveal.WithOnComplete(onReveal))
	d.parallax = reveal.NewParallax(eng, deps.frames, deps.cfg.Parallax.Speed,
		reveal.WithLogger(logger.Named("parallax")))
	d.skills = reveal.NewSkillBars(eng, reveal.StyleLabel,
		reveal.WithLogger(logger.Named("skills")), reveal.WithStatus(deps.reg), reveal.WithOnComplete(onFill))
	d.skills.Configure(deps.cfg.Skills)

	if err := d.build(); err != nil {
		return nil, err
	}
	return d, nil
}

// build lays out the page for the current screen width
func (d *demo) build() error {
	w, _ := d.stage.Viewport()
	w = max(w, 40)
	cardW := min(w/2, 36)

	title := render.NewSprite("title", render.KindBox, (w-cardW)/2, 1, cardW, 3, render.ColorBlue)
	title.Label = "motion"
	d.cards = append(d.cards, card{sprite: title, preset: "fadeInUp"})

	d.tagline = reveal.NewTextReveal(d.engine, taglineText, reveal.DefaultTextTiming(render.PxPerRow),
		reveal.WithLogger(d.deps.logger.Named("text")), reveal.WithStatus(d.deps.reg))
	tx := max((w-len([]rune(taglineText)))/2, 0)
	for _, l := range d.tagline.Letters() {
		d.glyphs = append(d.glyphs, &render.Sprite{
			Name:  taglineText,
			Kind:  render.KindGlyph,
			Style: l.Style,
			Color: render.ColorForeground,
			Label: string(l.Rune),
			X:     tx + l.Column,
			Y:     5,
			W:     1,
			H:     1,
		})
	}

	presets := []string{"fadeInLeft", "fadeInRight", "scaleIn", "slideInUp", "fadeInUp"}
	names := []string{"Frame loop", "Easing", "Registry", "Parallax", "Skill bars", "Hot reload"}
	y := 7
	for i, name := range names {
		x := 2
		if i%2 == 1 {
			x = w - cardW - 2
		}
		s := render.NewSprite(name, render.KindBox, x, y, cardW, 4, cardColors[i%len(cardColors)])
		s.Label = name
		d.cards = append(d.cards, card{sprite: s, preset: presets[i%len(presets)], delay: time.Duration(i%2) * 100 * time.Millisecond})
		y += 6
	}

	y += 2
	for _, sk := range []struct {
		name     string
		progress float64
	}{{"Go", 90}, {"TypeScript", 80}, {"SQL", 75}, {"Rust", 60}} {
		s := render.NewSprite(sk.name, render.KindBar, 2, y, w-20, 1, render.ColorGreen)
		s.Label = sk.name
		s.Style.SetProp("width", 0, "%")
		d.bars = append(d.bars, skill{sprite: s, progress: sk.progress})
		y += 2
	}
	d.pageHeight = y + 4

	far := render.NewSprite("far", render.KindLayer, 0, 0, w, d.pageHeight, render.ColorMuted)
	far.Label = "·"
	near := render.NewSprite("near", render.KindLayer, 0, 0, w, d.pageHeight, render.ColorMuted)
	near.Label = "+"
	d.layers = []*render.Sprite{far, near}
	d.parallax.Add(far.Style, 0.2)
	d.parallax.Add(near.Style, 0)

	d.stage.Add(far, near)
	for _, c := range d.cards {
		d.stage.Add(c.sprite)
	}
	d.stage.Add(d.glyphs...)
	for _, b := range d.bars {
		d.stage.Add(b.sprite)
	}
	return d.observeAll()
}

func (d *demo) observeAll() error {
	for _, c := range d.cards {
		if err := d.scroll.Observe(c.sprite.Style, c.preset, c.delay); err != nil {
			return fmt.Errorf("observe %s: %w", c.sprite.Name, err)
		}
	}
	return nil
}

// frame is the after-frame hook: intersection checks, status line, draw
func (d *demo) frame(time.Time) {
	if len(d.glyphs) > 0 {
		if _, err := d.tagline.Intersect(d.stage.VisibleRatio(d.glyphs[0])); err != nil {
			d.fail(err)
		}
	}
	for _, c := range d.cards {
		if _, err := d.scroll.Intersect(c.sprite.Style, d.stage.VisibleRatio(c.sprite)); err != nil {
			d.fail(err)
		}
	}
	for _, b := range d.bars {
		if d.stage.VisibleRatio(b.sprite) < skillThreshold {
			continue
		}
		if _, err := d.skills.Fill(b.sprite.Style, b.progress); err != nil {
			d.fail(err)
		}
	}
	d.stage.SetStatus(d.statusLine())
	d.stage.Draw()
}

func (d *demo) fail(err error) {
	d.lastErr = err
	d.deps.logger.Warn("scene error", zap.Error(err))
}

func (d *demo) statusLine() string {
	reg := d.deps.reg
	paused := ""
	if p, ok := reg.Bools.Lookup(status.ClockPaused); ok && p.Load() {
		paused = " [paused]"
	}
	lag := 0.0
	if f, ok := reg.Floats.Lookup(status.FrameLagMs); ok {
		lag = f.Get()
	}
	return fmt.Sprintf(" tweens %d  done %d  reveals %d  skills %d  lag %.1fms%s │ j/k scroll  r replay  p pause  q quit",
		reg.Int(status.TweenActive), reg.Int(status.TweenCompleted),
		reg.Int(status.RevealTriggered), reg.Int(status.SkillsFilled), lag, paused)
}

// scrollBy moves the page and notifies the parallax layers
func (d *demo) scrollBy(rows int) {
	_, vh := d.stage.Viewport()
	limit := max(d.pageHeight-vh, 0)
	next := min(max(d.scrollY+rows, 0), limit)
	if next == d.scrollY {
		return
	}
	d.scrollY = next
	d.stage.SetScroll(next)
	d.parallax.OnScroll(float64(next) * render.PxPerRow)
}

// replay kills every tween and re-arms the page from the top
func (d *demo) replay() {
	d.engine.KillAll()
	if err := d.scroll.Reset(); err != nil {
		d.fail(err)
	}
	d.tagline.Reset()
	d.skills.Reset()
	for _, b := range d.bars {
		b.sprite.Style.SetProp("width", 0, "%")
		b.sprite.Style.Text = ""
	}
	d.scrollY = 0
	d.stage.SetScroll(0)
	d.parallax.OnScroll(0)
	d.deps.logger.Info("replay")
}

func (d *demo) togglePause() {
	p, ok := d.deps.clock.(pauser)
	if !ok {
		return
	}
	paused := p.Toggle()
	d.deps.reg.Bools.Get(status.ClockPaused).Store(paused)
}

// applyConfig takes a reloaded config; engine defaults apply from the next start
func (d *demo) applyConfig(cfg *config.Config) {
	d.deps.cfg = cfg
	d.scroll.SetPresets(reveal.PresetsFromConfig(cfg.Reveal))
	d.skills.Configure(cfg.Skills)
	d.parallax.SetDefaultSpeed(cfg.Parallax.Speed)
	if d.deps.chime != nil {
		d.deps.chime.Configure(cfg.Audio)
	}
	d.deps.logger.Info("config applied")
}

// handleKey reacts to one key, it reports false when the demo should exit
func (d *demo) handleKey(ev *tcell.EventKey) bool {
	_, vh := d.stage.Viewport()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyDown:
		d.scrollBy(1)
	case tcell.KeyUp:
		d.scrollBy(-1)
	case tcell.KeyPgDn:
		d.scrollBy(vh)
	case tcell.KeyPgUp:
		d.scrollBy(-vh)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'j':
			d.scrollBy(1)
		case 'k':
			d.scrollBy(-1)
		case ' ':
			d.scrollBy(vh / 2)
		case 'g':
			d.scrollBy(-d.scrollY)
		case 'G':
			d.scrollBy(d.pageHeight)
		case 'r':
			d.replay()
		case 'p':
			d.togglePause()
		}
	}
	return true
}
