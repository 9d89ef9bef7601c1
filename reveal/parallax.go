package reveal

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/motion/engine"
	"github.com/lixenwraith/motion/tween"
)

// DefaultSpeed is used for layers added with a non-positive speed
const DefaultSpeed = 0.5

type layer struct {
	target  any
	speed   float64
	request tween.RequestID
}

// Parallax moves layers against the scroll offset, at most once per frame
type Parallax struct {
	anim   Animator
	frames engine.FrameScheduler
	set    settings

	mu           sync.Mutex
	defaultSpeed float64
	layers       []*layer
	scrollY      float64
	ticking      bool
	updates      uint64
}

// NewParallax creates a parallax controller, defaultSpeed replaces non-positive layer speeds
func NewParallax(anim Animator, frames engine.FrameScheduler, defaultSpeed float64, opts ...Option) *Parallax {
	if defaultSpeed <= 0 {
		defaultSpeed = DefaultSpeed
	}
	return &Parallax{
		anim:         anim,
		frames:       frames,
		set:          newSettings(opts),
		defaultSpeed: defaultSpeed,
	}
}

// Add registers target as a layer, speed <= 0 takes the default
func (p *Parallax) Add(target any, speed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if speed <= 0 {
		speed = p.defaultSpeed
	}
	for _, l := range p.layers {
		if l.target == target {
			l.speed = speed
			return
		}
	}
	p.layers = append(p.layers, &layer{target: target, speed: speed})
}

// SetDefaultSpeed changes the fallback speed for layers added afterwards
func (p *Parallax) SetDefaultSpeed(speed float64) {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	p.mu.Lock()
	p.defaultSpeed = speed
	p.mu.Unlock()
}

// Speed returns the layer speed of target
func (p *Parallax) Speed(target any) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, l := range p.layers {
		if l.target == target {
			return l.speed, true
		}
	}
	return 0, false
}

// OnScroll records the scroll offset; the first call in a frame schedules the update
func (p *Parallax) OnScroll(scrollY float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollY = scrollY
	if p.ticking {
		return
	}
	p.ticking = true
	p.frames.RequestFrame(p.update)
}

// Updates returns how many throttled updates have run
func (p *Parallax) Updates() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updates
}

func (p *Parallax) update(time.Time) {
	p.mu.Lock()
	p.ticking = false
	p.updates++
	y := p.scrollY
	layers := make([]layer, len(p.layers))
	for i, l := range p.layers {
		layers[i] = *l
	}
	p.mu.Unlock()

	for i, l := range layers {
		if l.request != "" {
			p.anim.Stop(l.request)
		}
		id, err := p.anim.Animate(l.target, map[string]float64{"y": -y * l.speed},
			tween.WithDuration(0),
			tween.WithDelay(0),
			tween.WithEasing("linear"),
		)
		if err != nil {
			p.set.logger.Warn("parallax layer skipped", zap.Error(err))
			id = ""
		}
		layers[i].request = id
	}

	p.mu.Lock()
	for i, l := range p.layers {
		if i < len(layers) && l.target == layers[i].target {
			l.request = layers[i].request
		}
	}
	p.mu.Unlock()
}
