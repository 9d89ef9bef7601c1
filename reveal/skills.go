package reveal

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/motion/config"
	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/tween"
	"github.com/lixenwraith/motion/vmath"
)

// Skill bar defaults, one second is roughly sixty display frames
const (
	DefaultFillDuration = time.Second
	DefaultFillEasing   = "linear"
)

// LabelFunc sets a bar's label text
type LabelFunc func(target any, text string)

// StyleLabel writes the label into a *property.Style, other targets are ignored
func StyleLabel(target any, text string) {
	if s, ok := target.(*property.Style); ok && s != nil {
		s.Text = text
	}
}

// SkillBars fills progress bars once each, animating width in percent
type SkillBars struct {
	anim  Animator
	set   settings
	label LabelFunc

	filled *atomic.Int64

	mu       sync.Mutex
	duration time.Duration
	easing   string
	done     map[any]bool
}

// NewSkillBars creates a filler with the default timing
func NewSkillBars(anim Animator, label LabelFunc, opts ...Option) *SkillBars {
	if label == nil {
		label = StyleLabel
	}
	s := newSettings(opts)
	return &SkillBars{
		anim:     anim,
		set:      s,
		label:    label,
		filled:   s.counter(status.SkillsFilled),
		duration: DefaultFillDuration,
		easing:   DefaultFillEasing,
		done:     make(map[any]bool),
	}
}

// Configure applies the configured timing to fills started afterwards
func (sb *SkillBars) Configure(cfg config.SkillsConfig) {
	sb.mu.Lock()
	sb.duration = time.Duration(cfg.DurationMs) * time.Millisecond
	sb.easing = cfg.Easing
	sb.mu.Unlock()
}

// Fill animates target's width to progress percent, clamped to 0..100
// A target fills once; later calls return "" until Reset
func (sb *SkillBars) Fill(target any, progress float64) (tween.RequestID, error) {
	if math.IsNaN(progress) {
		progress = 0
	}
	progress = vmath.Clamp(progress, 0, 100)

	sb.mu.Lock()
	if sb.done[target] {
		sb.mu.Unlock()
		return "", nil
	}
	sb.done[target] = true
	duration, easing := sb.duration, sb.easing
	sb.mu.Unlock()

	// Bars start empty in percent unless the target already carries a width
	if s, ok := target.(*property.Style); ok && s != nil {
		if _, has := s.Prop("width"); !has {
			s.SetProp("width", 0, "%")
		}
	}

	text := strconv.FormatFloat(progress, 'f', -1, 64) + "%"
	complete := sb.set.completer(target)

	id, err := sb.anim.Animate(target, map[string]float64{"width": progress},
		tween.WithDuration(duration),
		tween.WithDelay(0),
		tween.WithEasing(easing),
		tween.OnComplete(func() {
			sb.label(target, text)
			sb.filled.Add(1)
			if complete != nil {
				complete()
			}
		}),
	)
	if err != nil {
		sb.mu.Lock()
		delete(sb.done, target)
		sb.mu.Unlock()
		return "", fmt.Errorf("skill bar: %w", err)
	}

	sb.set.logger.Debug("skill bar fill", zap.Float64("progress", progress), zap.String("id", string(id)))
	return id, nil
}

// Filled reports whether target has started filling
func (sb *SkillBars) Filled(target any) bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.done[target]
}

// Reset forgets which bars were filled
func (sb *SkillBars) Reset() {
	sb.mu.Lock()
	clear(sb.done)
	sb.mu.Unlock()
}
