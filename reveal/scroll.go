package reveal

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/motion/config"
	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/tween"
)

// Preset is a named reveal: the state applied on Observe and the goals animated on first view
type Preset struct {
	Duration time.Duration
	Easing   string
	Initial  map[string]float64
	Goals    map[string]float64
}

// PresetsFromConfig converts the configured presets
func PresetsFromConfig(cfg config.RevealConfig) map[string]Preset {
	out := make(map[string]Preset, len(cfg.Presets))
	for name, p := range cfg.Presets {
		out[name] = Preset{
			Duration: p.Duration(),
			Easing:   p.Easing,
			Initial:  maps.Clone(p.Initial),
			Goals:    maps.Clone(p.Goals),
		}
	}
	return out
}

// observed is one registered target
type observed struct {
	target    any
	preset    string
	delay     time.Duration
	triggered bool
	request   tween.RequestID
}

// ScrollAnimator reveals targets the first time they intersect the viewport
// Targets are used as map keys and must be comparable, pointers in practice
type ScrollAnimator struct {
	anim   Animator
	writer Writer
	set    settings

	triggered *atomic.Int64

	mu      sync.Mutex
	presets map[string]Preset
	targets map[any]*observed
	order   []*observed
}

// NewScrollAnimator creates an animator over presets, writer applies initial states
func NewScrollAnimator(anim Animator, writer Writer, presets map[string]Preset, opts ...Option) *ScrollAnimator {
	s := newSettings(opts)
	return &ScrollAnimator{
		anim:      anim,
		writer:    writer,
		set:       s,
		triggered: s.counter(status.RevealTriggered),
		presets:   maps.Clone(presets),
		targets:   make(map[any]*observed),
	}
}

// SetPresets swaps the preset table, targets already triggered are unaffected
func (sa *ScrollAnimator) SetPresets(presets map[string]Preset) {
	sa.mu.Lock()
	sa.presets = maps.Clone(presets)
	sa.mu.Unlock()
}

// Presets returns the registered preset names, sorted
func (sa *ScrollAnimator) Presets() []string {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return slices.Sorted(maps.Keys(sa.presets))
}

// Observe applies preset's initial state to target and waits for it to intersect
// Observing a target again replaces its preset and re-arms it
func (sa *ScrollAnimator) Observe(target any, preset string, delay time.Duration) error {
	sa.mu.Lock()
	p, ok := sa.presets[preset]
	sa.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}

	if err := sa.applyInitial(target, p); err != nil {
		return err
	}

	sa.mu.Lock()
	defer sa.mu.Unlock()
	if o, ok := sa.targets[target]; ok {
		o.preset, o.delay, o.triggered, o.request = preset, delay, false, ""
		return nil
	}
	o := &observed{target: target, preset: preset, delay: delay}
	sa.targets[target] = o
	sa.order = append(sa.order, o)
	return nil
}

func (sa *ScrollAnimator) applyInitial(target any, p Preset) error {
	for _, name := range slices.Sorted(maps.Keys(p.Initial)) {
		if err := sa.writer.Write(target, name, p.Initial[name]); err != nil {
			return fmt.Errorf("reveal: initial %q: %w", name, err)
		}
	}
	return nil
}

// Intersect reports that target's visible ratio changed
// The first notification with ratio > 0 starts the reveal; later ones are ignored
// It returns the started request id, or "" when nothing was started
func (sa *ScrollAnimator) Intersect(target any, ratio float64) (tween.RequestID, error) {
	if ratio <= 0 {
		return "", nil
	}

	sa.mu.Lock()
	o, ok := sa.targets[target]
	if !ok || o.triggered {
		sa.mu.Unlock()
		return "", nil
	}
	p, ok := sa.presets[o.preset]
	if !ok {
		sa.mu.Unlock()
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, o.preset)
	}
	o.triggered = true
	name, delay := o.preset, o.delay
	sa.mu.Unlock()

	id, err := sa.anim.Animate(target, p.Goals,
		tween.WithDuration(p.Duration),
		tween.WithDelay(delay),
		tween.WithEasing(p.Easing),
		tween.OnComplete(sa.set.completer(target)),
	)
	if err != nil {
		sa.mu.Lock()
		o.triggered = false
		sa.mu.Unlock()
		return "", fmt.Errorf("reveal %q: %w", name, err)
	}

	sa.mu.Lock()
	o.request = id
	sa.mu.Unlock()

	sa.triggered.Add(1)
	sa.set.logger.Debug("reveal triggered",
		zap.String("preset", name),
		zap.Float64("ratio", ratio),
		zap.String("id", string(id)))
	return id, nil
}

// Triggered reports whether target has started its reveal
func (sa *ScrollAnimator) Triggered(target any) bool {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	o, ok := sa.targets[target]
	return ok && o.triggered
}

// Pending returns observed targets that have not been revealed, in Observe order
func (sa *ScrollAnimator) Pending() []any {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	var out []any
	for _, o := range sa.order {
		if !o.triggered {
			out = append(out, o.target)
		}
	}
	return out
}

// Reset stops in-flight reveals, reapplies every initial state and re-arms all targets
func (sa *ScrollAnimator) Reset() error {
	sa.mu.Lock()
	entries := slices.Clone(sa.order)
	presets := sa.presets
	sa.mu.Unlock()

	for _, o := range entries {
		sa.mu.Lock()
		id := o.request
		o.triggered, o.request = false, ""
		sa.mu.Unlock()

		if id != "" {
			sa.anim.Stop(id)
		}
		if p, ok := presets[o.preset]; ok {
			if err := sa.applyInitial(o.target, p); err != nil {
				return err
			}
		}
	}
	return nil
}
