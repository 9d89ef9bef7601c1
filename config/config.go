package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/motion/vmath"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full runtime configuration, loaded from TOML over Default()
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Frame    FrameConfig    `toml:"frame"`
	Reveal   RevealConfig   `toml:"reveal"`
	Skills   SkillsConfig   `toml:"skills"`
	Parallax ParallaxConfig `toml:"parallax"`
	Audio    AudioConfig    `toml:"audio"`
}

// EngineConfig holds per-request defaults for the tween engine
type EngineConfig struct {
	DurationMs int    `toml:"duration_ms"`
	DelayMs    int    `toml:"delay_ms"`
	Easing     string `toml:"easing"`
}

// FrameConfig controls the frame clock
type FrameConfig struct {
	IntervalMs int `toml:"interval_ms"`
}

// RevealConfig holds scroll reveal presets keyed by name
type RevealConfig struct {
	Presets map[string]PresetConfig `toml:"presets"`
}

// PresetConfig describes one reveal animation: initial state, goals and timing
type PresetConfig struct {
	DurationMs int                `toml:"duration_ms"`
	Easing     string             `toml:"easing"`
	Initial    map[string]float64 `toml:"initial"`
	Goals      map[string]float64 `toml:"goals"`
}

// SkillsConfig controls skill bar fills
type SkillsConfig struct {
	DurationMs int    `toml:"duration_ms"`
	Easing     string `toml:"easing"`
}

// ParallaxConfig holds the default layer speed
type ParallaxConfig struct {
	Speed float64 `toml:"speed"`
}

// AudioConfig controls the completion chime
type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Frequency  float64 `toml:"frequency"`
	DurationMs int     `toml:"duration_ms"`
	Volume     float64 `toml:"volume"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{DurationMs: 1000, DelayMs: 0, Easing: "ease-out"},
		Frame:  FrameConfig{IntervalMs: 16},
		Reveal: RevealConfig{Presets: map[string]PresetConfig{
			"fadeInUp":    preset(800, "ease-out", props{"opacity": 0, "y": 50}, props{"opacity": 1, "y": 0}),
			"fadeInLeft":  preset(800, "ease-out", props{"opacity": 0, "x": -50}, props{"opacity": 1, "x": 0}),
			"fadeInRight": preset(800, "ease-out", props{"opacity": 0, "x": 50}, props{"opacity": 1, "x": 0}),
			"scaleIn":     preset(600, "bounce", props{"opacity": 0, "scale": 0.8}, props{"opacity": 1, "scale": 1}),
			"slideInUp":   preset(700, "ease-out", props{"opacity": 0, "y": 50}, props{"opacity": 1, "y": 0}),
		}},
		Skills:   SkillsConfig{DurationMs: 1000, Easing: "linear"},
		Parallax: ParallaxConfig{Speed: 0.5},
		Audio:    AudioConfig{Enabled: false, Frequency: 880, DurationMs: 60, Volume: -1},
	}
}

type props = map[string]float64

func preset(durationMs int, easing string, initial, goals props) PresetConfig {
	return PresetConfig{DurationMs: durationMs, Easing: easing, Initial: initial, Goals: goals}
}

// Load reads path and overlays it onto Default, unknown keys are rejected
// Keys absent from the file keep their default, including keys of a known preset
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes over Default and validates the result
func Parse(data []byte) (*Config, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Default()
	doc.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and easing names
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	easing := func(field, name string) {
		if _, err := vmath.ParseEasing(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	check(c.Engine.DurationMs >= 0, "engine.duration_ms must be >= 0, got %d", c.Engine.DurationMs)
	check(c.Engine.DelayMs >= 0, "engine.delay_ms must be >= 0, got %d", c.Engine.DelayMs)
	easing("engine.easing", c.Engine.Easing)

	check(c.Frame.IntervalMs > 0, "frame.interval_ms must be > 0, got %d", c.Frame.IntervalMs)

	for _, name := range c.PresetNames() {
		p := c.Reveal.Presets[name]
		check(p.DurationMs >= 0, "reveal.presets.%s.duration_ms must be >= 0", name)
		check(len(p.Goals) > 0, "reveal.presets.%s.goals must not be empty", name)
		easing("reveal.presets."+name+".easing", p.Easing)
	}

	check(c.Skills.DurationMs >= 0, "skills.duration_ms must be >= 0, got %d", c.Skills.DurationMs)
	easing("skills.easing", c.Skills.Easing)

	check(c.Parallax.Speed >= 0, "parallax.speed must be >= 0, got %g", c.Parallax.Speed)

	check(c.Audio.Frequency > 0, "audio.frequency must be > 0, got %g", c.Audio.Frequency)
	check(c.Audio.DurationMs > 0, "audio.duration_ms must be > 0, got %d", c.Audio.DurationMs)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// PresetNames returns preset names in sorted order
func (c *Config) PresetNames() []string {
	return slices.Sorted(maps.Keys(c.Reveal.Presets))
}

// FrameInterval returns the frame tick interval
func (c *Config) FrameInterval() time.Duration {
	return ms(c.Frame.IntervalMs)
}

// Duration converts a preset's duration_ms
func (p PresetConfig) Duration() time.Duration {
	return ms(p.DurationMs)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Encode renders cfg as TOML
func Encode(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
