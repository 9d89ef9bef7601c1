package config

// document mirrors Config with optional fields so a file only overrides what it names
type document struct {
	Engine   *engineDoc   `toml:"engine"`
	Frame    *frameDoc    `toml:"frame"`
	Reveal   *revealDoc   `toml:"reveal"`
	Skills   *skillsDoc   `toml:"skills"`
	Parallax *parallaxDoc `toml:"parallax"`
	Audio    *audioDoc    `toml:"audio"`
}

type engineDoc struct {
	DurationMs *int    `toml:"duration_ms"`
	DelayMs    *int    `toml:"delay_ms"`
	Easing     *string `toml:"easing"`
}

type frameDoc struct {
	IntervalMs *int `toml:"interval_ms"`
}

type revealDoc struct {
	Presets map[string]presetDoc `toml:"presets"`
}

type presetDoc struct {
	DurationMs *int               `toml:"duration_ms"`
	Easing     *string            `toml:"easing"`
	Initial    map[string]float64 `toml:"initial"`
	Goals      map[string]float64 `toml:"goals"`
}

type skillsDoc struct {
	DurationMs *int    `toml:"duration_ms"`
	Easing     *string `toml:"easing"`
}

type parallaxDoc struct {
	Speed *float64 `toml:"speed"`
}

type audioDoc struct {
	Enabled    *bool    `toml:"enabled"`
	Frequency  *float64 `toml:"frequency"`
	DurationMs *int     `toml:"duration_ms"`
	Volume     *float64 `toml:"volume"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// apply overlays the document onto cfg
// Preset initial/goals tables replace the default tables as a whole
func (d *document) apply(cfg *Config) {
	if e := d.Engine; e != nil {
		set(&cfg.Engine.DurationMs, e.DurationMs)
		set(&cfg.Engine.DelayMs, e.DelayMs)
		set(&cfg.Engine.Easing, e.Easing)
	}
	if f := d.Frame; f != nil {
		set(&cfg.Frame.IntervalMs, f.IntervalMs)
	}
	if r := d.Reveal; r != nil {
		for name, pd := range r.Presets {
			p, ok := cfg.Reveal.Presets[name]
			if !ok {
				// New presets inherit engine timing unless they say otherwise
				p = PresetConfig{DurationMs: cfg.Engine.DurationMs, Easing: cfg.Engine.Easing}
			}
			set(&p.DurationMs, pd.DurationMs)
			set(&p.Easing, pd.Easing)
			if pd.Initial != nil {
				p.Initial = pd.Initial
			}
			if pd.Goals != nil {
				p.Goals = pd.Goals
			}
			cfg.Reveal.Presets[name] = p
		}
	}
	if s := d.Skills; s != nil {
		set(&cfg.Skills.DurationMs, s.DurationMs)
		set(&cfg.Skills.Easing, s.Easing)
	}
	if p := d.Parallax; p != nil {
		set(&cfg.Parallax.Speed, p.Speed)
	}
	if a := d.Audio; a != nil {
		set(&cfg.Audio.Enabled, a.Enabled)
		set(&cfg.Audio.Frequency, a.Frequency)
		set(&cfg.Audio.DurationMs, a.DurationMs)
		set(&cfg.Audio.Volume, a.Volume)
	}
}
