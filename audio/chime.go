package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/motion/config"
)

const sampleRate = beep.SampleRate(48000)

// Output is the audio device the chime plays into
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// Speaker is the system speaker
type Speaker struct{}

func (Speaker) Init(rate beep.SampleRate, bufferSize int) error { return speaker.Init(rate, bufferSize) }
func (Speaker) Play(s beep.Streamer)                            { speaker.Play(s) }
func (Speaker) Lock()                                           { speaker.Lock() }
func (Speaker) Unlock()                                         { speaker.Unlock() }
func (Speaker) Close()                                          { speaker.Close() }

// Chime plays a short tone when an animation completes
// All operations are no-ops until Initialize succeeds, so the demo runs without a sound device
type Chime struct {
	out    Output
	logger *zap.Logger

	mu          sync.Mutex
	cfg         config.AudioConfig
	mixer       *beep.Mixer
	initialized bool

	played atomic.Int64
}

// NewChime creates a chime over out, nil selects the system speaker
func NewChime(cfg config.AudioConfig, out Output, logger *zap.Logger) *Chime {
	if out == nil {
		out = Speaker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chime{
		out:    out,
		logger: logger,
		cfg:    cfg,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the device and starts the mixer, disabled configs skip the device
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || !c.cfg.Enabled {
		return nil
	}
	if err := c.out.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	c.out.Play(c.mixer)
	c.initialized = true
	c.logger.Debug("audio initialized", zap.Int("rate", int(sampleRate)))
	return nil
}

// Configure swaps tone settings, enabling a closed chime requires Initialize
func (c *Chime) Configure(cfg config.AudioConfig) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// Enabled reports whether tones will be heard
func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized && c.cfg.Enabled
}

// Play queues the configured tone
func (c *Chime) Play() {
	c.PlayStep(0)
}

// PlayStep queues the configured tone shifted by step semitones
func (c *Chime) PlayStep(step int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || !c.cfg.Enabled {
		return
	}
	freq := c.cfg.Frequency * math.Pow(2, float64(step)/12)
	tone := Tone(freq, time.Duration(c.cfg.DurationMs)*time.Millisecond, c.cfg.Volume, sampleRate)

	c.out.Lock()
	c.mixer.Add(tone)
	c.out.Unlock()
	c.played.Add(1)
}

// Played returns how many tones were queued
func (c *Chime) Played() int64 {
	return c.played.Load()
}

// Close silences pending tones and releases the device
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.out.Lock()
	c.mixer.Clear()
	c.out.Unlock()
	c.out.Close()
	c.initialized = false
}
