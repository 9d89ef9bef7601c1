package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/motion/config"
)

// fakeOutput captures the streamer the chime plays instead of opening a device
type fakeOutput struct {
	initErr error
	inits   int
	played  beep.Streamer
	locks   int
	closed  bool
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s beep.Streamer) { f.played = s }
func (f *fakeOutput) Lock()                { f.locks++ }
func (f *fakeOutput) Unlock()              {}
func (f *fakeOutput) Close()               { f.closed = true }

func enabledAudio() config.AudioConfig {
	cfg := config.Default().Audio
	cfg.Enabled = true
	return cfg
}

// drain streams s to the end and returns the number of samples produced
func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestTone_Length(t *testing.T) {
	rate := beep.SampleRate(48000)
	tone := Tone(880, 60*time.Millisecond, 0, rate)
	assert.Equal(t, rate.N(60*time.Millisecond), drain(tone))
	assert.NoError(t, tone.Err())
}

func TestTone_EnvelopeAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone := Tone(440, 100*time.Millisecond, 0, rate)

	buf := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := tone.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Equal(t, 0.0, buf[0][0], "attack starts silent")
	peak := 0.0
	for _, s := range buf[:n] {
		assert.LessOrEqual(t, math.Abs(s[0]), 1.0)
		assert.Equal(t, s[0], s[1], "mono tone on both channels")
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.Greater(t, peak, 0.5)
	assert.Less(t, math.Abs(buf[n-1][0]), 0.05, "release ends near silence")
}

func TestTone_Volume(t *testing.T) {
	rate := beep.SampleRate(8000)
	loud := make([][2]float64, 200)
	quiet := make([][2]float64, 200)
	Tone(440, 100*time.Millisecond, 0, rate).Stream(loud)
	Tone(440, 100*time.Millisecond, -1, rate).Stream(quiet)

	for i := range loud {
		assert.InDelta(t, loud[i][0]/2, quiet[i][0], 1e-12)
	}
}

func TestChime_DisabledIsSilent(t *testing.T) {
	out := &fakeOutput{}
	c := NewChime(config.Default().Audio, out, nil)

	require.NoError(t, c.Initialize())
	assert.Equal(t, 0, out.inits, "disabled audio never opens the device")
	c.Play()
	assert.Equal(t, int64(0), c.Played())
	assert.False(t, c.Enabled())
	c.Close()
	assert.False(t, out.closed)
}

func TestChime_PlayQueuesTone(t *testing.T) {
	out := &fakeOutput{}
	c := NewChime(enabledAudio(), out, nil)

	require.NoError(t, c.Initialize())
	require.NoError(t, c.Initialize())
	assert.Equal(t, 1, out.inits)
	require.NotNil(t, out.played)
	assert.True(t, c.Enabled())

	c.Play()
	c.PlayStep(7)
	assert.Equal(t, int64(2), c.Played())
	assert.Equal(t, 2, out.locks)

	mixer, ok := out.played.(*beep.Mixer)
	require.True(t, ok)
	assert.Equal(t, 2, mixer.Len())

	// Both tones finish after the configured duration
	buf := make([][2]float64, sampleRate.N(70*time.Millisecond))
	mixer.Stream(buf)
	mixer.Stream(buf[:1])
	assert.Equal(t, 0, mixer.Len())

	c.Close()
	assert.True(t, out.closed)
	c.Play()
	assert.Equal(t, int64(2), c.Played(), "closed chime ignores plays")
}

func TestChime_InitFailure(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	c := NewChime(enabledAudio(), out, nil)

	assert.Error(t, c.Initialize())
	c.Play()
	assert.Equal(t, int64(0), c.Played())
}
