package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sine generates a fixed-length sine wave
type sine struct {
	freq     float64
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) *sine {
	return &sine{freq: freq, length: rate.N(d), rate: rate}
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// envelope shapes a stream with a linear attack and release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release int) *envelope {
	if attack+release > total {
		attack, release = total/2, total-total/2
	}
	return &envelope{streamer: s, attack: attack, release: release, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			gain = math.Min(gain, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Tone is a sine blip of duration d with a soft attack and release
// volume is a base-2 exponent: 0 is unity, -1 is half amplitude
func Tone(freq float64, d time.Duration, volume float64, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)
	env := newEnvelope(newSine(freq, d, rate), n, n/10, n/2)
	return &effects.Volume{Streamer: env, Base: 2, Volume: volume}
}
