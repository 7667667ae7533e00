package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue describes one synthesized sound.
type Cue struct {
	Wave     Wave
	Freq     float64
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	// Volume is a linear gain in [0, 1].
	Volume float64
	// Sweep multiplies Freq per second, e.g. 0.25 for a falling pitch.
	Sweep float64
}

// DefaultCues are the built-in weapon sounds keyed by clip name.
var DefaultCues = map[string]Cue{
	"pistol_fire":   {Wave: WaveNoise, Duration: 120 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 100 * time.Millisecond, Volume: 0.6},
	"pistol_reload": {Wave: WaveSquare, Freq: 520, Duration: 90 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond, Volume: 0.35},
	"shotgun_fire":  {Wave: WaveNoise, Duration: 260 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 220 * time.Millisecond, Volume: 0.9},
	"shotgun_shell": {Wave: WaveSaw, Freq: 180, Duration: 70 * time.Millisecond, Attack: 3 * time.Millisecond, Release: 50 * time.Millisecond, Volume: 0.4, Sweep: 0.5},
}

// fallbackCue plays for clips with no configured cue.
var fallbackCue = Cue{Wave: WaveSine, Freq: 880, Duration: 40 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 20 * time.Millisecond, Volume: 0.2}

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	wave     Wave
	freq     float64
	sweep    float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
	rng      *rand.Rand
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		freq := o.freq
		if o.sweep > 0 {
			freq *= math.Pow(o.sweep, float64(o.position)/float64(o.rate))
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	s        beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			gain = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// Synthesize builds a finite streamer for c at rate.
//
// Postcondition: the streamer yields exactly rate.N(c.Duration) samples with
// every channel value in [-1, 1].
func Synthesize(c Cue, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	total := rate.N(c.Duration)
	osc := &oscillator{wave: c.Wave, freq: c.Freq, sweep: c.Sweep, total: total, rate: rate, rng: rng}
	env := &envelope{s: osc, attack: rate.N(c.Attack), release: rate.N(c.Release), total: total}
	return beep.Take(total, gain(env, c.Volume))
}

// gain wraps s in a volume effect. Zero volume is silent because the log of
// zero is undefined.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}
