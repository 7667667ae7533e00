// Package audio synthesizes weapon cues and mixes them with beep. The mixer
// runs headless: the game loop pulls samples every tick, so no sound device
// is required.
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
)

// Mixer implements weapon.AudioPlayer and beep.Streamer.
//
// Mixer is safe for concurrent use.
type Mixer struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mix    *beep.Mixer
	cues   map[string]Cue
	played map[string]int
	rng    *rand.Rand
	buf    [][2]float64
	logger *zap.Logger
}

// NewMixer returns a Mixer at sampleRate Hz. A nil cues map selects
// DefaultCues.
//
// Precondition: sampleRate > 0.
func NewMixer(sampleRate int, cues map[string]Cue, logger *zap.Logger) *Mixer {
	if cues == nil {
		cues = DefaultCues
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mixer{
		rate:   beep.SampleRate(sampleRate),
		mix:    &beep.Mixer{},
		cues:   cues,
		played: make(map[string]int),
		rng:    rand.New(rand.NewSource(1)),
		logger: logger,
	}
}

// SampleRate returns the output sample rate.
func (m *Mixer) SampleRate() beep.SampleRate { return m.rate }

// Play starts clip. Unknown clips play a short fallback tone. An empty clip
// is ignored.
func (m *Mixer) Play(clip string) {
	if clip == "" {
		return
	}
	cue, ok := m.cues[clip]
	if !ok {
		m.logger.Debug("no cue for clip, using fallback", zap.String("clip", clip))
		cue = fallbackCue
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mix.Add(Synthesize(cue, m.rate, m.rng))
	m.played[clip]++
}

// Played returns how many times clip has been played.
func (m *Mixer) Played(clip string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[clip]
}

// Voices returns the number of cues still sounding.
func (m *Mixer) Voices() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mix.Len()
}

// Stream fills samples with the mix. Silence is produced when nothing is
// playing.
func (m *Mixer) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stream(samples), true
}

func (m *Mixer) stream(samples [][2]float64) int {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	if m.mix.Len() > 0 {
		m.mix.Stream(samples)
	}
	return len(samples)
}

// Err always returns nil.
func (m *Mixer) Err() error { return nil }

// Advance pulls d worth of samples through the mix and returns their peak
// absolute amplitude.
func (m *Mixer) Advance(d time.Duration) float64 {
	n := m.rate.N(d)
	if n <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cap(m.buf) < n {
		m.buf = make([][2]float64, n)
	}
	buf := m.buf[:n]
	m.stream(buf)
	return Peak(buf)
}

// Peak returns the largest absolute channel value in samples.
func Peak(samples [][2]float64) float64 {
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Max(math.Abs(s[0]), math.Abs(s[1])))
	}
	return peak
}
