package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChirpGenerator sweeps a sine from one frequency to another with a decaying envelope
type ChirpGenerator struct {
	sr       beep.SampleRate
	from     float64
	to       float64
	duration int
	pos      int
	phase    float64
}

// NewChirpGenerator creates a chirp lasting d
func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{
		sr:       sr,
		from:     from,
		to:       to,
		duration: max(sr.N(d), 1),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.duration), 1)
		freq := g.from + (g.to-g.from)*progress

		g.phase += freq / float64(g.sr)
		if g.phase >= 1 {
			g.phase -= 1
		}
		envelope := 1 - progress
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// BlastGenerator is filtered noise over a low rumble, decaying exponentially
type BlastGenerator struct {
	sr     beep.SampleRate
	rumble float64
	decay  float64
	pos    int
	seed   int64
	last   float64
}

// NewBlastGenerator creates a blast; larger decay dies out faster
func NewBlastGenerator(sr beep.SampleRate, rumble, decay float64, seed int64) *BlastGenerator {
	return &BlastGenerator{
		sr:     sr,
		rumble: rumble,
		decay:  decay,
		seed:   seed,
	}
}

func (g *BlastGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * g.decay)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		// One-pole low-pass keeps the noise dull
		g.last += 0.2 * (noise - g.last)

		sample := envelope * (0.35*g.last + 0.3*math.Sin(2*math.Pi*g.rumble*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BlastGenerator) Err() error {
	return nil
}
