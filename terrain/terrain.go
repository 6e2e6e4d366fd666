// Package terrain owns the immutable height field players fight over
package terrain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/parameter"
)

// ErrInvalidBounds reports generation parameters outside the supported domain
var ErrInvalidBounds = errors.New("terrain: invalid bounds")

// Terrain is a per-column height field, immutable after generation
type Terrain struct {
	Heightmap []float64
	MaxHeight float64
}

// New wraps an existing heightmap
func New(heightmap []float64, maxHeight float64) (*Terrain, error) {
	if len(heightmap) < parameter.MinWorldWidth || len(heightmap) > parameter.MaxWorldWidth {
		return nil, fmt.Errorf("%w: heightmap of %d samples", ErrInvalidBounds, len(heightmap))
	}
	if maxHeight <= 0 {
		return nil, fmt.Errorf("%w: max height %f", ErrInvalidBounds, maxHeight)
	}
	return &Terrain{Heightmap: heightmap, MaxHeight: maxHeight}, nil
}

// Width returns the number of samples
func (t *Terrain) Width() int {
	return len(t.Heightmap)
}

// Height linearly interpolates between the two samples around x
// Outside the sampled domain the nearest end sample is returned
func (t *Terrain) Height(x float64) float64 {
	last := len(t.Heightmap) - 1
	fx := math.Floor(x)
	switch {
	case math.IsNaN(x) || fx < 0:
		return t.Heightmap[0]
	case fx >= float64(last):
		return t.Heightmap[last]
	}
	i := int(fx)
	y0 := t.Heightmap[i]
	y1 := t.Heightmap[i+1]
	return y0 + (x-fx)*(y1-y0)
}

// NormalDir returns the surface slope angle at x, in radians
// x is clamped to [1, len-2] so both neighbouring samples exist
func (t *Terrain) NormalDir(x float64) float64 {
	x = math.Max(1, math.Min(x, float64(len(t.Heightmap)-2)))
	if math.IsNaN(x) {
		x = 1
	}
	i := int(math.Floor(x))
	return math.Atan(t.Heightmap[i+1] - t.Heightmap[i])
}

// Generate builds a height field of width columns from points randomly spaced
// control points joined by a Hermite spline with Catmull-Rom tangents
// Control heights fall in [0.3, 0.7] of height; the curve is clamped to [0.2, 0.8]
func Generate(width, height, points int, rng *rand.Rand) (*Terrain, error) {
	if width < parameter.MinWorldWidth || width > parameter.MaxWorldWidth {
		return nil, fmt.Errorf("%w: width %d not in [%d, %d]",
			ErrInvalidBounds, width, parameter.MinWorldWidth, parameter.MaxWorldWidth)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidBounds, height)
	}
	if points < 1 {
		return nil, fmt.Errorf("%w: %d control points", ErrInvalidBounds, points)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	s := newSpline(float64(width), float64(height), points, rng)
	hmap := make([]float64, width)
	for x := range hmap {
		hmap[x] = s.eval(float64(x))
	}

	log.Debug().
		Int("width", width).
		Int("height", height).
		Int("points", points).
		Int("knots", len(s.t)).
		Msg("Generated terrain")

	return &Terrain{Heightmap: hmap, MaxHeight: float64(height)}, nil
}

// MustGenerate is Generate for callers that treat invalid bounds as a programming error
func MustGenerate(width, height, points int, rng *rand.Rand) *Terrain {
	t, err := Generate(width, height, points, rng)
	if err != nil {
		panic(err)
	}
	return t
}

// spline holds the knot positions and heights of the generator curve
type spline struct {
	lo, hi float64 // Evaluation clamp
	t      []float64
	p      []float64
}

func newSpline(width, height float64, count int, rng *rand.Rand) *spline {
	minP := height * parameter.TerrainControlMin
	maxP := height * parameter.TerrainControlMax
	dx := width / float64(count)

	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}
	// Steps are in (0, 2dx]; a zero step would give two knots at the same t
	step := func() float64 {
		return 2 * dx * (1 - rng.Float64())
	}

	s := &spline{
		lo: height * parameter.TerrainClampMin,
		hi: height * parameter.TerrainClampMax,
	}

	// One knot well left of the domain, one just left of it, then fill past the right edge
	s.t = append(s.t, -dx)
	s.p = append(s.p, uniform(minP, maxP))
	last := uniform(-dx, 0)
	if last <= -dx {
		last = -dx / 2
	}
	s.t = append(s.t, last)
	s.p = append(s.p, uniform(minP, maxP))
	for last <= width {
		last += step()
		s.t = append(s.t, last)
		s.p = append(s.p, uniform(minP, maxP))
	}
	last += step()
	s.t = append(s.t, last)
	s.p = append(s.p, uniform(minP, maxP))

	return s
}

// tangent is the Catmull-Rom slope at knot k: mean of the adjacent secants
func (s *spline) tangent(k int) float64 {
	m1 := (s.p[k+1] - s.p[k]) / (s.t[k+1] - s.t[k])
	m2 := (s.p[k] - s.p[k-1]) / (s.t[k] - s.t[k-1])
	return 0.5 * (m1 + m2)
}

// segment returns the knot index k with t[k] <= x < t[k+1], keeping k and k+1 interior
func (s *spline) segment(x float64) int {
	i := 1
	for i < len(s.t)-3 {
		if s.t[i+1] > x {
			break
		}
		i++
	}
	return i
}

func (s *spline) eval(x float64) float64 {
	k0 := s.segment(x)
	k1 := k0 + 1
	span := s.t[k1] - s.t[k0]
	u := (x - s.t[k0]) / span
	u2 := u * u
	u3 := u * u2

	y := s.p[k0]*(2*u3-3*u2+1) +
		s.tangent(k0)*span*(u3-2*u2+u) +
		s.p[k1]*(-2*u3+3*u2) +
		s.tangent(k1)*span*(u3-u2)

	if y < s.lo {
		log.Trace().Float64("x", x).Float64("y", y).Msg("Terrain clamped to floor")
		return s.lo
	}
	if y > s.hi {
		log.Trace().Float64("x", x).Float64("y", y).Msg("Terrain clamped to ceiling")
		return s.hi
	}
	return y
}
