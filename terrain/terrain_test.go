package terrain

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func flat(heights ...float64) *Terrain {
	return &Terrain{Heightmap: heights, MaxHeight: 100}
}

func TestHeightInterpolates(t *testing.T) {
	tr := flat(10, 20, 40, 40)

	tests := []struct {
		x    float64
		want float64
	}{
		{0, 10},
		{0.5, 15},
		{1, 20},
		{1.25, 25},
		{2.5, 40},
		{3, 40},
	}
	for _, tt := range tests {
		if got := tr.Height(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Height(%v): expected %v, got %v", tt.x, tt.want, got)
		}
	}
}

func TestHeightClampsOutsideDomain(t *testing.T) {
	tr := flat(10, 20, 30)

	if got := tr.Height(-5); got != 10 {
		t.Errorf("Expected first sample left of domain, got %v", got)
	}
	if got := tr.Height(-0.5); got != 10 {
		t.Errorf("Expected first sample just left of domain, got %v", got)
	}
	if got := tr.Height(2); got != 30 {
		t.Errorf("Expected last sample at last index, got %v", got)
	}
	if got := tr.Height(1e6); got != 30 {
		t.Errorf("Expected last sample right of domain, got %v", got)
	}
	if got := tr.Height(math.NaN()); got != 10 {
		t.Errorf("Expected first sample for NaN, got %v", got)
	}
}

func TestHeightContinuousAcrossSamples(t *testing.T) {
	tr, err := Generate(400, 300, 8, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	const eps = 1e-9
	for i := 1; i < tr.Width()-1; i++ {
		x := float64(i)
		left := tr.Height(x - eps)
		right := tr.Height(x + eps)
		at := tr.Height(x)
		if math.Abs(left-at) > 1e-6 || math.Abs(right-at) > 1e-6 {
			t.Fatalf("Discontinuity at x=%d: left=%v at=%v right=%v", i, left, at, right)
		}
	}
}

func TestNormalDir(t *testing.T) {
	tr := flat(0, 0, 1, 1, 1)

	if got := tr.NormalDir(1.5); math.Abs(got-math.Pi/4) > 1e-12 {
		t.Errorf("Expected pi/4 on unit slope, got %v", got)
	}
	if got := tr.NormalDir(2.5); got != 0 {
		t.Errorf("Expected 0 on flat, got %v", got)
	}
	// Clamped to [1, len-2]
	if got := tr.NormalDir(-10); math.Abs(got-math.Pi/4) > 1e-12 {
		t.Errorf("Expected left clamp to x=1, got %v", got)
	}
	if got := tr.NormalDir(100); got != 0 {
		t.Errorf("Expected right clamp to x=3, got %v", got)
	}
}

func TestGenerateBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := 500
	tr, err := Generate(1000, h, 10, rng)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if tr.Width() != 1000 {
		t.Errorf("Expected 1000 samples, got %d", tr.Width())
	}
	if tr.MaxHeight != float64(h) {
		t.Errorf("Expected max height %d, got %v", h, tr.MaxHeight)
	}
	lo, hi := 0.2*float64(h), 0.8*float64(h)
	for x, y := range tr.Heightmap {
		if y < lo || y > hi || math.IsNaN(y) {
			t.Fatalf("Sample %d out of [%v, %v]: %v", x, lo, hi, y)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := MustGenerate(300, 200, 5, rand.New(rand.NewSource(42)))
	b := MustGenerate(300, 200, 5, rand.New(rand.NewSource(42)))

	for i := range a.Heightmap {
		if a.Heightmap[i] != b.Heightmap[i] {
			t.Fatalf("Expected identical terrain for equal seeds, differs at %d", i)
		}
	}
}

func TestGenerateSinglePoint(t *testing.T) {
	if _, err := Generate(100, 100, 1, rand.New(rand.NewSource(3))); err != nil {
		t.Errorf("Expected single control point to succeed, got %v", err)
	}
}

func TestGenerateRejectsInvalidBounds(t *testing.T) {
	tests := []struct {
		name                  string
		width, height, points int
	}{
		{"too narrow", 2, 100, 5},
		{"too wide", 65536, 100, 5},
		{"zero height", 100, 0, 5},
		{"no points", 100, 100, 0},
	}
	for _, tt := range tests {
		_, err := Generate(tt.width, tt.height, tt.points, nil)
		if !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("%s: expected ErrInvalidBounds, got %v", tt.name, err)
		}
	}
}

func TestMustGeneratePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for invalid bounds")
		}
	}()
	MustGenerate(1, 1, 1, nil)
}

func TestNewValidates(t *testing.T) {
	if _, err := New([]float64{1, 2}, 10); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("Expected ErrInvalidBounds for short heightmap, got %v", err)
	}
	tr, err := New([]float64{1, 2, 3}, 10)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tr.Width() != 3 {
		t.Errorf("Expected width 3, got %d", tr.Width())
	}
}
