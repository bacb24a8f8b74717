package pipeline

import (
	"image/color"
	"testing"
)

func TestRNGColors_Deterministic(t *testing.T) {
	a := NewRNGColors(DefaultSeed)
	b := NewRNGColors(DefaultSeed)

	for i := 0; i < 20; i++ {
		ca, cb := a.Next(), b.Next()
		if ca != cb {
			t.Fatalf("color %d: %v != %v", i, ca, cb)
		}
		if ca.A != 255 {
			t.Errorf("color %d not opaque: %v", i, ca)
		}
		if ca.R == 255 || ca.G == 255 || ca.B == 255 {
			t.Errorf("color %d component out of [0,255): %v", i, ca)
		}
	}
}

func TestRNGColors_SeedsDiffer(t *testing.T) {
	a := NewRNGColors(1)
	b := NewRNGColors(2)

	same := true
	for i := 0; i < 5; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced the same sequence")
	}
}

func TestRNGColors_ZeroSeed(t *testing.T) {
	r := NewRNGColors(0)
	zero := color.RGBA{A: 255}
	for i := 0; i < 5; i++ {
		if c := r.Next(); c != zero {
			return
		}
	}
	t.Error("zero seed should not get stuck at black")
}

func TestRNGColors_Advances(t *testing.T) {
	r := NewRNGColors(DefaultSeed)
	seen := map[color.RGBA]bool{}
	for i := 0; i < 10; i++ {
		seen[r.Next()] = true
	}
	if len(seen) < 9 {
		t.Errorf("only %d distinct colors out of 10", len(seen))
	}
}

func TestPalette(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	p := NewPalette(red, blue)

	want := []color.RGBA{red, blue, red, blue, red}
	for i, w := range want {
		if got := p.Next(); got != w {
			t.Errorf("Next #%d: got %v, want %v", i, got, w)
		}
	}
}

func TestPalette_Empty(t *testing.T) {
	p := NewPalette()
	white := color.RGBA{255, 255, 255, 255}
	for i := 0; i < 3; i++ {
		if got := p.Next(); got != white {
			t.Errorf("got %v, want white", got)
		}
	}
}
