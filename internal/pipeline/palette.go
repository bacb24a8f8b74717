package pipeline

import "image/color"

// ColorSequence hands out outline colors, one per drawn contour. The
// processor calls Next exactly once per contour, in contour order, and the
// sequence keeps advancing across frames.
type ColorSequence interface {
	Next() color.RGBA
}

// DefaultSeed is the seed of the default outline color generator.
const DefaultSeed = 12345

// rngCoefficient is the multiplier of the multiply-with-carry generator.
const rngCoefficient = 4164903690

// RNGColors is a seeded multiply-with-carry generator producing random
// outline colors. The same seed always yields the same color sequence, which
// keeps runs reproducible while neighbouring contours still get different
// colors.
//
// RNGColors is not safe for concurrent use.
type RNGColors struct {
	state uint64
}

// NewRNGColors creates a generator with the given seed. A zero seed is
// replaced by 0xffffffff, since the generator would otherwise stay at zero.
func NewRNGColors(seed uint64) *RNGColors {
	if seed == 0 {
		seed = 0xffffffff
	}
	return &RNGColors{state: seed}
}

func (r *RNGColors) next() uint32 {
	r.state = uint64(uint32(r.state))*rngCoefficient + r.state>>32
	return uint32(r.state)
}

// uniform returns an integer in [a, b).
func (r *RNGColors) uniform(a, b int) int {
	if a == b {
		return a
	}
	return int(r.next()%uint32(b-a)) + a
}

// Next draws blue, green and red components in that order, each in [0, 255).
func (r *RNGColors) Next() color.RGBA {
	b := uint8(r.uniform(0, 255))
	g := uint8(r.uniform(0, 255))
	red := uint8(r.uniform(0, 255))
	return color.RGBA{R: red, G: g, B: b, A: 255}
}

// Palette cycles through a fixed list of colors. It is useful when outline
// colors must be predictable, for instance in tests or documentation
// screenshots.
type Palette struct {
	colors []color.RGBA
	i      int
}

// NewPalette returns a Palette over colors. An empty palette yields white.
func NewPalette(colors ...color.RGBA) *Palette {
	return &Palette{colors: colors}
}

// Next returns the next palette color, wrapping around at the end.
func (p *Palette) Next() color.RGBA {
	if len(p.colors) == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	c := p.colors[p.i%len(p.colors)]
	p.i++
	return c
}
