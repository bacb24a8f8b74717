package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// BoxBlur smooths a mask with a normalized size x size box filter.
//
// The filter runs through bild, which extends edge pixels past the border.
// The result is returned as a single-channel image with the same bounds as
// mask. Even sizes are rounded up to the next odd size.
func BoxBlur(mask *image.Gray, size int) *image.Gray {
	if size <= 1 {
		out := image.NewGray(mask.Bounds())
		copy(out.Pix, mask.Pix)
		return out
	}

	radius := float64(size / 2)
	blurred := blur.Box(mask, radius)

	b := mask.Bounds()
	out := image.NewGray(b)
	bb := blurred.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// bild returns a zero-origin RGBA; gray input keeps R == G == B.
			out.Pix[out.PixOffset(b.Min.X+x, b.Min.Y+y)] = blurred.Pix[blurred.PixOffset(bb.Min.X+x, bb.Min.Y+y)]
		}
	}
	return out
}
