package imaging

import (
	"image"
	"math"
)

// StructuringElement is a binary neighbourhood used by Erode and Dilate.
//
// Offsets are relative to the anchor at the element's center. Only offsets
// whose cell is set are stored.
type StructuringElement struct {
	Width   int
	Height  int
	Offsets []image.Point
}

// EllipseElement builds an elliptical structuring element of the given size.
//
// Rows are filled symmetrically around the center with a half-width derived
// from the ellipse equation. For size 3 the result is the plus shape:
//
//	0 1 0
//	1 1 1
//	0 1 0
func EllipseElement(size int) StructuringElement {
	if size < 1 {
		size = 1
	}
	r := size / 2
	c := size / 2
	el := StructuringElement{Width: size, Height: size}

	for i := 0; i < size; i++ {
		dy := i - r
		if r == 0 {
			el.Offsets = append(el.Offsets, image.Pt(0, 0))
			continue
		}
		dx := int(math.Round(float64(c) * math.Sqrt(float64(r*r-dy*dy)/float64(r*r))))
		j1 := max(c-dx, 0)
		j2 := min(c+dx+1, size)
		for j := j1; j < j2; j++ {
			el.Offsets = append(el.Offsets, image.Pt(j-c, dy))
		}
	}
	return el
}

// Erode replaces each pixel with the minimum over the element's neighbourhood.
// Neighbours outside the image are ignored, so the border never erodes inward
// on its own.
func Erode(src *image.Gray, el StructuringElement) *image.Gray {
	return morph(src, el, true)
}

// Dilate replaces each pixel with the maximum over the element's neighbourhood.
// Neighbours outside the image are ignored.
func Dilate(src *image.Gray, el StructuringElement) *image.Gray {
	return morph(src, el, false)
}

func morph(src *image.Gray, el StructuringElement, erode bool) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var acc uint8
			if erode {
				acc = 255
			}
			for _, off := range el.Offsets {
				px, py := x+off.X, y+off.Y
				if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
					continue
				}
				v := src.Pix[src.PixOffset(px, py)]
				if erode && v < acc {
					acc = v
				} else if !erode && v > acc {
					acc = v
				}
			}
			dst.Pix[dst.PixOffset(x, y)] = acc
		}
	}
	return dst
}

// Cleanup applies the fixed noise-removal sequence erode, dilate, dilate,
// erode with a 3x3 elliptical element. The first erode drops isolated specks
// before anything is grown back; the order is part of the mask's contract.
func Cleanup(mask *image.Gray) *image.Gray {
	el := EllipseElement(3)
	out := Erode(mask, el)
	out = Dilate(out, el)
	out = Dilate(out, el)
	return Erode(out, el)
}
