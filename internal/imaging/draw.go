package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Drawing primitives for annotating frames.
//
// All primitives draw one pixel wide, 8-connected strokes and clip silently
// against the destination bounds, so shapes that extend past the frame (or
// degenerate shapes with zero size) are never an error.

// setPixel writes c at (x, y) when the point lies inside img.
func setPixel(img draw.Image, x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// Line draws a straight segment from p0 to p1 inclusive using Bresenham's
// algorithm.
func Line(img draw.Image, p0, p1 image.Point, c color.Color) {
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx + dy

	x, y := p0.X, p0.Y
	for {
		setPixel(img, x, y, c)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Rectangle outlines the box whose opposite corners are r.Min and r.Max.
// Both corners are drawn, so the outline covers r.Max's row and column.
func Rectangle(img draw.Image, r image.Rectangle, c color.Color) {
	tl, br := r.Min, r.Max
	tr := image.Pt(br.X, tl.Y)
	bl := image.Pt(tl.X, br.Y)
	Line(img, tl, tr, c)
	Line(img, tr, br, c)
	Line(img, br, bl, c)
	Line(img, bl, tl, c)
}

// Circle outlines a circle with the midpoint algorithm. A zero radius draws
// the center pixel only; negative radii draw nothing.
func Circle(img draw.Image, center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		for _, p := range [8]image.Point{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			setPixel(img, center.X+p.X, center.Y+p.Y, c)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// Cross draws a horizontal and a vertical segment of the given half-length
// centered on center.
func Cross(img draw.Image, center image.Point, half int, c color.Color) {
	Line(img, image.Pt(center.X-half, center.Y), image.Pt(center.X+half, center.Y), c)
	Line(img, image.Pt(center.X, center.Y-half), image.Pt(center.X, center.Y+half), c)
}

// Polyline joins consecutive points with lines. When closed is true the last
// point is joined back to the first. A single point is drawn as a pixel.
func Polyline(img draw.Image, pts []image.Point, closed bool, c color.Color) {
	switch len(pts) {
	case 0:
		return
	case 1:
		setPixel(img, pts[0].X, pts[0].Y, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		Line(img, pts[i-1], pts[i], c)
	}
	if closed {
		Line(img, pts[len(pts)-1], pts[0], c)
	}
}

// LabelFace is the fixed small font used for coordinate labels.
var LabelFace font.Face = basicfont.Face7x13

// PutText renders text with its baseline starting at org (the bottom-left of
// the text), in LabelFace.
func PutText(img draw.Image, text string, org image.Point, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: LabelFace,
		Dot:  fixed.P(org.X, org.Y),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
