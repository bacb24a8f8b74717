package detection

import (
	"image"
	"math"
)

// Vec2 is a point with sub-pixel precision.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Round returns the nearest integer pixel.
func (v Vec2) Round() image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}

// Trunc drops the fractional part of both coordinates.
func (v Vec2) Trunc() image.Point {
	return image.Pt(int(v.X), int(v.Y))
}

// Summary is the geometric description of one contour.
//
// All fields are derived from the simplified polygon rather than the raw
// contour, so every contour in a frame is measured after the same smoothing.
type Summary struct {
	// Polygon is the contour after Douglas-Peucker simplification.
	Polygon []image.Point `json:"polygon"`

	// Rect is the axis-aligned bounding box of Polygon. Max is exclusive:
	// the right-most polygon pixel has X == Rect.Max.X-1.
	Rect image.Rectangle `json:"rect"`

	// Center and Radius describe the minimal enclosing circle of Polygon.
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
}

// Summarize simplifies contour with the given tolerance and measures the
// result.
func Summarize(contour Contour, epsilon float64) Summary {
	poly := ApproxPolyDP(contour, epsilon, true)
	center, radius := MinEnclosingCircle(poly)
	return Summary{
		Polygon: poly,
		Rect:    BoundingRect(poly),
		Center:  center,
		Radius:  radius,
	}
}

// BoundingRect returns the smallest axis-aligned rectangle containing every
// point, with an exclusive Max corner. An empty input returns the zero
// rectangle.
func BoundingRect(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// MinEnclosingCircle returns the smallest circle containing every point.
//
// It uses Welzl's incremental construction: whenever a point falls outside
// the current circle, the circle is rebuilt with that point on its boundary,
// then with two and finally three boundary points. The expected cost is
// linear for typical contours. An empty input returns a zero circle; a single
// point returns radius 0.
func MinEnclosingCircle(pts []image.Point) (Vec2, float64) {
	if len(pts) == 0 {
		return Vec2{}, 0
	}

	v := make([]Vec2, len(pts))
	for i, p := range pts {
		v[i] = Vec2{X: float64(p.X), Y: float64(p.Y)}
	}

	c := circle{center: v[0]}
	for i := 1; i < len(v); i++ {
		if c.contains(v[i]) {
			continue
		}
		c = circle{center: v[i]}
		for j := 0; j < i; j++ {
			if c.contains(v[j]) {
				continue
			}
			c = circleFrom2(v[i], v[j])
			for k := 0; k < j; k++ {
				if !c.contains(v[k]) {
					c = circleFrom3(v[i], v[j], v[k])
				}
			}
		}
	}
	return c.center, c.radius
}

type circle struct {
	center Vec2
	radius float64
}

const circleTolerance = 1e-7

func (c circle) contains(p Vec2) bool {
	return math.Hypot(p.X-c.center.X, p.Y-c.center.Y) <= c.radius*(1+circleTolerance)+circleTolerance
}

func circleFrom2(a, b Vec2) circle {
	center := Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return circle{center: center, radius: math.Hypot(a.X-center.X, a.Y-center.Y)}
}

// circleFrom3 returns the circumcircle of a, b and c. Collinear points fall
// back to the circle spanning the two farthest apart.
func circleFrom3(a, b, c Vec2) circle {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		best := circleFrom2(a, b)
		for _, cand := range []circle{circleFrom2(a, c), circleFrom2(b, c)} {
			if cand.radius > best.radius {
				best = cand
			}
		}
		return best
	}

	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return circle{
		center: Vec2{X: a.X + ux, Y: a.Y + uy},
		radius: math.Hypot(ux, uy),
	}
}
