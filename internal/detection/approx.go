package detection

import (
	"image"
	"math"
)

// ApproxPolyDP simplifies a polyline with the Douglas-Peucker algorithm.
//
// Points closer than epsilon pixels to the simplified shape are dropped. When
// closed is true the input is treated as a closed curve: it is split at two
// approximately farthest points and each half is simplified separately, so
// the result does not depend on where the traversal happened to start.
//
// Inputs with fewer than three points are returned as a copy. A closed curve
// whose points all lie within epsilon of each other collapses to one point.
func ApproxPolyDP(pts []image.Point, epsilon float64, closed bool) []image.Point {
	n := len(pts)
	if n < 3 {
		return append([]image.Point(nil), pts...)
	}
	if epsilon < 0 {
		epsilon = 0
	}

	if !closed {
		keep := make([]bool, n)
		keep[0], keep[n-1] = true, true
		simplify(pts, 0, n-1, epsilon, keep)
		return collect(pts, keep)
	}

	// Pick a well separated pair: the farthest point from the farthest point
	// of pts[0].
	a := farthestFrom(pts, farthestFrom(pts, 0))
	b := farthestFrom(pts, a)
	if sqDist(pts[a], pts[b]) <= epsilon*epsilon {
		return []image.Point{pts[a]}
	}

	// Rotate so the curve starts at a and close it back onto a.
	ring := make([]image.Point, 0, n+1)
	ring = append(ring, pts[a:]...)
	ring = append(ring, pts[:a]...)
	ring = append(ring, pts[a])
	mid := (b - a + n) % n

	keep := make([]bool, len(ring))
	keep[0], keep[mid] = true, true
	simplify(ring, 0, mid, epsilon, keep)
	simplify(ring, mid, n, epsilon, keep)

	// The closing copy of a is dropped.
	return collect(ring[:n], keep[:n])
}

// simplify marks the points of pts[first..last] that must be kept.
func simplify(pts []image.Point, first, last int, epsilon float64, keep []bool) {
	type span struct{ first, last int }
	stack := []span{{first, last}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.last-s.first < 2 {
			continue
		}

		maxDist := -1.0
		index := -1
		for i := s.first + 1; i < s.last; i++ {
			d := lineDistance(pts[i], pts[s.first], pts[s.last])
			if d > maxDist {
				maxDist = d
				index = i
			}
		}

		if maxDist > epsilon {
			keep[index] = true
			stack = append(stack, span{s.first, index}, span{index, s.last})
		}
	}
}

// lineDistance is the distance from p to the infinite line through a and b,
// or to a itself when a and b coincide.
func lineDistance(p, a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	cross := dx*float64(p.Y-a.Y) - dy*float64(p.X-a.X)
	return math.Abs(cross) / length
}

func farthestFrom(pts []image.Point, from int) int {
	best, bestDist := from, -1.0
	for i, p := range pts {
		if d := sqDist(p, pts[from]); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(p, q image.Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return dx*dx + dy*dy
}

func collect(pts []image.Point, keep []bool) []image.Point {
	out := make([]image.Point, 0, len(pts))
	for i, p := range pts {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
