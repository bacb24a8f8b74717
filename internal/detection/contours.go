package detection

import "image"

// Contour is a closed polyline around a connected region of a mask, listed
// in traversal order. Consecutive points are joined by straight runs.
type Contour []image.Point

// Hierarchy links one contour to its neighbours in the nesting tree. Each
// entry is a contour index or -1 when the relation does not exist.
type Hierarchy [4]int

// Indices into a Hierarchy.
const (
	HierNext       = 0 // next contour with the same parent
	HierPrev       = 1 // previous contour with the same parent
	HierFirstChild = 2 // first nested contour
	HierParent     = 3 // enclosing contour
)

// Next returns the index of the next sibling, or -1.
func (h Hierarchy) Next() int { return h[HierNext] }

// Prev returns the index of the previous sibling, or -1.
func (h Hierarchy) Prev() int { return h[HierPrev] }

// FirstChild returns the index of the first nested contour, or -1.
func (h Hierarchy) FirstChild() int { return h[HierFirstChild] }

// Parent returns the index of the enclosing contour, or -1.
func (h Hierarchy) Parent() int { return h[HierParent] }

// neighbour directions, counterclockwise on screen starting east (y grows down).
var directions = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

const (
	dirEast = 0
	dirWest = 4
)

// FindContours extracts every border of the non-zero regions of mask,
// including the borders of holes, together with their nesting tree.
//
// # Algorithm
//
// This is the Suzuki-Abe topological border following:
//
//  1. The mask is copied into a label grid surrounded by a one-pixel zero
//     frame, so regions touching the image edge still have closed borders.
//  2. A raster scan finds border starting points: a set pixel with an unset
//     west neighbour starts an outer border, a set pixel with an unset east
//     neighbour starts a hole border.
//  3. Each new border is followed 8-connected and its pixels are labelled
//     with the border's sequence number, which later decides nesting.
//  4. The parent of a new border follows from the type of the last border
//     crossed on the current row (outer/hole) and its own type.
//
// Points are compressed the simple-chain way: inside a run of equal moves
// (horizontal, vertical or diagonal) only the endpoints are kept. An isolated
// pixel yields a one-point contour.
//
// Contours are returned in discovery order; hierarchy[i] belongs to
// contours[i]. Top-level contours have parent -1 and are siblings of each
// other.
func FindContours(mask *image.Gray) ([]Contour, []Hierarchy) {
	b := mask.Bounds()
	w, h := b.Dx()+2, b.Dy()+2
	labels := make([]int32, w*h)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.Pix[mask.PixOffset(b.Min.X+x, b.Min.Y+y)] != 0 {
				labels[(y+1)*w+x+1] = 1
			}
		}
	}

	type border struct {
		hole   bool
		parent int // sequence number of the enclosing border
		index  int // contour index, -1 for the frame
	}
	// Sequence number 1 is the frame, which behaves like a hole.
	borders := []border{{}, {hole: true, index: -1}}
	nbd := int32(1)

	var contours []Contour
	var parents []int

	for i := 1; i < h-1; i++ {
		lnbd := int32(1)
		for j := 1; j < w-1; j++ {
			p := i*w + j
			v := labels[p]
			if v == 0 {
				continue
			}

			var hole bool
			var from int
			switch {
			case v == 1 && labels[p-1] == 0:
				from = dirWest
			case v >= 1 && labels[p+1] == 0:
				hole = true
				from = dirEast
				if v > 1 {
					lnbd = v
				}
			default:
				if v != 1 {
					lnbd = abs32(v)
				}
				continue
			}

			nbd++
			last := borders[lnbd]
			parent := int(lnbd)
			if hole == last.hole {
				parent = last.parent
			}
			borders = append(borders, border{hole: hole, parent: parent, index: len(contours)})

			raw := followBorder(labels, w, p, from, nbd)
			contour := make(Contour, len(raw))
			for k, q := range raw {
				contour[k] = image.Pt(q%w-1+b.Min.X, q/w-1+b.Min.Y)
			}
			contours = append(contours, contour)
			parents = append(parents, borders[parent].index)

			if labels[p] != 1 {
				lnbd = abs32(labels[p])
			}
		}
	}

	return contours, buildHierarchy(parents)
}

// followBorder traces one border starting at pixel start, whose unset
// neighbour lies in direction from. Pixels are labelled with nbd (or -nbd
// when their east neighbour is background) and the simple-chain compressed
// list of grid offsets is returned.
func followBorder(labels []int32, w, start, from int, nbd int32) []int {
	var offsets [8]int
	for d, dir := range directions {
		offsets[d] = dir.Y*w + dir.X
	}

	// Look clockwise for the first set neighbour.
	first := -1
	for k := 0; k < 8; k++ {
		d := (from - k + 8) % 8
		if labels[start+offsets[d]] != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		labels[start] = -nbd
		return []int{start}
	}

	p1 := start + offsets[first]
	cur := start
	back := first // direction from cur to the previous border pixel

	var pts []int
	var moves []int
	for {
		next := -1
		eastZero := false
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			if labels[cur+offsets[d]] != 0 {
				next = d
				break
			}
			if d == dirEast {
				eastZero = true
			}
		}

		if eastZero {
			labels[cur] = -nbd
		} else if labels[cur] == 1 {
			labels[cur] = nbd
		}
		pts = append(pts, cur)
		moves = append(moves, next)

		nxt := cur + offsets[next]
		if nxt == start && cur == p1 {
			break
		}
		back = (next + 4) % 8
		cur = nxt
	}

	return compressChain(pts, moves)
}

// compressChain keeps only the points where the move direction changes.
// moves[k] is the move leaving pts[k]; the chain is closed.
func compressChain(pts, moves []int) []int {
	n := len(pts)
	if n <= 1 {
		return pts
	}
	out := make([]int, 0, n)
	for k := 0; k < n; k++ {
		if moves[k] != moves[(k-1+n)%n] {
			out = append(out, pts[k])
		}
	}
	if len(out) == 0 {
		out = append(out, pts[0])
	}
	return out
}

// buildHierarchy turns per-contour parent indices into linked sibling and
// child relations, in discovery order.
func buildHierarchy(parents []int) []Hierarchy {
	hier := make([]Hierarchy, len(parents))
	lastChild := make(map[int]int, len(parents))

	for k, parent := range parents {
		hier[k] = Hierarchy{-1, -1, -1, parent}
		if prev, ok := lastChild[parent]; ok {
			hier[prev][HierNext] = k
			hier[k][HierPrev] = prev
		} else if parent >= 0 {
			hier[parent][HierFirstChild] = k
		}
		lastChild[parent] = k
	}
	return hier
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
