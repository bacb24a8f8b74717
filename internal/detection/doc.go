// Package detection turns a binary mask into contours and measures them.
//
// # Pipeline
//
//  1. FindContours: topological border following over the mask's non-zero
//     pixels, returning every outer and hole border with a nesting tree.
//  2. ApproxPolyDP: Douglas-Peucker simplification of each contour.
//  3. BoundingRect and MinEnclosingCircle on the simplified polygon.
//
// Summarize runs steps 2 and 3 for one contour.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Rectangles have an inclusive Min and exclusive Max corner
//
// # Hierarchy
//
// Each contour has a Hierarchy entry of four indices: next sibling, previous
// sibling, first child and parent, with -1 where the relation is absent. A
// filled blob produces one outer contour; every hole inside it produces a
// child contour, and blobs inside holes are children of the hole.
//
// # Limitations
//
// The algorithms are written for the small masks produced by a webcam at
// CIF resolution. MinEnclosingCircle uses the incremental Welzl
// construction without shuffling, which is quadratic or worse on adversarial
// input but fine for simplified contours of a few dozen points.
package detection
