// Package imaging provides the pixel-level operations behind the HSV object
// detector.
//
// It covers color-space conversion and thresholding, morphological cleanup,
// box blurring, drawing primitives for annotation, and loading or saving
// still images. Everything works on standard Go image types; masks are
// *image.Gray with 255 for set pixels and 0 otherwise.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # HSV Scale
//
// HSV values use the 8-bit convention common to computer-vision tooling:
//   - H: 0-179 (degrees / 2)
//   - S: 0-255
//   - V: 0-255
//
// ThresholdBounds are inclusive on both ends. Inverted bounds (Low > High) are
// accepted and produce an empty mask.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are stateless
// and allocate their outputs; drawing functions mutate only the destination
// image passed to them.
package imaging
