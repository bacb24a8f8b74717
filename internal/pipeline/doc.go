// Package pipeline implements the per-frame HSV object detector.
//
// A Processor takes one frame and the current ThresholdBounds and returns a
// Result: an annotated copy of the frame, the cleaned mask, a mask view with
// contour outlines, and one Object (bounding box, enclosing circle,
// simplified polygon) per contour. Nothing is carried from one frame to the
// next except the outline ColorSequence, which is injectable so callers can
// pin colors independently of geometry.
package pipeline
