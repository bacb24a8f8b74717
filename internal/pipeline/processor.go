package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/hsv-detect/internal/detection"
	"github.com/ironsheep/hsv-detect/internal/imaging"
)

var (
	// ErrEmptyFrame is returned when Process receives a nil or zero-size frame.
	ErrEmptyFrame = errors.New("pipeline: empty frame")

	// ErrNoBounds is returned when Process receives nil threshold bounds.
	ErrNoBounds = errors.New("pipeline: nil threshold bounds")
)

// Fixed annotation colors.
var (
	RectColor   = color.RGBA{R: 0, G: 255, B: 200, A: 255}
	CircleColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	MarkColor   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Options tunes the per-contour stage of the processor.
type Options struct {
	// Epsilon is the Douglas-Peucker tolerance in pixels.
	Epsilon float64 `yaml:"epsilon"`

	// LabelRadius is the enclosing-circle radius a contour must exceed
	// (after truncation to whole pixels) to get coordinate labels.
	LabelRadius int `yaml:"label_radius"`

	// CrossHalf is the half-length of the center cross.
	CrossHalf int `yaml:"cross_half"`

	// LabelOffset is how far above the bounding box corner the "x=" label
	// sits.
	LabelOffset int `yaml:"label_offset"`

	// BlurSize is the box filter size applied before contour extraction.
	BlurSize int `yaml:"blur_size"`
}

// DefaultOptions returns the standard detector settings.
func DefaultOptions() Options {
	return Options{
		Epsilon:     3,
		LabelRadius: 20,
		CrossHalf:   5,
		LabelOffset: 12,
		BlurSize:    5,
	}
}

// Labeled reports whether a contour with the given enclosing radius gets
// coordinate labels: the radius truncated to whole pixels must exceed
// threshold.
func Labeled(radius float64, threshold int) bool {
	return int(radius) > threshold
}

// Object is one contour found in a frame together with its measurements.
type Object struct {
	detection.Summary

	// Index is the contour's position in Result.Contours.
	Index int `json:"index"`

	// Outline is the color the contour was drawn with on the mask view.
	Outline color.RGBA `json:"-"`

	// Labeled is true when coordinate text was drawn for this object.
	Labeled bool `json:"labeled"`
}

// Result holds everything produced for one frame.
type Result struct {
	// Annotated is a copy of the input frame with rectangles, circles,
	// crosses and labels drawn on it.
	Annotated *image.NRGBA

	// MaskView is the cleaned mask as a three-channel image with every
	// contour outline drawn in its own color.
	MaskView *image.NRGBA

	// Mask is the cleaned binary mask (before blurring).
	Mask *image.Gray

	// Contours and Hierarchy are the raw extraction output.
	Contours  []detection.Contour
	Hierarchy []detection.Hierarchy

	// Objects has one entry per contour, in the same order.
	Objects []Object
}

// Labeled returns the objects that received coordinate labels.
func (r *Result) Labeled() []Object {
	var out []Object
	for _, o := range r.Objects {
		if o.Labeled {
			out = append(out, o)
		}
	}
	return out
}

// Processor runs the per-frame detection pipeline.
//
// A Processor is a function of (frame, bounds) apart from its ColorSequence,
// which advances once per contour. It is meant to be driven from a single
// goroutine.
type Processor struct {
	opts   Options
	colors ColorSequence
}

// NewProcessor creates a processor. A nil colors uses an RNGColors seeded
// with DefaultSeed. Zero-valued option fields fall back to DefaultOptions.
func NewProcessor(opts Options, colors ColorSequence) *Processor {
	def := DefaultOptions()
	if opts.Epsilon <= 0 {
		opts.Epsilon = def.Epsilon
	}
	if opts.LabelRadius <= 0 {
		opts.LabelRadius = def.LabelRadius
	}
	if opts.CrossHalf <= 0 {
		opts.CrossHalf = def.CrossHalf
	}
	if opts.LabelOffset <= 0 {
		opts.LabelOffset = def.LabelOffset
	}
	if opts.BlurSize <= 0 {
		opts.BlurSize = def.BlurSize
	}
	if colors == nil {
		colors = NewRNGColors(DefaultSeed)
	}
	return &Processor{opts: opts, colors: colors}
}

// Options returns the effective settings.
func (p *Processor) Options() Options {
	return p.opts
}

// Process runs segmentation, cleanup, contour extraction and annotation on
// one frame. The frame is not modified.
//
// # Stages
//
//  1. Segmentation: HSV conversion and inclusive range test against bounds.
//  2. Cleanup: erode, dilate, dilate, erode with a 3x3 ellipse.
//  3. Smoothing: box blur of the cleaned mask.
//  4. Contours: every border of the blurred mask's non-zero pixels, with
//     nesting.
//  5. Per contour: simplify, bounding box, enclosing circle, then draw the
//     outline on the mask view and the box, circle, cross and (for large
//     objects) "x=" / "y=" labels on the frame copy.
//
// An empty mask or a frame with no contours is a normal result.
func (p *Processor) Process(frame image.Image, bounds *imaging.ThresholdBounds) (*Result, error) {
	if frame == nil || frame.Bounds().Empty() {
		return nil, ErrEmptyFrame
	}
	if bounds == nil {
		return nil, ErrNoBounds
	}

	mask := imaging.Cleanup(imaging.InRange(frame, *bounds))
	view := imaging.Clone(mask)
	contours, hierarchy := detection.FindContours(imaging.BoxBlur(mask, p.opts.BlurSize))
	out := imaging.Clone(frame)

	// Clone rebases to a zero origin; shift drawing when the frame is a
	// sub-image.
	shift := frame.Bounds().Min

	objects := make([]Object, len(contours))
	for i, c := range contours {
		s := detection.Summarize(c, p.opts.Epsilon)
		outline := p.colors.Next()
		imaging.Polyline(view, translate(c, shift), true, outline)

		objects[i] = Object{
			Summary: s,
			Index:   i,
			Outline: outline,
			Labeled: p.annotate(out, s, shift),
		}
	}

	return &Result{
		Annotated: out,
		MaskView:  view,
		Mask:      mask,
		Contours:  contours,
		Hierarchy: hierarchy,
		Objects:   objects,
	}, nil
}

// annotate draws one summary on the frame copy and reports whether labels
// were added.
func (p *Processor) annotate(out *image.NRGBA, s detection.Summary, shift image.Point) bool {
	rect := s.Rect.Sub(shift)
	center := s.Center.Round().Sub(shift)

	imaging.Rectangle(out, rect, RectColor)
	imaging.Circle(out, center, int(s.Radius), CircleColor)
	imaging.Cross(out, center, p.opts.CrossHalf, MarkColor)

	if !Labeled(s.Radius, p.opts.LabelRadius) {
		return false
	}
	pos := s.Center.Trunc()
	br := rect.Max
	imaging.PutText(out, fmt.Sprintf("x=%d", pos.X), image.Pt(br.X, br.Y-p.opts.LabelOffset), MarkColor)
	imaging.PutText(out, fmt.Sprintf("y=%d", pos.Y), br, MarkColor)
	return true
}

func translate(pts []image.Point, shift image.Point) []image.Point {
	if shift == (image.Point{}) {
		return pts
	}
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Sub(shift)
	}
	return out
}
