package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Slider limits for the threshold bounds. Hue uses the 8-bit half-degree scale
// (0-179); saturation and value use the full 8-bit range.
const (
	MaxHue        = 179
	MaxSaturation = 255
	MaxValue      = 255
)

// HSVColor is a color in 8-bit HSV space.
//
// The scale matches the common computer-vision convention for 8-bit images:
//   - H: 0-179 (degrees divided by two)
//   - S: 0-255
//   - V: 0-255
type HSVColor struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

// ThresholdBounds holds the six inclusive HSV limits used to build a mask.
//
// The struct is plain data and is read once per frame. Nothing here enforces
// Low <= High; an inverted pair simply matches no pixel.
type ThresholdBounds struct {
	LowH  int `json:"low_h" yaml:"low_h"`
	HighH int `json:"high_h" yaml:"high_h"`
	LowS  int `json:"low_s" yaml:"low_s"`
	HighS int `json:"high_s" yaml:"high_s"`
	LowV  int `json:"low_v" yaml:"low_v"`
	HighV int `json:"high_v" yaml:"high_v"`
}

// Contains reports whether c lies inside the bounds on all three channels.
func (b ThresholdBounds) Contains(c HSVColor) bool {
	return c.H >= b.LowH && c.H <= b.HighH &&
		c.S >= b.LowS && c.S <= b.HighS &&
		c.V >= b.LowV && c.V <= b.HighV
}

// Validate checks every bound against its slider range.
// Ordering between Low and High is deliberately not checked.
func (b ThresholdBounds) Validate() error {
	checks := []struct {
		name string
		val  int
		max  int
	}{
		{"low_h", b.LowH, MaxHue},
		{"high_h", b.HighH, MaxHue},
		{"low_s", b.LowS, MaxSaturation},
		{"high_s", b.HighS, MaxSaturation},
		{"low_v", b.LowV, MaxValue},
		{"high_v", b.HighV, MaxValue},
	}
	for _, c := range checks {
		if c.val < 0 || c.val > c.max {
			return fmt.Errorf("%s=%d outside range 0-%d", c.name, c.val, c.max)
		}
	}
	return nil
}

// String renders the bounds the way they are shown next to the sliders.
func (b ThresholdBounds) String() string {
	return fmt.Sprintf("H[%d,%d] S[%d,%d] V[%d,%d]", b.LowH, b.HighH, b.LowS, b.HighS, b.LowV, b.HighV)
}

// ToHSV converts 8-bit RGB components to 8-bit HSV.
//
// Hue is computed in degrees by go-colorful, halved and rounded; a rounded
// value of 180 wraps to 0 so H stays within 0-179. Saturation and value are
// scaled to 0-255 and rounded.
func ToHSV(r, g, b uint8) HSVColor {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, v := c.Hsv()

	hue := int(math.Round(h / 2))
	if hue >= 180 {
		hue -= 180
	}
	return HSVColor{
		H: hue,
		S: int(math.Round(s * 255)),
		V: int(math.Round(v * 255)),
	}
}

// rgb8 reads a pixel as 8-bit RGB, with fast paths for the concrete types
// produced by camera decoding and by disintegration/imaging.
func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	switch src := img.(type) {
	case *image.RGBA:
		i := src.PixOffset(x, y)
		return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
	case *image.NRGBA:
		i := src.PixOffset(x, y)
		return src.Pix[i], src.Pix[i+1], src.Pix[i+2]
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

// InRange thresholds an image in HSV space.
//
// The returned mask has the same bounds as img. A pixel is 255 when its HSV
// value lies within bounds on every channel (inclusive), and 0 otherwise.
func InRange(img image.Image, bounds ThresholdBounds) *image.Gray {
	rect := img.Bounds()
	mask := image.NewGray(rect)

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b := rgb8(img, x, y)
			if bounds.Contains(ToHSV(r, g, b)) {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

// HSVSample describes one sampled pixel in both RGB and HSV.
type HSVSample struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	RGB RGBColor `json:"rgb"`
	HSV HSVColor `json:"hsv"`
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// SampleHSV reads the pixel at (x, y) and reports it in RGB and HSV.
//
// It is meant for calibrating threshold bounds against a reference image.
// Coordinates outside the image bounds return an error.
func SampleHSV(img image.Image, x, y int) (*HSVSample, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b := rgb8(img, x, y)
	return &HSVSample{
		X:   x,
		Y:   y,
		RGB: RGBColor{R: r, G: g, B: b},
		HSV: ToHSV(r, g, b),
	}, nil
}

// Coverage returns the percentage (0-100) of non-zero pixels in a mask.
func Coverage(mask *image.Gray) float64 {
	total := len(mask.Pix)
	if total == 0 {
		return 0
	}
	set := 0
	for _, v := range mask.Pix {
		if v != 0 {
			set++
		}
	}
	return math.Round(float64(set)/float64(total)*10000) / 100
}
