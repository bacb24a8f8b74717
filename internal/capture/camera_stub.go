//go:build !cgo || nogocv

package capture

import (
	"fmt"
	"image"
)

// Camera is unavailable in builds without OpenCV.
type Camera struct{}

// OpenCamera always fails with ErrCameraUnavailable when built without
// OpenCV support (CGO disabled or the nogocv tag set).
func OpenCamera(device, width, height int) (*Camera, error) {
	return nil, fmt.Errorf("%w: device %d: built without OpenCV support", ErrCameraUnavailable, device)
}

// Read always fails.
func (c *Camera) Read() (image.Image, error) { return nil, ErrEmptyFrame }

// Size reports a zero size.
func (c *Camera) Size() image.Point { return image.Point{} }

// Close does nothing.
func (c *Camera) Close() error { return nil }
