//go:build cgo && !nogocv

package capture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Camera reads frames from a video device through OpenCV.
type Camera struct {
	device int
	dev    *gocv.VideoCapture
	frame  gocv.Mat
	size   image.Point
}

// OpenCamera opens a video device and requests a frame size.
//
// The driver may negotiate a different size; the actual one is read back and
// exposed through Size without further checks.
func OpenCamera(device, width, height int) (*Camera, error) {
	dev, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrCameraUnavailable, device, err)
	}
	if !dev.IsOpened() {
		dev.Close()
		return nil, fmt.Errorf("%w: device %d not opened", ErrCameraUnavailable, device)
	}

	if width > 0 && height > 0 {
		dev.Set(gocv.VideoCaptureFrameWidth, float64(width))
		dev.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	size := image.Pt(
		int(dev.Get(gocv.VideoCaptureFrameWidth)),
		int(dev.Get(gocv.VideoCaptureFrameHeight)),
	)

	return &Camera{
		device: device,
		dev:    dev,
		frame:  gocv.NewMat(),
		size:   size,
	}, nil
}

// Read grabs the next frame. The returned image is a fresh copy; the
// underlying buffer is reused between calls.
func (c *Camera) Read() (image.Image, error) {
	if ok := c.dev.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, ErrEmptyFrame
	}
	img, err := c.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyFrame, err)
	}
	return img, nil
}

// Size reports the negotiated frame size.
func (c *Camera) Size() image.Point {
	return c.size
}

// Close releases the frame buffer and the device.
func (c *Camera) Close() error {
	c.frame.Close()
	return c.dev.Close()
}
