// Package capture provides the frame sources feeding the detector: a camera
// opened through OpenCV and a still image replayed from disk.
package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/hsv-detect/internal/imaging"
)

var (
	// ErrCameraUnavailable is returned when a source cannot be opened.
	ErrCameraUnavailable = errors.New("capture: camera unavailable")

	// ErrEmptyFrame is returned when a read fails or yields an empty frame.
	ErrEmptyFrame = errors.New("capture: unable to read frame")
)

// FrameSource produces frames for the detection loop.
//
// Read blocks until the next frame is available. Both failure kinds are
// terminal for the loop; sources do not retry.
type FrameSource interface {
	Read() (image.Image, error)

	// Size reports the negotiated frame size, which may differ from the
	// requested one.
	Size() image.Point

	Close() error
}

// StillSource replays one image file as an endless stream of identical
// frames. The decoded image is cached, so each Read costs no disk I/O.
type StillSource struct {
	cache  *imaging.ImageCache
	path   string
	width  int
	height int
	size   image.Point
}

// OpenStill loads path and fits it to width x height (0 keeps the file's own
// size). A missing or undecodable file reports ErrCameraUnavailable, the same
// way a missing camera would.
func OpenStill(cache *imaging.ImageCache, path string, width, height int) (*StillSource, error) {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	img, err := imaging.LoadFrame(cache, path, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCameraUnavailable, path, err)
	}
	return &StillSource{
		cache:  cache,
		path:   path,
		width:  width,
		height: height,
		size:   img.Bounds().Size(),
	}, nil
}

// Read returns the still frame.
func (s *StillSource) Read() (image.Image, error) {
	img, err := imaging.LoadFrame(s.cache, s.path, s.width, s.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyFrame, err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyFrame
	}
	return img, nil
}

// Size reports the frame size after fitting.
func (s *StillSource) Size() image.Point {
	return s.size
}

// Close evicts the image from the cache.
func (s *StillSource) Close() error {
	s.cache.Evict(s.path)
	return nil
}
