//go:build !cgo || nogocv

package display

import (
	"time"

	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// Windows is unavailable in builds without OpenCV.
type Windows struct{}

// OpenWindows always fails with ErrNoGUI.
func OpenWindows(bounds *imaging.ThresholdBounds) (*Windows, error) {
	return nil, ErrNoGUI
}

// Show does nothing.
func (w *Windows) Show(res *pipeline.Result) error { return ErrNoGUI }

// PollKey reports no key.
func (w *Windows) PollKey(wait time.Duration) int { return NoKey }

// Close does nothing.
func (w *Windows) Close() error { return nil }
