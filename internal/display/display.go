// Package display presents detector results: either in OpenCV windows with
// live threshold sliders, or headless by writing PNG snapshots.
package display

import (
	"errors"
	"time"

	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// NoKey is returned by PollKey when no key was pressed.
const NoKey = -1

// KeyEscape is the default quit key.
const KeyEscape = 27

// Window titles.
const (
	CameraWindow    = "camera"
	ProcessedWindow = "processed"
	ControlWindow   = "control"
)

// ErrNoGUI is returned by OpenWindows when the binary was built without
// OpenCV support.
var ErrNoGUI = errors.New("display: built without OpenCV window support")

// Display shows one frame's results and reports key presses.
//
// PollKey waits up to wait for a key and returns its code, or NoKey. The
// detection loop calls it once per frame, so it also sets the loop's pace.
type Display interface {
	Show(res *pipeline.Result) error
	PollKey(wait time.Duration) int
	Close() error
}
