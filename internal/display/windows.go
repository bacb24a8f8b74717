//go:build cgo && !nogocv

package display

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// Windows shows the annotated feed, the processed view and a control panel
// with six threshold sliders.
//
// The sliders write straight into the ThresholdBounds passed to OpenWindows,
// during WaitKey on the loop's own goroutine. New positions therefore apply
// from the next processed frame, and the bounds must stay at a fixed address
// while the windows are open.
type Windows struct {
	camera    *gocv.Window
	processed *gocv.Window
	control   *gocv.Window
}

// OpenWindows creates the three windows and binds the sliders to bounds.
func OpenWindows(bounds *imaging.ThresholdBounds) (*Windows, error) {
	control := gocv.NewWindow(ControlWindow)
	control.MoveWindow(780, 20)

	sliders := []struct {
		name  string
		value *int
		max   int
	}{
		{"LowH", &bounds.LowH, imaging.MaxHue},
		{"HighH", &bounds.HighH, imaging.MaxHue},
		{"LowS", &bounds.LowS, imaging.MaxSaturation},
		{"HighS", &bounds.HighS, imaging.MaxSaturation},
		{"LowV", &bounds.LowV, imaging.MaxValue},
		{"HighV", &bounds.HighV, imaging.MaxValue},
	}
	for _, s := range sliders {
		control.CreateTrackbarWithValue(s.name, s.value, s.max)
	}

	camera := gocv.NewWindow(CameraWindow)
	camera.MoveWindow(20, 20)
	processed := gocv.NewWindow(ProcessedWindow)
	processed.MoveWindow(400, 20)

	return &Windows{camera: camera, processed: processed, control: control}, nil
}

// Show pushes the annotated frame and the mask view to their windows.
func (w *Windows) Show(res *pipeline.Result) error {
	frame, err := gocv.ImageToMatRGB(res.Annotated)
	if err != nil {
		return fmt.Errorf("display: convert annotated frame: %w", err)
	}
	defer frame.Close()

	view, err := gocv.ImageToMatRGB(res.MaskView)
	if err != nil {
		return fmt.Errorf("display: convert mask view: %w", err)
	}
	defer view.Close()

	w.camera.IMShow(frame)
	w.processed.IMShow(view)
	return nil
}

// PollKey runs the window event loop for up to wait and returns the pressed
// key, or NoKey.
func (w *Windows) PollKey(wait time.Duration) int {
	ms := int(wait.Milliseconds())
	if ms <= 0 {
		ms = 1
	}
	return w.camera.WaitKey(ms)
}

// Close destroys all three windows.
func (w *Windows) Close() error {
	var firstErr error
	for _, win := range []*gocv.Window{w.camera, w.processed, w.control} {
		if err := win.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
