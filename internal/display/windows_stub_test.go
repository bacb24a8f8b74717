//go:build !cgo || nogocv

package display

import (
	"errors"
	"testing"

	"github.com/ironsheep/hsv-detect/internal/imaging"
)

func TestOpenWindows_NoGUI(t *testing.T) {
	w, err := OpenWindows(&imaging.ThresholdBounds{HighH: 18, HighS: 255, HighV: 255})
	if !errors.Is(err, ErrNoGUI) {
		t.Errorf("got %v, want ErrNoGUI", err)
	}
	if w != nil {
		t.Error("windows should be nil")
	}
}
