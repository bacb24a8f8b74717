//go:build !cgo || nogocv

package capture

import (
	"errors"
	"testing"
)

func TestOpenCamera_Unavailable(t *testing.T) {
	cam, err := OpenCamera(0, 352, 288)
	if !errors.Is(err, ErrCameraUnavailable) {
		t.Errorf("got %v, want ErrCameraUnavailable", err)
	}
	if cam != nil {
		t.Error("camera should be nil")
	}
}
