package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createStillImage writes an orange disc on blue as a PNG and returns its path.
func createStillImage(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			c := color.RGBA{0, 0, 255, 255}
			if dx, dy := x-60, y-45; dx*dx+dy*dy <= 20*20 {
				c = color.RGBA{255, 100, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "still.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv("HSV_DETECT_DEVICE", "")
	t.Setenv("HSV_DETECT_LOG_LEVEL", "error")

	still := createStillImage(t)
	out := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing image", []string{"-image", filepath.Join(t.TempDir(), "missing.png"), "-headless"}, exitFailure},
		{"frame limit reached", []string{"-image", still, "-frames", "3", "-headless", "-out", out}, 0},
		{"unknown flag", []string{"-bogus"}, 2},
		{"invalid config value", []string{"-image", still, "-headless", "-frames", "-1"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || !strings.HasSuffix(names[0], "-000001-camera.png") {
		t.Errorf("snapshots: got %v, want the first frame's camera/processed pair", names)
	}
}
