package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createTestImageFile writes a solid PNG into a temp dir and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, createInMemoryImage(width, height, c)); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	path := createTestImageFile(t, 40, 30, color.RGBA{255, 0, 0, 255})
	cache := NewImageCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("size: got %v", img.Bounds())
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}

	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again != img {
		t.Error("second Load should return the cached image")
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	a := createTestImageFile(t, 4, 4, color.White)
	b := createTestImageFile(t, 4, 4, color.Black)
	cache := NewImageCache()

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load(%s) failed: %v", p, err)
		}
	}
	cache.Evict(a)
	if cache.Len() != 1 {
		t.Errorf("after Evict: Len %d, want 1", cache.Len())
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: Len %d, want 0", cache.Len())
	}
}

func TestImageCache_Errors(t *testing.T) {
	cache := NewImageCache()

	if _, err := cache.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(bad); err == nil {
		t.Error("expected error for undecodable file")
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads must not be cached, Len %d", cache.Len())
	}
}

func TestImageCache_Concurrent(t *testing.T) {
	path := createTestImageFile(t, 16, 16, color.White)
	cache := NewImageCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("Load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestLoadImageInfo(t *testing.T) {
	path := createTestImageFile(t, 64, 48, color.White)
	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 64 || info.Height != 48 {
		t.Errorf("size: got %dx%d, want 64x48", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d", info.FileSizeBytes)
	}
}

func TestLoadFrame(t *testing.T) {
	path := createTestImageFile(t, 100, 80, color.RGBA{0, 0, 255, 255})
	cache := NewImageCache()

	tests := []struct {
		name          string
		width, height int
		want          image.Point
	}{
		{"keep size", 0, 0, image.Pt(100, 80)},
		{"same size", 100, 80, image.Pt(100, 80)},
		{"resize", 352, 288, image.Pt(352, 288)},
		{"one dimension only", 50, 0, image.Pt(100, 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := LoadFrame(cache, path, tt.width, tt.height)
			if err != nil {
				t.Fatalf("LoadFrame failed: %v", err)
			}
			if got := img.Bounds().Size(); got != tt.want {
				t.Errorf("size: got %v, want %v", got, tt.want)
			}
		})
	}

	orig, _ := cache.Load(path)
	if orig.Bounds().Dx() != 100 {
		t.Error("cached original must not be resized")
	}
}

func TestSaveImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path := filepath.Join(dir, "snap.png")

	if err := SaveImage(createInMemoryImage(8, 6, color.White), path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	img, err := NewImageCache().Load(path)
	if err != nil {
		t.Fatalf("saved file not readable: %v", err)
	}
	if img.Bounds().Size() != image.Pt(8, 6) {
		t.Errorf("size: got %v", img.Bounds().Size())
	}
}

func TestSaveImage_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.xyz")
	if err := SaveImage(createInMemoryImage(2, 2, color.White), path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestEncodePNG(t *testing.T) {
	mask := newMask(12, 7, image.Pt(3, 3))

	enc, err := EncodePNG(mask)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if enc.Width != 12 || enc.Height != 7 || enc.MimeType != "image/png" {
		t.Errorf("metadata: got %+v", enc)
	}

	data, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if r, _, _, _ := img.At(3, 3).RGBA(); r>>8 != 255 {
		t.Errorf("set pixel decoded as %d", r>>8)
	}
}

func TestClone(t *testing.T) {
	src := createPatternImage(10, 10)
	sub := src.SubImage(image.Rect(5, 0, 10, 5))

	c := Clone(sub)
	if c.Bounds() != image.Rect(0, 0, 5, 5) {
		t.Errorf("bounds: got %v, want zero-origin 5x5", c.Bounds())
	}
	if got := c.NRGBAAt(0, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("first pixel: got %v, want green", got)
	}

	c.Set(0, 0, color.Black)
	if src.RGBAAt(5, 0) != (color.RGBA{0, 255, 0, 255}) {
		t.Error("Clone must not share pixels with the source")
	}

	gray := Clone(newMask(2, 1, image.Pt(0, 0)))
	if got := gray.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("mask pixel: got %v, want white", got)
	}
}
