package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Camera.Device != 0 || cfg.Camera.Width != 352 || cfg.Camera.Height != 288 {
		t.Errorf("unexpected camera defaults: %+v", cfg.Camera)
	}
	b := cfg.Bounds
	if b.LowH != 0 || b.HighH != 18 || b.LowS != 80 || b.HighS != 255 || b.LowV != 0 || b.HighV != 255 {
		t.Errorf("unexpected bounds: %v", b)
	}
	if cfg.Loop.QuitKey != 27 || cfg.Loop.WaitMillis != 20 {
		t.Errorf("unexpected loop defaults: %+v", cfg.Loop)
	}
	if cfg.Processing.Epsilon != 3 || cfg.Processing.LabelRadius != 20 || cfg.Processing.ColorSeed != 12345 {
		t.Errorf("unexpected processing defaults: %+v", cfg.Processing)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Camera.Width != 352 {
		t.Errorf("expected defaults, got %+v", cfg.Camera)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
camera:
  device: 2
bounds:
  low_h: 100
  high_h: 130
processing:
  epsilon: 5
  label_radius: 30
display:
  headless: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Camera.Device != 2 {
		t.Errorf("device = %d, want 2", cfg.Camera.Device)
	}
	if cfg.Camera.Width != 352 {
		t.Errorf("width should keep default, got %d", cfg.Camera.Width)
	}
	if cfg.Bounds.LowH != 100 || cfg.Bounds.HighH != 130 {
		t.Errorf("hue bounds not loaded: %v", cfg.Bounds)
	}
	if cfg.Bounds.LowS != 80 {
		t.Errorf("low_s should keep default, got %d", cfg.Bounds.LowS)
	}
	if cfg.Processing.Epsilon != 5 || cfg.Processing.LabelRadius != 30 {
		t.Errorf("processing not loaded: %+v", cfg.Processing)
	}
	if cfg.Processing.BlurSize != 5 {
		t.Errorf("blur_size should keep default, got %d", cfg.Processing.BlurSize)
	}
	if !cfg.Display.Headless {
		t.Error("expected headless")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeConfig(t, "camera: [not, a, map]\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvLogLevel: " DEBUG ",
		EnvDevice:   "3",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
	if cfg.Camera.Device != 3 {
		t.Errorf("device = %d, want 3", cfg.Camera.Device)
	}

	lvl, err := cfg.Level()
	if err != nil || lvl != zerolog.DebugLevel {
		t.Errorf("Level() = %v, %v", lvl, err)
	}
}

func TestApplyEnvBadDevice(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{EnvDevice: "front"}))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"inverted bounds allowed", func(c *Config) { c.Bounds.LowH, c.Bounds.HighH = 150, 10 }, true},
		{"negative device", func(c *Config) { c.Camera.Device = -1 }, false},
		{"zero width", func(c *Config) { c.Camera.Width = 0 }, false},
		{"hue above slider", func(c *Config) { c.Bounds.HighH = 180 }, false},
		{"negative saturation", func(c *Config) { c.Bounds.LowS = -1 }, false},
		{"zero wait", func(c *Config) { c.Loop.WaitMillis = 0 }, false},
		{"negative frames", func(c *Config) { c.Loop.MaxFrames = -5 }, false},
		{"negative save interval", func(c *Config) { c.Display.SaveEvery = -1 }, false},
		{"negative epsilon", func(c *Config) { c.Processing.Epsilon = -1 }, false},
		{"zero epsilon", func(c *Config) { c.Processing.Epsilon = 0 }, false},
		{"zero label radius", func(c *Config) { c.Processing.LabelRadius = 0 }, false},
		{"zero cross half", func(c *Config) { c.Processing.CrossHalf = 0 }, false},
		{"zero label offset", func(c *Config) { c.Processing.LabelOffset = 0 }, false},
		{"zero blur size", func(c *Config) { c.Processing.BlurSize = 0 }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid {
				if err == nil {
					t.Error("expected error")
				} else if !errors.Is(err, ErrInvalid) {
					t.Errorf("expected ErrInvalid, got %v", err)
				}
			}
		})
	}
}

func TestLoadRejectsZeroProcessing(t *testing.T) {
	path := writeConfig(t, "processing:\n  label_offset: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Processing.LabelOffset != 0 {
		t.Fatalf("label_offset = %d, want the explicit 0", cfg.Processing.LabelOffset)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for label_offset 0, got %v", err)
	}
}
