// Package config holds the detector's settings: built-in defaults, an
// optional YAML file layered on top, and a few environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel = "HSV_DETECT_LOG_LEVEL"
	EnvDevice   = "HSV_DETECT_DEVICE"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	Camera     Camera                  `yaml:"camera"`
	Bounds     imaging.ThresholdBounds `yaml:"bounds"`
	Loop       Loop                    `yaml:"loop"`
	Display    Display                 `yaml:"display"`
	Processing Processing              `yaml:"processing"`
	LogLevel   string                  `yaml:"log_level"`
}

// Camera selects the frame source.
type Camera struct {
	Device int `yaml:"device"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// ImagePath, when set, replays a still image instead of opening a device.
	ImagePath string `yaml:"image_path"`
}

// Loop controls the per-frame loop.
type Loop struct {
	QuitKey    int `yaml:"quit_key"`
	WaitMillis int `yaml:"wait_ms"`

	// MaxFrames stops the loop after that many frames; 0 runs until quit.
	MaxFrames int `yaml:"max_frames"`
}

// Display selects windows or headless snapshots.
type Display struct {
	Headless  bool   `yaml:"headless"`
	OutputDir string `yaml:"output_dir"`
	SaveEvery int    `yaml:"save_every"`
}

// Processing tunes the frame processor.
type Processing struct {
	pipeline.Options `yaml:",inline"`
	ColorSeed        uint64 `yaml:"color_seed"`
}

// Default returns the stock settings: device 0 at 352x288, an orange hue
// band, ESC to quit and a 20ms key wait.
func Default() *Config {
	return &Config{
		Camera: Camera{
			Device: 0,
			Width:  352,
			Height: 288,
		},
		Bounds: imaging.ThresholdBounds{
			LowH: 0, HighH: 18,
			LowS: 80, HighS: 255,
			LowV: 0, HighV: 255,
		},
		Loop: Loop{
			QuitKey:    27,
			WaitMillis: 20,
		},
		Display: Display{
			OutputDir: "snapshots",
			SaveEvery: 30,
		},
		Processing: Processing{
			Options:   pipeline.DefaultOptions(),
			ColorSeed: pipeline.DefaultSeed,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged. Fields missing from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment overrides using lookup (os.LookupEnv in
// production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvDevice); ok && v != "" {
		dev, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a device index", ErrInvalid, EnvDevice, v)
		}
		c.Camera.Device = dev
	}
	return nil
}

// Level parses LogLevel, defaulting to info when empty.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return lvl, nil
}

// Validate range-checks every field. Threshold bounds are only checked
// against their slider ranges; Low above High is allowed and yields an
// empty mask.
func (c *Config) Validate() error {
	if c.Camera.Device < 0 {
		return fmt.Errorf("%w: camera.device must be >= 0, got %d", ErrInvalid, c.Camera.Device)
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("%w: camera size must be positive, got %dx%d", ErrInvalid, c.Camera.Width, c.Camera.Height)
	}
	if err := c.Bounds.Validate(); err != nil {
		return fmt.Errorf("%w: bounds: %v", ErrInvalid, err)
	}
	if c.Loop.WaitMillis <= 0 {
		return fmt.Errorf("%w: loop.wait_ms must be positive, got %d", ErrInvalid, c.Loop.WaitMillis)
	}
	if c.Loop.MaxFrames < 0 {
		return fmt.Errorf("%w: loop.max_frames must be >= 0, got %d", ErrInvalid, c.Loop.MaxFrames)
	}
	if c.Display.SaveEvery < 0 {
		return fmt.Errorf("%w: display.save_every must be >= 0, got %d", ErrInvalid, c.Display.SaveEvery)
	}
	p := c.Processing
	positive := []struct {
		name string
		val  float64
	}{
		{"epsilon", p.Epsilon},
		{"label_radius", float64(p.LabelRadius)},
		{"cross_half", float64(p.CrossHalf)},
		{"label_offset", float64(p.LabelOffset)},
		{"blur_size", float64(p.BlurSize)},
	}
	for _, f := range positive {
		if f.val <= 0 {
			return fmt.Errorf("%w: processing.%s must be > 0, got %v", ErrInvalid, f.name, f.val)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}
