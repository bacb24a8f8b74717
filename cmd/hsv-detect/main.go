package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/hsv-detect/internal/app"
	"github.com/ironsheep/hsv-detect/internal/capture"
	"github.com/ironsheep/hsv-detect/internal/config"
	"github.com/ironsheep/hsv-detect/internal/display"
	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
	"github.com/ironsheep/hsv-detect/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// exitFailure is returned to the shell when the camera cannot be opened or
// a frame cannot be read.
const exitFailure = -1

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("hsv-detect %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "mcp":
			os.Exit(runMCP(os.Args[2:]))
		}
	}
	os.Exit(run(os.Args[1:]))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "hsv-detect - detect colored objects in a webcam feed by HSV threshold")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hsv-detect [flags]        run the detection loop (ESC quits)")
	fmt.Fprintln(w, "  hsv-detect mcp [-config]  serve detector tools over MCP on stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	newFlagSet(w, &cliFlags{}).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Log level (debug, info, warn, error)\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %s=1           Camera device index\n", config.EnvDevice)
}

type cliFlags struct {
	configPath string
	device     int
	width      int
	height     int
	imagePath  string
	headless   bool
	outDir     string
	saveEvery  int
	frames     int
}

func newFlagSet(output io.Writer, f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("hsv-detect", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.IntVar(&f.device, "device", 0, "camera device index")
	fs.IntVar(&f.width, "width", 0, "requested frame width")
	fs.IntVar(&f.height, "height", 0, "requested frame height")
	fs.StringVar(&f.imagePath, "image", "", "replay a still image instead of a camera")
	fs.BoolVar(&f.headless, "headless", false, "write PNG snapshots instead of opening windows")
	fs.StringVar(&f.outDir, "out", "", "snapshot directory for -headless")
	fs.IntVar(&f.saveEvery, "save-every", 0, "write a snapshot every N frames")
	fs.IntVar(&f.frames, "frames", 0, "stop after N frames (0 = until ESC)")
	return fs
}

// loadConfig layers defaults, the config file, the environment and finally
// any flags given explicitly on the command line.
func loadConfig(fs *flag.FlagSet, f *cliFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "device":
			cfg.Camera.Device = f.device
		case "width":
			cfg.Camera.Width = f.width
		case "height":
			cfg.Camera.Height = f.height
		case "image":
			cfg.Camera.ImagePath = f.imagePath
		case "headless":
			cfg.Display.Headless = f.headless
		case "out":
			cfg.Display.OutputDir = f.outDir
		case "save-every":
			cfg.Display.SaveEvery = f.saveEvery
		case "frames":
			cfg.Loop.MaxFrames = f.frames
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging configures the global zerolog logger on stderr; stdout is
// reserved for MCP traffic.
func setupLogging(cfg *config.Config) {
	lvl, _ := cfg.Level()
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func run(args []string) int {
	var f cliFlags
	fs := newFlagSet(os.Stderr, &f)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(fs, &f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hsv-detect: %v\n", err)
		return 2
	}
	setupLogging(cfg)
	log.Info().Str("version", Version).Str("commit", GitCommit).Msg("hsv-detect starting")

	src, err := openSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hsv-detect: cannot open camera: %v\n", err)
		return exitFailure
	}
	defer src.Close()

	size := src.Size()
	log.Info().Int("width", size.X).Int("height", size.Y).
		Int("requested_width", cfg.Camera.Width).Int("requested_height", cfg.Camera.Height).
		Msg("capture opened")

	disp, err := openDisplay(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hsv-detect: %v\n", err)
		return exitFailure
	}
	defer disp.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &app.Runner{
		Source:    src,
		Display:   disp,
		Processor: pipeline.NewProcessor(cfg.Processing.Options, pipeline.NewRNGColors(cfg.Processing.ColorSeed)),
		Bounds:    &cfg.Bounds,
		QuitKey:   cfg.Loop.QuitKey,
		Wait:      time.Duration(cfg.Loop.WaitMillis) * time.Millisecond,
		MaxFrames: cfg.Loop.MaxFrames,
		Log:       log.Logger,
	}

	stats, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, capture.ErrEmptyFrame) {
			fmt.Fprintf(os.Stderr, "hsv-detect: no frame from camera: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "hsv-detect: %v\n", err)
		}
		return exitFailure
	}

	log.Info().Int("frames", stats.Frames).Int("objects", stats.Objects).Stringer("bounds", cfg.Bounds).Msg("done")
	return 0
}

func openSource(cfg *config.Config) (capture.FrameSource, error) {
	if cfg.Camera.ImagePath != "" {
		return capture.OpenStill(imaging.NewImageCache(), cfg.Camera.ImagePath, cfg.Camera.Width, cfg.Camera.Height)
	}
	return capture.OpenCamera(cfg.Camera.Device, cfg.Camera.Width, cfg.Camera.Height)
}

// openDisplay opens the window set, falling back to headless snapshots when
// the binary has no GUI support.
func openDisplay(cfg *config.Config) (display.Display, error) {
	if !cfg.Display.Headless {
		win, err := display.OpenWindows(&cfg.Bounds)
		if err == nil {
			return win, nil
		}
		if !errors.Is(err, display.ErrNoGUI) {
			return nil, err
		}
		log.Warn().Err(err).Msg("falling back to headless output")
	}

	h := display.NewHeadless(cfg.Display.OutputDir, cfg.Display.SaveEvery)
	log.Info().Str("session", h.Session()).Str("dir", cfg.Display.OutputDir).Int("every", cfg.Display.SaveEvery).
		Msg("headless display")
	return h, nil
}

func runMCP(args []string) int {
	var f cliFlags
	fs := newFlagSet(os.Stderr, &f)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := loadConfig(fs, &f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hsv-detect: %v\n", err)
		return 2
	}
	setupLogging(cfg)
	log.Debug().Str("version", Version).Str("built", BuildTime).Str("commit", GitCommit).Msg("MCP server starting")

	server.ServerVersion = Version
	srv := server.New(cfg.Processing.Options, cfg.Bounds)
	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("server error")
		return 1
	}
	return 0
}
