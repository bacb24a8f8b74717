// Package app drives the capture, process, display loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/hsv-detect/internal/capture"
	"github.com/ironsheep/hsv-detect/internal/display"
	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// Runner owns one detection session.
//
// The loop is single-threaded: each iteration reads a frame, processes it
// against the current bounds, shows the result and waits for a key. Bounds
// may be changed between iterations (the window sliders do this during
// PollKey); each frame uses the values current when it is processed.
type Runner struct {
	Source    capture.FrameSource
	Display   display.Display
	Processor *pipeline.Processor
	Bounds    *imaging.ThresholdBounds

	QuitKey   int
	Wait      time.Duration
	MaxFrames int

	Log zerolog.Logger
}

// Stats summarizes a finished run.
type Stats struct {
	Frames  int
	Objects int
}

// Run loops until the quit key, the frame limit or ctx cancellation, all of
// which end the run with a nil error. A failed read, processing or display
// error stops the loop immediately and is returned; no further frames are
// read after it.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	for {
		if err := ctx.Err(); err != nil {
			r.Log.Info().Int("frames", stats.Frames).Msg("loop cancelled")
			return stats, nil
		}

		frame, err := r.Source.Read()
		if err != nil {
			return stats, fmt.Errorf("frame %d: %w", stats.Frames+1, err)
		}

		res, err := r.Processor.Process(frame, r.Bounds)
		if err != nil {
			return stats, fmt.Errorf("frame %d: %w", stats.Frames+1, err)
		}
		stats.Frames++
		stats.Objects += len(res.Objects)

		if e := r.Log.Debug(); e.Enabled() {
			e.Int("frame", stats.Frames).
				Int("contours", len(res.Contours)).
				Int("labeled", len(res.Labeled())).
				Stringer("bounds", r.Bounds).
				Msg("frame processed")
		}

		if err := r.Display.Show(res); err != nil {
			return stats, fmt.Errorf("frame %d: show: %w", stats.Frames, err)
		}

		if key := r.Display.PollKey(r.Wait); key == r.QuitKey {
			r.Log.Info().Int("frames", stats.Frames).Msg("quit key pressed")
			return stats, nil
		}

		if r.MaxFrames > 0 && stats.Frames >= r.MaxFrames {
			r.Log.Info().Int("frames", stats.Frames).Msg("frame limit reached")
			return stats, nil
		}
	}
}
