package display

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// Headless is a Display without windows. Every Nth frame it writes the
// annotated frame and the processed mask view as PNG files named
//
//	<session>-<frame>-camera.png
//	<session>-<frame>-processed.png
//
// into its output directory. The session prefix is a short random ID so
// several runs can share one directory.
type Headless struct {
	dir     string
	every   int
	session string
	frame   int
	sleep   func(time.Duration)
}

// NewHeadless creates a headless display. An empty dir or every <= 0
// disables writing; the display then only paces the loop.
func NewHeadless(dir string, every int) *Headless {
	return &Headless{
		dir:     dir,
		every:   every,
		session: uuid.NewString()[:8],
		sleep:   time.Sleep,
	}
}

// Session returns the file name prefix used by this display.
func (h *Headless) Session() string {
	return h.session
}

// Show writes the snapshot pair when the frame counter hits the interval.
func (h *Headless) Show(res *pipeline.Result) error {
	h.frame++
	if h.dir == "" || h.every <= 0 || (h.frame-1)%h.every != 0 {
		return nil
	}

	base := filepath.Join(h.dir, fmt.Sprintf("%s-%06d", h.session, h.frame))
	if err := imaging.SaveImage(res.Annotated, base+"-"+CameraWindow+".png"); err != nil {
		return err
	}
	if err := imaging.SaveImage(res.MaskView, base+"-"+ProcessedWindow+".png"); err != nil {
		return err
	}
	log.Debug().Str("path", base).Int("objects", len(res.Objects)).Msg("snapshot written")
	return nil
}

// PollKey sleeps for wait and never reports a key.
func (h *Headless) PollKey(wait time.Duration) int {
	if wait > 0 {
		h.sleep(wait)
	}
	return NoKey
}

// Close does nothing; files are written synchronously.
func (h *Headless) Close() error {
	return nil
}
