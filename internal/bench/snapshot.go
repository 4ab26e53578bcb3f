package bench

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/host"
	"github.com/san-kum/backdrop/internal/palette"
	"github.com/san-kum/backdrop/internal/theme"
)

// Snapshot is the last frame of a headless run.
type Snapshot struct {
	Recorder *draw.Recorder
	Frames   int
	Dark     bool
}

// SVG renders the frame over the theme background.
func (s *Snapshot) SVG() string {
	return draw.FrameToSVG(s.Recorder, palette.Background(s.Dark))
}

// Braille replays the frame onto a cols x rows braille canvas.
func (s *Snapshot) Braille(cols, rows int) string {
	w, _ := s.Recorder.Size()
	c := draw.NewCanvas(cols, rows, w/float64(cols*2))
	s.Recorder.Playback(c)
	return c.Render(palette.Background(s.Dark))
}

// PNG replays the frame onto an anti-aliased raster and encodes it.
func (s *Snapshot) PNG() ([]byte, error) {
	w, h := s.Recorder.Size()
	r := draw.NewRaster(int(w), int(h), palette.Background(s.Dark))
	s.Recorder.Playback(r)

	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Image()); err != nil {
		return nil, fmt.Errorf("bench: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// TakeSnapshot renders frames frames of cfg at w x h with a synthetic clock.
// The pointer, when an effect is set, rests at the center.
func TakeSnapshot(cfg config.Config, w, h float64, frames int, platform theme.Platform) (*Snapshot, error) {
	if frames < 1 {
		return nil, fmt.Errorf("bench: snapshot needs at least one frame, got %d", frames)
	}
	rec := draw.NewRecorder(w, h)
	m := host.NewManual(rec, time.Second/time.Duration(cfg.FPS))
	hd, err := engine.Create(m, cfg, engine.WithPlatform(platform), engine.WithLogger(discard()))
	if err != nil {
		return nil, err
	}
	defer hd.Destroy()
	if hd.Inert() {
		return nil, engine.ErrSurfaceUnavailable
	}

	m.Move(w/2, h/2)
	m.Run(frames)
	return &Snapshot{Recorder: rec, Frames: int(hd.Frames()), Dark: hd.IsDark()}, nil
}
