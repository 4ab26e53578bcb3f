package tui

import (
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/host"
)

// Host serves a braille canvas to the engine. Frames are flushed from the
// bubbletea update loop, so the canvas is only touched on that goroutine.
type Host struct {
	host.Base
	canvas *draw.Canvas

	// Top-left cell of the canvas on screen, for mouse mapping.
	originX, originY int
}

func NewHost(cols, rows int, scale float64) *Host {
	return &Host{canvas: draw.NewCanvas(cols, rows, scale)}
}

func (h *Host) Surface() (draw.Surface, error) { return h.canvas, nil }

func (h *Host) Canvas() *draw.Canvas { return h.canvas }

// Resize changes the canvas to cols x rows cells and notifies listeners of
// the new logical extent. Unchanged sizes are ignored.
func (h *Host) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == h.canvas.Width && rows == h.canvas.Height {
		return
	}
	h.canvas.Resize(cols, rows)
	w, ht := h.canvas.Size()
	h.NotifyResize(w, ht)
}

// SetOrigin places the canvas on screen.
func (h *Host) SetOrigin(col, row int) { h.originX, h.originY = col, row }

// PointerAt converts a terminal cell to logical units at the cell center
// and reports it. Cells outside the canvas are ignored.
func (h *Host) PointerAt(col, row int) bool {
	x, y := col-h.originX, row-h.originY
	if x < 0 || y < 0 || x >= h.canvas.Width || y >= h.canvas.Height {
		return false
	}
	s := h.canvas.Scale
	h.NotifyPointer((float64(x)+0.5)*2*s, (float64(y)+0.5)*4*s)
	return true
}

var _ engine.Host = (*Host)(nil)
