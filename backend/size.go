package backend

import (
	"github.com/lixenwraith/webgrid/grid"
	"github.com/lixenwraith/webgrid/web"
)

// Fixed per-cell pixel metrics, shared by the viewport sizing model and
// the canvas surface
const (
	CellPixelWidth  = 10
	CellPixelHeight = 19
)

// Fallback grid dimensions when host geometry cannot be queried.
// Conservatively large so content renders rather than failing.
const (
	FallbackGridWidth  = 120
	FallbackGridHeight = 120
)

// ViewportGridSize returns the grid dimensions filling the host viewport.
// Handheld devices use device screen geometry (their visual viewport pans
// and shrinks under pinch zoom); desktops use the window viewport. Any
// geometry query failure falls back to the fixed default grid.
func ViewportGridSize(host web.Host) (cols, rows int) {
	var w, h int
	var err error
	if host.Handheld() {
		w, h, err = host.ScreenSize()
	} else {
		w, h, err = host.ViewportSize()
	}
	if err != nil {
		return FallbackGridWidth, FallbackGridHeight
	}
	return SurfaceGridSize(w, h)
}

// SurfaceGridSize returns the grid dimensions tiling a fixed-pixel
// surface. Division truncates; partial edge cells are not rendered.
func SurfaceGridSize(pxWidth, pxHeight int) (cols, rows int) {
	return pxWidth / CellPixelWidth, pxHeight / CellPixelHeight
}

// NewSizedBuffer allocates a default-cell buffer matching the host viewport
func NewSizedBuffer(host web.Host) *grid.Buffer {
	cols, rows := ViewportGridSize(host)
	return grid.NewBuffer(cols, rows)
}
