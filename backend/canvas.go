package backend

import (
	"fmt"

	"github.com/lixenwraith/webgrid/grid"
	"github.com/lixenwraith/webgrid/web"
)

// Canvas glyph metrics. Cells are CellPixelWidth x CellPixelHeight boxes;
// glyphs draw on an alphabetic baseline offset from the cell top.
const (
	canvasFont     = "16px monospace"
	canvasFontBold = "bold 16px monospace"
	glyphBaseline  = 15
)

// Default raster, 80x32 cells at the fixed cell metrics
const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 608
)

// unpainted is a sentinel no buffer write produces; it forces every cell
// to draw on the first flush
var unpainted = grid.Cell{Symbol: "\x00"}

// CanvasOption configures the canvas backend
type CanvasOption func(*Canvas)

// WithCanvasParentID mounts the canvas under the element with the given
// id instead of the document body
func WithCanvasParentID(id string) CanvasOption {
	return func(c *Canvas) { c.parentID = id }
}

// WithCanvasSize sets the raster dimensions in pixels
func WithCanvasSize(pxWidth, pxHeight int) CanvasOption {
	return func(c *Canvas) { c.pxWidth, c.pxHeight = pxWidth, pxHeight }
}

// Canvas renders the grid onto a fixed-pixel 2D canvas, reusing the DOM
// compositor's color resolution. The raster does not follow the viewport;
// the grid is whatever tiles the configured pixel size.
type Canvas struct {
	canvas web.Canvas
	ctx    web.Context2D

	parentID          string
	pxWidth, pxHeight int
	width, height     int

	prev [][]grid.Cell

	// Draw state for call coalescing
	lastFill string
	lastFont string
}

// NewCanvas creates a canvas backend on the given host
func NewCanvas(host web.Host, opts ...CanvasOption) (*Canvas, error) {
	c := &Canvas{
		pxWidth:  defaultCanvasWidth,
		pxHeight: defaultCanvasHeight,
	}
	for _, opt := range opts {
		opt(c)
	}

	doc, err := host.Document()
	if err != nil {
		return nil, fmt.Errorf("canvas backend: %w", err)
	}
	parent, err := mountPoint(doc, c.parentID)
	if err != nil {
		return nil, fmt.Errorf("canvas backend: %w", err)
	}

	el, err := doc.CreateElement("canvas")
	if err != nil {
		return nil, fmt.Errorf("canvas backend: %w", err)
	}
	cv, ok := el.(web.Canvas)
	if !ok {
		return nil, fmt.Errorf("canvas backend: %w", web.ErrNoCanvas)
	}
	cv.SetPixelSize(c.pxWidth, c.pxHeight)

	// Resolve the context before attaching so failure leaves nothing on
	// the page
	ctx, err := cv.Context2D()
	if err != nil {
		return nil, fmt.Errorf("canvas backend: %w", err)
	}
	if err := parent.AppendChild(cv); err != nil {
		return nil, fmt.Errorf("canvas backend: %w", err)
	}

	c.canvas = cv
	c.ctx = ctx
	c.width, c.height = SurfaceGridSize(c.pxWidth, c.pxHeight)
	return c, nil
}

// GridSize returns the grid dimensions in cells
func (c *Canvas) GridSize() (cols, rows int) {
	return c.width, c.height
}

// PixelSize returns the raster dimensions
func (c *Canvas) PixelSize() (width, height int) {
	return c.pxWidth, c.pxHeight
}

// Flush draws cells that differ from the previous frame. A buffer not
// matching the canvas grid is dropped; the raster is fixed, so callers
// render at GridSize.
func (c *Canvas) Flush(buf *grid.Buffer) error {
	w, h := buf.Size()
	if w != c.width || h != c.height {
		return nil
	}

	if c.prev == nil {
		c.ctx.ClearRect(0, 0, float64(c.pxWidth), float64(c.pxHeight))
		c.prev = make([][]grid.Cell, h)
		for y := range c.prev {
			c.prev[y] = make([]grid.Cell, w)
			for x := range c.prev[y] {
				c.prev[y][x] = unpainted
			}
		}
	}

	for y := 0; y < h; y++ {
		var changed []int
		for x := 0; x < w; x++ {
			if buf.Get(x, y) != c.prev[y][x] {
				changed = append(changed, x)
			}
		}
		if len(changed) == 0 {
			continue
		}

		// Backgrounds first: a wide glyph overflows its right neighbor,
		// and the neighbor's background must not paint over it
		for _, x := range changed {
			c.drawBackground(x, y, buf.Get(x, y))
		}
		for _, x := range changed {
			cell := buf.Get(x, y)
			c.drawGlyph(x, y, cell)
			c.prev[y][x] = cell
		}
	}
	return nil
}

// drawBackground fills the cell box
func (c *Canvas) drawBackground(x, y int, cell grid.Cell) {
	_, bg := resolveFills(cell)
	c.setFill(bg)
	c.ctx.FillRect(
		float64(x*CellPixelWidth), float64(y*CellPixelHeight),
		CellPixelWidth, CellPixelHeight,
	)
}

// drawGlyph paints the cell symbol, skipping blanks and hidden cells
func (c *Canvas) drawGlyph(x, y int, cell grid.Cell) {
	if cell.Symbol == "" || cell.Symbol == " " || cell.Attrs&grid.AttrHidden != 0 {
		return
	}

	font := canvasFont
	if cell.Attrs&grid.AttrBold != 0 {
		font = canvasFontBold
	}
	fg, _ := resolveFills(cell)

	c.setFont(font)
	c.setFill(fg)
	c.ctx.FillText(
		cell.Symbol,
		float64(x*CellPixelWidth), float64(y*CellPixelHeight+glyphBaseline),
	)
}

// resolveFills computes fill styles with the same reverse-then-fallback
// rule as the DOM compositor. The canvas has no transparent inherit, so
// an unset background lands on black; dim applies as glyph alpha since
// the canvas has no element opacity.
func resolveFills(cell grid.Cell) (fg, bg string) {
	fgc, fgOK := ToRGB(cell.Fg)
	bgc, bgOK := ToRGB(cell.Bg)

	if cell.Attrs&grid.AttrReverse != 0 {
		fgc, bgc = bgc, fgc
		fgOK, bgOK = bgOK, fgOK
		if !bgOK {
			// Swapped foreground must stay visible
			bgc = rgbWhite
			bgOK = true
		}
	}
	if !fgOK {
		fgc = rgbWhite
	}
	if !bgOK {
		bgc = RGB{}
	}

	if cell.Attrs&grid.AttrDim != 0 {
		fg = fmt.Sprintf("rgba(%d, %d, %d, 0.5)", fgc.R, fgc.G, fgc.B)
	} else {
		fg = fgc.String()
	}
	return fg, bgc.String()
}

// setFill updates the fill style only when it changed
func (c *Canvas) setFill(style string) {
	if style == c.lastFill {
		return
	}
	c.ctx.SetFillStyle(style)
	c.lastFill = style
}

// setFont updates the font only when it changed
func (c *Canvas) setFont(font string) {
	if font == c.lastFont {
		return
	}
	c.ctx.SetFont(font)
	c.lastFont = font
}
