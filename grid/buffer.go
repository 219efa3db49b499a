package grid

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Buffer represents a 2D grid of cells.
// The driving application owns and mutates the buffer between frames;
// backends only read it during a flush and never retain cell references.
type Buffer struct {
	width  int
	height int
	lines  [][]Cell
}

// NewBuffer creates a new buffer with the given dimensions, all cells default.
// Negative dimensions clamp to zero.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([][]Cell, height)
	for y := 0; y < height; y++ {
		lines[y] = make([]Cell, width)
		for x := 0; x < width; x++ {
			lines[y][x] = DefaultCell()
		}
	}

	return &Buffer{
		width:  width,
		height: height,
		lines:  lines,
	}
}

// Width returns the buffer width
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// InBounds reports whether the position lies inside the buffer
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at the given position, or a default cell out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return DefaultCell()
	}
	return b.lines[y][x]
}

// Set replaces the cell at the given position. Out of bounds is a no-op
func (b *Buffer) Set(x, y int, cell Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.lines[y][x] = cell
}

// Cell returns a pointer for in-place mutation, nil out of bounds
func (b *Buffer) Cell(x, y int) *Cell {
	if !b.InBounds(x, y) {
		return nil
	}
	return &b.lines[y][x]
}

// SetText writes text starting at (x, y), one grapheme cluster per cell,
// advancing by each cluster's display width. The cell shadowed by a
// double-width cluster is cleared to an empty symbol so surface row widths
// stay aligned. Writing stops at the right edge; clusters that do not fully
// fit are dropped. Returns the x position after the last written cell.
func (b *Buffer) SetText(x, y int, text string, fg, bg tcell.Color, attrs Attr) int {
	if y < 0 || y >= b.height {
		return x
	}

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)

		adv := w
		if adv < 1 {
			// Standalone zero-width cluster still occupies one cell
			adv = 1
		}
		if x < 0 || x >= b.width || x+w > b.width {
			break
		}

		b.lines[y][x] = Cell{Symbol: cluster, Fg: fg, Bg: bg, Attrs: attrs}
		if w == 2 && x+1 < b.width {
			b.lines[y][x+1] = Cell{Symbol: "", Fg: fg, Bg: bg, Attrs: attrs}
		}
		x += adv
	}
	return x
}

// SetLink writes text as a hyperlink run; the visible text is the link target
func (b *Buffer) SetLink(x, y int, url string, fg, bg tcell.Color, attrs Attr) int {
	return b.SetText(x, y, url, fg, bg, attrs|AttrLink)
}

// Fill sets every cell to a copy of the given cell
func (b *Buffer) Fill(cell Cell) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.lines[y][x] = cell
		}
	}
}

// Clear resets every cell to the default cell
func (b *Buffer) Clear() {
	b.Fill(DefaultCell())
}

// Resize reallocates the grid to the new dimensions. Content inside the new
// bounds is preserved, new area is default cells, out-of-bounds content is
// discarded (never reflowed).
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	newLines := make([][]Cell, height)
	for y := 0; y < height; y++ {
		newLines[y] = make([]Cell, width)
		for x := 0; x < width; x++ {
			if y < b.height && x < b.width {
				newLines[y][x] = b.lines[y][x]
			} else {
				newLines[y][x] = DefaultCell()
			}
		}
	}

	b.width = width
	b.height = height
	b.lines = newLines
}
