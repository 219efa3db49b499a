// Package grid holds the cell data model shared by all rendering backends:
// a styled cell, its modifier bitmask, and a resizable 2D cell buffer that
// the driving application mutates between frames.
package grid

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Attr represents cell modifiers (bitmask)
type Attr uint16

const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << 0
	AttrDim           Attr = 1 << 1
	AttrItalic        Attr = 1 << 2
	AttrUnderline     Attr = 1 << 3
	AttrHidden        Attr = 1 << 4
	AttrStrikethrough Attr = 1 << 5
	AttrReverse       Attr = 1 << 6
	AttrBlink         Attr = 1 << 7 // Representable but not rendered as CSS
	AttrLink          Attr = 1 << 8 // Cell is part of a hyperlink run
)

var attrNames = []struct {
	attr Attr
	name string
}{
	{AttrBold, "bold"},
	{AttrDim, "dim"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrHidden, "hidden"},
	{AttrStrikethrough, "strikethrough"},
	{AttrReverse, "reverse"},
	{AttrBlink, "blink"},
	{AttrLink, "link"},
}

// String returns a |-joined list of set modifiers, "none" when empty
func (a Attr) String() string {
	if a == AttrNone {
		return "none"
	}
	var parts []string
	for _, an := range attrNames {
		if a&an.attr != 0 {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, "|")
}

// Cell represents a single grid position
type Cell struct {
	Symbol string // One displayed symbol, generally a single grapheme cluster
	Fg     tcell.Color
	Bg     tcell.Color
	Attrs  Attr
}

// DefaultCell returns a blank cell with unset colors
func DefaultCell() Cell {
	return Cell{
		Symbol: " ",
		Fg:     tcell.ColorDefault,
		Bg:     tcell.ColorDefault,
		Attrs:  AttrNone,
	}
}

// Width returns the display width of the cell's symbol in columns.
// East-asian wide glyphs report 2, zero-width combining marks 0.
func (c Cell) Width() int {
	return runewidth.StringWidth(c.Symbol)
}
