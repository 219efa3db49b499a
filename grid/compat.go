package grid

import (
	"github.com/gdamore/tcell/v2"
)

// AttrFromMask converts a tcell.AttrMask to grid modifiers
func AttrFromMask(mask tcell.AttrMask) Attr {
	var a Attr
	if mask&tcell.AttrBold != 0 {
		a |= AttrBold
	}
	if mask&tcell.AttrDim != 0 {
		a |= AttrDim
	}
	if mask&tcell.AttrItalic != 0 {
		a |= AttrItalic
	}
	if mask&tcell.AttrUnderline != 0 {
		a |= AttrUnderline
	}
	if mask&tcell.AttrStrikeThrough != 0 {
		a |= AttrStrikethrough
	}
	if mask&tcell.AttrReverse != 0 {
		a |= AttrReverse
	}
	if mask&tcell.AttrBlink != 0 {
		a |= AttrBlink
	}
	return a
}

// Mask converts grid modifiers to a tcell.AttrMask.
// Hidden and link have no tcell counterpart and are dropped.
func (a Attr) Mask() tcell.AttrMask {
	var mask tcell.AttrMask
	if a&AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if a&AttrDim != 0 {
		mask |= tcell.AttrDim
	}
	if a&AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if a&AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if a&AttrStrikethrough != 0 {
		mask |= tcell.AttrStrikeThrough
	}
	if a&AttrReverse != 0 {
		mask |= tcell.AttrReverse
	}
	if a&AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	return mask
}

// CellFromStyle builds a cell from a symbol and a tcell style
func CellFromStyle(symbol string, style tcell.Style) Cell {
	fg, bg, mask := style.Decompose()
	return Cell{
		Symbol: symbol,
		Fg:     fg,
		Bg:     bg,
		Attrs:  AttrFromMask(mask),
	}
}
