package backend

import (
	"strconv"

	"github.com/lixenwraith/webgrid/grid"
)

// rgbWhite is the fallback for unresolved colors that must stay visible
var rgbWhite = RGB{R: 255, G: 255, B: 255}

// transparent lets an unset background inherit the surface behind the grid
const transparent = "transparent"

// Braille patterns block, U+2800 through U+28FF
const (
	brailleLow  = '\u2800'
	brailleHigh = '\u28ff'
)

// CellProperties composes the ordered inline style properties for a cell:
//
//  1. Foreground and background resolve through ToRGB.
//  2. Reverse swaps the two resolved values before any fallback.
//  3. Unresolved foreground falls back to opaque white. Unresolved
//     background falls back to opaque white when the cell is reversed
//     (the swapped foreground must remain visible), else transparent.
//  4. Modifiers map to independent properties; underline and
//     strikethrough share one text-decoration property so names stay
//     unique while both decorations apply.
//  5. Symbols from the braille block request tabular glyph spacing to
//     keep pattern columns aligned.
//  6. Every cell is an inline block sized to its display width in ch.
//
// Composition is total: any cell yields a valid declaration.
func CellProperties(c grid.Cell) []Property {
	props := make([]Property, 0, 10)

	fg, fgOK := ToRGB(c.Fg)
	bg, bgOK := ToRGB(c.Bg)

	reversed := c.Attrs&grid.AttrReverse != 0
	if reversed {
		fg, bg = bg, fg
		fgOK, bgOK = bgOK, fgOK
	}

	if !fgOK {
		fg = rgbWhite
	}
	props = append(props, Property{Name: "color", Value: fg.String()})

	switch {
	case bgOK:
		props = append(props, Property{Name: "background-color", Value: bg.String()})
	case reversed:
		props = append(props, Property{Name: "background-color", Value: rgbWhite.String()})
	default:
		props = append(props, Property{Name: "background-color", Value: transparent})
	}

	if c.Attrs&grid.AttrBold != 0 {
		props = append(props, Property{Name: "font-weight", Value: "bold"})
	}
	if c.Attrs&grid.AttrDim != 0 {
		props = append(props, Property{Name: "opacity", Value: "0.5"})
	}
	if c.Attrs&grid.AttrItalic != 0 {
		props = append(props, Property{Name: "font-style", Value: "italic"})
	}
	if deco := decoration(c.Attrs); deco != "" {
		props = append(props, Property{Name: "text-decoration", Value: deco})
	}
	if c.Attrs&grid.AttrHidden != 0 {
		props = append(props, Property{Name: "visibility", Value: "hidden"})
	}
	if isBraille(c.Symbol) {
		props = append(props, Property{Name: "font-variant-numeric", Value: "tabular-nums"})
	}

	props = append(props, Property{Name: "display", Value: "inline-block"})
	props = append(props, Property{Name: "width", Value: chWidth(c.Width())})

	return props
}

// CellStyle returns the complete inline declaration for a cell
func CellStyle(c grid.Cell) string {
	return BuildInline(CellProperties(c))
}

// decoration combines underline and strikethrough into one property value
func decoration(a grid.Attr) string {
	switch {
	case a&grid.AttrUnderline != 0 && a&grid.AttrStrikethrough != 0:
		return "underline line-through"
	case a&grid.AttrUnderline != 0:
		return "underline"
	case a&grid.AttrStrikethrough != 0:
		return "line-through"
	}
	return ""
}

// isBraille reports whether the symbol's first rune is a braille pattern
func isBraille(symbol string) bool {
	for _, r := range symbol {
		return r >= brailleLow && r <= brailleHigh
	}
	return false
}

// chWidth formats a display width in ch units
func chWidth(w int) string {
	return strconv.Itoa(w) + "ch"
}
