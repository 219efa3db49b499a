package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// String returns the CSS functional form, e.g. "rgb(26, 27, 38)"
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ToRGB resolves a color to explicit channels. The second return is false
// for the unset/default color (including the reset color), which callers
// treat as "inherit the surface default". Every set color resolves: named
// and palette colors map through tcell's fixed color table, explicit RGB
// values pass through unchanged. There is no other failure mode.
func ToRGB(c tcell.Color) (RGB, bool) {
	if !c.Valid() {
		return RGB{}, false
	}
	r, g, b := c.RGB()
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

// CanvasColor returns the fill style for a color, trying the fallback
// color next and opaque black last. The canvas surface has no transparent
// inherit, so unset colors must land on something concrete.
func CanvasColor(c, fallback tcell.Color) string {
	if rgb, ok := ToRGB(c); ok {
		return rgb.String()
	}
	if rgb, ok := ToRGB(fallback); ok {
		return rgb.String()
	}
	return RGB{}.String()
}
