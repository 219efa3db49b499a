package grid

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestAttrMaskRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
	}{
		{"None", AttrNone},
		{"Bold", AttrBold},
		{"Dim", AttrDim},
		{"Italic", AttrItalic},
		{"Underline", AttrUnderline},
		{"Strikethrough", AttrStrikethrough},
		{"Reverse", AttrReverse},
		{"Blink", AttrBlink},
		{"Combined", AttrBold | AttrUnderline | AttrReverse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttrFromMask(tt.attr.Mask()); got != tt.attr {
				t.Errorf("Expected %v after round trip, got %v", tt.attr, got)
			}
		})
	}
}

func TestMaskDropsWebOnlyFlags(t *testing.T) {
	// Hidden and link have no tcell representation
	if got := (AttrHidden | AttrLink).Mask(); got != tcell.AttrNone {
		t.Errorf("Expected empty mask, got %v", got)
	}
	if got := AttrFromMask((AttrHidden | AttrLink | AttrBold).Mask()); got != AttrBold {
		t.Errorf("Expected only bold to survive, got %v", got)
	}
}

func TestCellFromStyle(t *testing.T) {
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(10, 20, 30)).
		Background(tcell.ColorMaroon).
		Bold(true).
		Underline(true)

	c := CellFromStyle("g", style)

	if c.Symbol != "g" {
		t.Errorf("Expected symbol 'g', got %q", c.Symbol)
	}
	if c.Fg != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("Unexpected foreground %v", c.Fg)
	}
	if c.Bg != tcell.ColorMaroon {
		t.Errorf("Unexpected background %v", c.Bg)
	}
	if c.Attrs != AttrBold|AttrUnderline {
		t.Errorf("Expected bold|underline, got %v", c.Attrs)
	}
}
