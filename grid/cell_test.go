package grid

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDefaultCell(t *testing.T) {
	c := DefaultCell()

	if c.Symbol != " " {
		t.Errorf("Expected blank symbol, got %q", c.Symbol)
	}
	if c.Fg != tcell.ColorDefault {
		t.Errorf("Expected default foreground, got %v", c.Fg)
	}
	if c.Bg != tcell.ColorDefault {
		t.Errorf("Expected default background, got %v", c.Bg)
	}
	if c.Attrs != AttrNone {
		t.Errorf("Expected no modifiers, got %v", c.Attrs)
	}
}

func TestCellWidth(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   int
	}{
		{"ASCII letter", "A", 1},
		{"Blank", " ", 1},
		{"Empty symbol", "", 0},
		{"CJK wide", "你", 2},
		{"Emoji wide", "🦀", 2},
		{"Combining mark", "́", 0},
		{"Braille", "⣿", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cell{Symbol: tt.symbol}
			if got := c.Width(); got != tt.want {
				t.Errorf("Expected width %d for %q, got %d", tt.want, tt.symbol, got)
			}
		})
	}
}

func TestAttrString(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		want string
	}{
		{"None", AttrNone, "none"},
		{"Single", AttrBold, "bold"},
		{"Pair", AttrBold | AttrItalic, "bold|italic"},
		{"Decorations", AttrUnderline | AttrStrikethrough, "underline|strikethrough"},
		{"Link", AttrLink, "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attr.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
