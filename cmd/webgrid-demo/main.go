//go:build wasm

// Browser demo for the webgrid backends. Build with:
//
//	GOOS=js GOARCH=wasm go build -o demo.wasm ./cmd/webgrid-demo
//
// Serve the wasm binary with wasm_exec.js and a page containing an empty
// body; the demo builds its own surface.
package main

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/webgrid/backend"
	"github.com/lixenwraith/webgrid/grid"
	"github.com/lixenwraith/webgrid/web"
)

//go:embed theme.toml
var themeTOML string

// theme is the demo palette, decoded from the embedded TOML
type theme struct {
	Title  string            `toml:"title"`
	Colors map[string]string `toml:"colors"`
}

func (t theme) color(name string) tcell.Color {
	if v, ok := t.Colors[name]; ok {
		return tcell.GetColor(v)
	}
	return tcell.ColorDefault
}

// palette holds the resolved colors used by the render passes
type palette struct {
	bg     tcell.Color
	header tcell.Color
	text   tcell.Color
	accent tcell.Color
	dim    tcell.Color
	link   tcell.Color
	warn   tcell.Color
	good   tcell.Color
}

var spinnerGlyphs = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func main() {
	defer func() {
		if r := recover(); r != nil {
			web.LogCrash(r)
		}
	}()

	var th theme
	if _, err := toml.Decode(themeTOML, &th); err != nil {
		panic(fmt.Sprintf("theme: %v", err))
	}
	pal := palette{
		bg:     th.color("background"),
		header: th.color("header"),
		text:   th.color("text"),
		accent: th.color("accent"),
		dim:    th.color("dim"),
		link:   th.color("link"),
		warn:   th.color("warn"),
		good:   th.color("good"),
	}

	host := web.Browser()

	dom, err := backend.NewDOM(host, backend.WithTitle(th.Title))
	if err != nil {
		panic(err)
	}
	buf := backend.NewSizedBuffer(host)

	// Small canvas strip below the grid, driven from its own buffer
	strip, err := backend.NewCanvas(host, backend.WithCanvasSize(300, 38))
	if err != nil {
		panic(err)
	}
	mini := grid.NewBuffer(strip.GridSize())

	host.OnResize(func() {
		w, h := backend.ViewportGridSize(host)
		dom.Resize(w, h)
		buf.Resize(w, h)
	})

	frame := 0
	var tick func(now float64)
	tick = func(now float64) {
		frame++

		render(buf, frame, pal)
		if err := dom.Flush(buf); err != nil {
			panic(err)
		}

		renderStrip(mini, frame, pal)
		if err := strip.Flush(mini); err != nil {
			panic(err)
		}

		host.RequestFrame(tick)
	}
	host.RequestFrame(tick)

	select {}
}

func render(buf *grid.Buffer, frame int, pal palette) {
	w, h := buf.Size()
	buf.Fill(grid.Cell{Symbol: " ", Fg: pal.text, Bg: pal.bg})

	// Header bar
	fillRow(buf, 0, grid.Cell{Symbol: " ", Fg: pal.accent, Bg: pal.header})
	buf.SetText(1, 0, "WEBGRID DEMO", pal.accent, pal.header, grid.AttrBold)
	size := fmt.Sprintf("%dx%d cells", w, h)
	buf.SetText(w-len(size)-1, 0, size, pal.dim, pal.header, grid.AttrNone)

	if h < 12 {
		return
	}

	// Animated hue band
	buf.SetText(1, 2, "Colors:", pal.dim, pal.bg, grid.AttrNone)
	for x := 1; x < w-1; x++ {
		hue := math.Mod(float64(x-1)*360/float64(w)+float64(frame), 360)
		r, g, b := colorful.Hsv(hue, 0.7, 0.9).RGB255()
		bg := tcell.NewRGBColor(int32(r), int32(g), int32(b))
		buf.Set(x, 3, grid.Cell{Symbol: " ", Fg: pal.text, Bg: bg})
	}

	// Spinner, on a braille glyph so the cell keeps tabular metrics
	buf.SetText(1, 5, "Working "+spinnerGlyphs[(frame/6)%len(spinnerGlyphs)], pal.good, pal.bg, grid.AttrNone)

	// Modifier showcase
	x := buf.SetText(1, 7, "bold", pal.text, pal.bg, grid.AttrBold)
	x = buf.SetText(x+1, 7, "italic", pal.text, pal.bg, grid.AttrItalic)
	x = buf.SetText(x+1, 7, "underline", pal.text, pal.bg, grid.AttrUnderline)
	x = buf.SetText(x+1, 7, "strike", pal.text, pal.bg, grid.AttrStrikethrough)
	x = buf.SetText(x+1, 7, "dim", pal.text, pal.bg, grid.AttrDim)
	x = buf.SetText(x+1, 7, "reverse", pal.text, pal.bg, grid.AttrReverse)
	buf.SetText(x+1, 7, "hidden", pal.warn, pal.bg, grid.AttrHidden)

	// Wide glyphs share rows with narrow ones without drifting
	buf.SetText(1, 9, "Width: 漢字 mixed with ascii", pal.text, pal.bg, grid.AttrNone)

	buf.SetLink(1, 11, "https://github.com/lixenwraith/webgrid", pal.link, pal.bg, grid.AttrUnderline)
}

// renderStrip draws the canvas band: a hue wave and a frame counter
func renderStrip(buf *grid.Buffer, frame int, pal palette) {
	w, h := buf.Size()
	buf.Fill(grid.Cell{Symbol: " ", Fg: pal.text, Bg: pal.bg})

	for x := 0; x < w; x++ {
		hue := math.Mod(float64(x)*360/float64(w)+float64(frame*2), 360)
		r, g, b := colorful.Hsv(hue, 0.8, 0.8).RGB255()
		bg := tcell.NewRGBColor(int32(r), int32(g), int32(b))
		buf.Set(x, h-1, grid.Cell{Symbol: " ", Fg: pal.text, Bg: bg})
	}
	buf.SetText(0, 0, fmt.Sprintf("canvas frame %d", frame), pal.text, pal.bg, grid.AttrBold)
}

func fillRow(buf *grid.Buffer, y int, c grid.Cell) {
	w, _ := buf.Size()
	for x := 0; x < w; x++ {
		buf.Set(x, y, c)
	}
}
