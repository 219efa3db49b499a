// Usage examples:
//
// # Dump a highlighted Go file as a static HTML grid
// ./htmldump -s monokai main.go > main.html
//
// # Render the built-in sample with another style
// ./htmldump -s dracula > sample.html
package main

import (
	"flag"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/webgrid/backend"
	"github.com/lixenwraith/webgrid/grid"
	"github.com/lixenwraith/webgrid/web"
)

const tabWidth = 4

const sample = `package main

import "fmt"

// Greet builds a short greeting
func Greet(name string) string {
	return fmt.Sprintf("hello, %s", name)
}

func main() {
	fmt.Println(Greet("grid"))
}
`

func main() {
	var styleName string
	var maxWidth int

	flag.StringVar(&styleName, "s", "monokai", "Chroma style name")
	flag.IntVar(&maxWidth, "w", 120, "Maximum grid width in cells")
	flag.Parse()

	source := sample
	name := "sample.go"
	if flag.NArg() > 0 {
		name = flag.Arg(0)
		data, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
			os.Exit(1)
		}
		source = string(data)
	}

	page, err := render(source, name, styleName, maxWidth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(page)
}

// render highlights the source and flushes it through the DOM backend
// onto an in-memory document, returning the serialized page
func render(source, name, styleName string, maxWidth int) (string, error) {
	source = strings.ReplaceAll(source, "\t", strings.Repeat(" ", tabWidth))

	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Get("go")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}

	w, h := gridSize(source, maxWidth)
	buf := grid.NewBuffer(w, h)

	x, y := 0, 0
	for _, token := range iterator.Tokens() {
		fg, attrs := tokenStyle(style, token.Type)
		for _, part := range strings.SplitAfter(token.Value, "\n") {
			if part == "" {
				continue
			}
			line, wrapped := strings.CutSuffix(part, "\n")
			if line != "" {
				x = buf.SetText(x, y, line, fg, tcell.ColorDefault, attrs)
			}
			if wrapped {
				x = 0
				y++
			}
		}
	}

	host := web.NewMemHost()
	dom, err := backend.NewDOM(host, backend.WithTitle(name))
	if err != nil {
		return "", err
	}
	if err := dom.Flush(buf); err != nil {
		return "", err
	}

	bg := backend.CanvasColor(backgroundColor(style), tcell.ColorBlack)
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(name))
	fmt.Fprintf(&sb, "<style>body { background: %s; font-family: monospace; white-space: pre; }</style>\n", bg)
	sb.WriteString("</head>\n")
	sb.WriteString(host.Doc.BodyElement().HTML())
	sb.WriteString("\n</html>\n")
	return sb.String(), nil
}

// gridSize fits the grid to the source: widest line by display width,
// one row per line
func gridSize(source string, maxWidth int) (int, int) {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	w := 1
	for _, line := range lines {
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	if w > maxWidth {
		w = maxWidth
	}

	h := len(lines)
	if h < 1 {
		h = 1
	}
	return w, h
}

// tokenStyle maps a highlight entry onto cell attributes
func tokenStyle(style *chroma.Style, ttype chroma.TokenType) (tcell.Color, grid.Attr) {
	entry := style.Get(ttype)

	fg := tcell.ColorDefault
	if entry.Colour.IsSet() {
		fg = tcell.NewRGBColor(
			int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue()),
		)
	}

	var attrs grid.Attr
	if entry.Bold == chroma.Yes {
		attrs |= grid.AttrBold
	}
	if entry.Italic == chroma.Yes {
		attrs |= grid.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		attrs |= grid.AttrUnderline
	}
	return fg, attrs
}

// backgroundColor extracts the style's page background
func backgroundColor(style *chroma.Style) tcell.Color {
	entry := style.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(
		int32(entry.Background.Red()), int32(entry.Background.Green()), int32(entry.Background.Blue()),
	)
}
