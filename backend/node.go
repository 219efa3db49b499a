package backend

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/webgrid/grid"
	"github.com/lixenwraith/webgrid/web"
)

// newGlyphNode creates the span rendering a single cell. Creation failure
// is structural: rendering cannot proceed without a working document.
func newGlyphNode(doc web.Document, c grid.Cell) (web.Element, error) {
	span, err := doc.CreateElement("span")
	if err != nil {
		return nil, err
	}
	span.SetTextContent(c.Symbol)
	if err := span.SetAttribute(styleAttr, CellStyle(c)); err != nil {
		return nil, err
	}
	return span, nil
}

// newLinkNode creates a single anchor spanning a run of link cells.
// The concatenated symbols are both the link target and the visible text.
func newLinkNode(doc web.Document, cells []grid.Cell) (web.Element, error) {
	a, err := doc.CreateElement("a")
	if err != nil {
		return nil, err
	}
	text := linkText(cells)
	a.SetTextContent(text)
	if err := a.SetAttribute("href", text); err != nil {
		return nil, err
	}
	if len(cells) > 0 {
		if err := a.SetAttribute(styleAttr, BuildInline(linkProperties(cells))); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// linkText concatenates the run's symbols
func linkText(cells []grid.Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteString(c.Symbol)
	}
	return sb.String()
}

// linkProperties styles a link run: the first cell's composition with the
// width widened to cover the whole run, since the anchor replaces every
// cell node in it
func linkProperties(cells []grid.Cell) []Property {
	props := CellProperties(cells[0])
	total := 0
	for _, c := range cells {
		total += c.Width()
	}
	for i := range props {
		if props[i].Name == "width" {
			props[i].Value = strconv.Itoa(total) + "ch"
		}
	}
	return props
}
