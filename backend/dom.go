package backend

import (
	"fmt"

	"github.com/lixenwraith/webgrid/grid"
	"github.com/lixenwraith/webgrid/web"
)

// containerID is the id of the grid container div
const containerID = "grid"

// Option configures the DOM backend
type Option func(*DOM)

// WithParentID mounts the grid under the element with the given id
// instead of the document body
func WithParentID(id string) Option {
	return func(d *DOM) { d.parentID = id }
}

// WithLinks toggles anchor rendering for hyperlink runs (default on)
func WithLinks(enabled bool) Option {
	return func(d *DOM) { d.links = enabled }
}

// WithTitle sets the page title at construction
func WithTitle(title string) Option {
	return func(d *DOM) { d.title = title }
}

// domNode is one surface node covering span consecutive cells
type domNode struct {
	el    web.Element
	start int // First covered column
	span  int // Covered cell count (1 for glyph nodes)
}

// DOM renders the grid as a container div of row divs holding one span
// per cell, with hyperlink runs collapsed into single anchors. The first
// flush builds the node tree; later flushes diff against the previous
// frame and patch only nodes whose cells changed.
type DOM struct {
	host web.Host
	doc  web.Document

	parentID string
	links    bool
	title    string

	root   web.Element
	nodes  [][]domNode
	prev   [][]grid.Cell
	width  int
	height int
}

// NewDOM creates a DOM backend on the given host. Failing to acquire the
// document is fatal: there is no surface to render to.
func NewDOM(host web.Host, opts ...Option) (*DOM, error) {
	d := &DOM{
		host:  host,
		links: true,
	}
	for _, opt := range opts {
		opt(d)
	}

	doc, err := host.Document()
	if err != nil {
		return nil, fmt.Errorf("dom backend: %w", err)
	}
	d.doc = doc

	if d.title != "" {
		host.SetTitle(d.title)
	}

	d.width, d.height = ViewportGridSize(host)
	return d, nil
}

// GridSize returns the current grid dimensions in cells
func (d *DOM) GridSize() (cols, rows int) {
	return d.width, d.height
}

// Resize adopts new dimensions and drops the node tree; the next flush
// repaints from scratch
func (d *DOM) Resize(cols, rows int) {
	d.width = cols
	d.height = rows
	d.nodes = nil
	d.prev = nil
}

// Flush renders the buffer. Only cells that differ from the previous
// frame cause surface writes. A buffer whose dimensions differ from the
// backend grid triggers a full rebuild at the buffer's size.
func (d *DOM) Flush(buf *grid.Buffer) error {
	w, h := buf.Size()
	if d.nodes == nil || w != d.width || h != d.height {
		d.width, d.height = w, h
		return d.rebuild(buf)
	}

	// Link bits moving between cells change node structure, not node
	// content; repaint from scratch rather than splicing the tree
	if d.links && d.linkTopologyChanged(buf) {
		return d.rebuild(buf)
	}

	for y := 0; y < h; y++ {
		for i := range d.nodes[y] {
			n := &d.nodes[y][i]
			var err error
			if n.span == 1 {
				err = d.patchGlyph(buf, n, y)
			} else {
				err = d.patchLink(buf, n, y)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// patchGlyph converges a single-cell span on the buffer contents
func (d *DOM) patchGlyph(buf *grid.Buffer, n *domNode, y int) error {
	c := buf.Get(n.start, y)
	p := d.prev[y][n.start]
	if c == p {
		return nil
	}
	if c.Symbol != p.Symbol {
		n.el.SetTextContent(c.Symbol)
	}
	if err := PatchStyle(n.el, CellProperties(c)); err != nil {
		return fmt.Errorf("dom backend: cell (%d,%d): %w", n.start, y, err)
	}
	d.prev[y][n.start] = c
	return nil
}

// patchLink converges a run anchor on the buffer contents
func (d *DOM) patchLink(buf *grid.Buffer, n *domNode, y int) error {
	changed := false
	for i := 0; i < n.span; i++ {
		if buf.Get(n.start+i, y) != d.prev[y][n.start+i] {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	run := runCells(buf, n.start, y, n.span)
	text := linkText(run)
	if text != n.el.TextContent() {
		n.el.SetTextContent(text)
		if err := n.el.SetAttribute("href", text); err != nil {
			return fmt.Errorf("dom backend: link (%d,%d): %w", n.start, y, err)
		}
	}
	if err := PatchStyle(n.el, linkProperties(run)); err != nil {
		return fmt.Errorf("dom backend: link (%d,%d): %w", n.start, y, err)
	}
	for i := 0; i < n.span; i++ {
		d.prev[y][n.start+i] = buf.Get(n.start+i, y)
	}
	return nil
}

// linkTopologyChanged reports whether any cell gained or lost its link bit
func (d *DOM) linkTopologyChanged(buf *grid.Buffer) bool {
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			if (buf.Get(x, y).Attrs^d.prev[y][x].Attrs)&grid.AttrLink != 0 {
				return true
			}
		}
	}
	return false
}

// rebuild constructs the whole node tree detached and swaps it onto the
// surface only when complete, so a mid-build creation failure leaves no
// partial frame attached
func (d *DOM) rebuild(buf *grid.Buffer) error {
	parent, err := mountPoint(d.doc, d.parentID)
	if err != nil {
		return fmt.Errorf("dom backend: %w", err)
	}

	first := d.root == nil
	root := d.root
	if first {
		root, err = d.doc.CreateElement("div")
		if err != nil {
			return fmt.Errorf("dom backend: %w", err)
		}
		if err := root.SetAttribute("id", containerID); err != nil {
			return fmt.Errorf("dom backend: %w", err)
		}
	}

	rows := make([]web.Element, d.height)
	nodes := make([][]domNode, d.height)
	prev := make([][]grid.Cell, d.height)
	for y := 0; y < d.height; y++ {
		row, err := d.doc.CreateElement("div")
		if err != nil {
			return fmt.Errorf("dom backend: %w", err)
		}
		rowNodes, err := d.buildRow(buf, row, y)
		if err != nil {
			return err
		}
		rows[y] = row
		nodes[y] = rowNodes
		prev[y] = make([]grid.Cell, d.width)
		for x := 0; x < d.width; x++ {
			prev[y][x] = buf.Get(x, y)
		}
	}

	// Every node exists; swap the surface content
	root.SetTextContent("")
	for _, row := range rows {
		if err := root.AppendChild(row); err != nil {
			return fmt.Errorf("dom backend: %w", err)
		}
	}
	if first {
		if err := parent.AppendChild(root); err != nil {
			return fmt.Errorf("dom backend: %w", err)
		}
		d.root = root
	}

	d.nodes = nodes
	d.prev = prev
	return nil
}

// buildRow creates the nodes for one row, grouping link runs
func (d *DOM) buildRow(buf *grid.Buffer, row web.Element, y int) ([]domNode, error) {
	nodes := make([]domNode, 0, d.width)
	x := 0
	for x < d.width {
		c := buf.Get(x, y)
		if d.links && c.Attrs&grid.AttrLink != 0 {
			span := d.runLength(buf, x, y)
			el, err := newLinkNode(d.doc, runCells(buf, x, y, span))
			if err != nil {
				return nil, fmt.Errorf("dom backend: %w", err)
			}
			if err := row.AppendChild(el); err != nil {
				return nil, fmt.Errorf("dom backend: %w", err)
			}
			nodes = append(nodes, domNode{el: el, start: x, span: span})
			x += span
			continue
		}

		el, err := newGlyphNode(d.doc, c)
		if err != nil {
			return nil, fmt.Errorf("dom backend: %w", err)
		}
		if err := row.AppendChild(el); err != nil {
			return nil, fmt.Errorf("dom backend: %w", err)
		}
		nodes = append(nodes, domNode{el: el, start: x, span: 1})
		x++
	}
	return nodes, nil
}

// runLength measures the maximal link run starting at (x, y)
func (d *DOM) runLength(buf *grid.Buffer, x, y int) int {
	span := 0
	for x+span < d.width && buf.Get(x+span, y).Attrs&grid.AttrLink != 0 {
		span++
	}
	return span
}

// runCells copies the cells covered by a run
func runCells(buf *grid.Buffer, x, y, span int) []grid.Cell {
	cells := make([]grid.Cell, span)
	for i := range cells {
		cells[i] = buf.Get(x+i, y)
	}
	return cells
}

// mountPoint resolves where a backend attaches its surface
func mountPoint(doc web.Document, parentID string) (web.Element, error) {
	if parentID != "" {
		el, ok := doc.ElementByID(parentID)
		if !ok {
			return nil, fmt.Errorf("mount %q: %w", parentID, web.ErrNoElement)
		}
		return el, nil
	}
	body, ok := doc.Body()
	if !ok {
		return nil, web.ErrNoBody
	}
	return body, nil
}
