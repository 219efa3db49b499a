package web

import (
	"fmt"
	"html"
	"strings"
)

// MemHost is an in-memory Host for tests and native tools.
// Not goroutine-safe; the rendering model is single-threaded.
type MemHost struct {
	Doc    *MemDocument
	DocErr error // When set, Document fails (simulates missing document)

	ViewportW, ViewportH int
	ScreenW, ScreenH     int
	Mobile               bool
	SizeErr              error // When set, geometry queries fail

	Title string

	resizeFns []func()
	frameFn   func(now float64)
}

// NewMemHost creates a host with a fresh document and desktop-like geometry
func NewMemHost() *MemHost {
	return &MemHost{
		Doc:       NewMemDocument(),
		ViewportW: 1280,
		ViewportH: 950,
		ScreenW:   430,
		ScreenH:   932,
	}
}

func (h *MemHost) Document() (Document, error) {
	if h.DocErr != nil {
		return nil, h.DocErr
	}
	return h.Doc, nil
}

func (h *MemHost) ViewportSize() (int, int, error) {
	if h.SizeErr != nil {
		return 0, 0, h.SizeErr
	}
	return h.ViewportW, h.ViewportH, nil
}

func (h *MemHost) ScreenSize() (int, int, error) {
	if h.SizeErr != nil {
		return 0, 0, h.SizeErr
	}
	return h.ScreenW, h.ScreenH, nil
}

func (h *MemHost) Handheld() bool {
	return h.Mobile
}

func (h *MemHost) SetTitle(title string) {
	h.Title = title
}

func (h *MemHost) OnResize(fn func()) {
	h.resizeFns = append(h.resizeFns, fn)
}

func (h *MemHost) RequestFrame(fn func(now float64)) {
	h.frameFn = fn
}

// FireResize invokes every registered resize callback
func (h *MemHost) FireResize() {
	for _, fn := range h.resizeFns {
		fn()
	}
}

// StepFrame fires the pending frame callback, if any.
// Returns false when no frame was scheduled.
func (h *MemHost) StepFrame(now float64) bool {
	fn := h.frameFn
	if fn == nil {
		return false
	}
	h.frameFn = nil
	fn(now)
	return true
}

// MemDocument is an in-memory document with a body element
type MemDocument struct {
	body *MemElement

	Created   int   // Elements created so far
	FailAfter int   // When > 0, CreateElement fails once Created reaches it
	CtxErr    error // Copied into created canvases; their Context2D fails
}

// NewMemDocument creates a document with an empty body
func NewMemDocument() *MemDocument {
	return &MemDocument{body: newMemElement("body")}
}

func (d *MemDocument) CreateElement(tag string) (Element, error) {
	if d.FailAfter > 0 && d.Created >= d.FailAfter {
		return nil, fmt.Errorf("create %q: %w", tag, ErrCreate)
	}
	d.Created++

	tag = strings.ToLower(tag)
	el := newMemElement(tag)
	if tag == "canvas" {
		return &MemCanvas{MemElement: el, CtxErr: d.CtxErr}, nil
	}
	return el, nil
}

func (d *MemDocument) ElementByID(id string) (Element, bool) {
	// Like the browser, only attached elements are found
	el := d.body.findByID(id)
	if el == nil {
		return nil, false
	}
	return el, true
}

func (d *MemDocument) Body() (Element, bool) {
	return d.body, true
}

// BodyElement returns the body for direct tree inspection in tests
func (d *MemDocument) BodyElement() *MemElement {
	return d.body
}

type memAttr struct {
	name  string
	value string
}

// MemElement is an in-memory element recording every surface mutation
type MemElement struct {
	tag      string
	text     string
	attrs    []memAttr // Insertion-ordered
	children []*MemElement

	// Mutation counters for minimal-write assertions
	SetAttrCalls    int
	RemoveAttrCalls int
	TextCalls       int
}

func newMemElement(tag string) *MemElement {
	return &MemElement{tag: tag}
}

// memNoded lets MemElement and MemCanvas share tree operations
type memNoded interface {
	mem() *MemElement
}

func (e *MemElement) mem() *MemElement {
	return e
}

func (e *MemElement) Tag() string {
	return e.tag
}

func (e *MemElement) SetTextContent(s string) {
	e.TextCalls++
	e.text = s
	e.children = nil // Text content replaces all children
}

func (e *MemElement) TextContent() string {
	if len(e.children) == 0 {
		return e.text
	}
	var sb strings.Builder
	sb.WriteString(e.text)
	for _, c := range e.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

func (e *MemElement) Attribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

func (e *MemElement) SetAttribute(name, value string) error {
	e.SetAttrCalls++
	for i, a := range e.attrs {
		if a.name == name {
			e.attrs[i].value = value
			return nil
		}
	}
	e.attrs = append(e.attrs, memAttr{name: name, value: value})
	return nil
}

func (e *MemElement) RemoveAttribute(name string) {
	e.RemoveAttrCalls++
	for i, a := range e.attrs {
		if a.name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

func (e *MemElement) AppendChild(child Element) error {
	mc, ok := child.(memNoded)
	if !ok {
		return fmt.Errorf("append to <%s>: child is not a memory element", e.tag)
	}
	e.children = append(e.children, mc.mem())
	return nil
}

// Children returns the child elements for tree inspection
func (e *MemElement) Children() []*MemElement {
	return e.children
}

// Child returns the i-th child, nil when out of range
func (e *MemElement) Child(i int) *MemElement {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

func (e *MemElement) findByID(id string) *MemElement {
	if v, ok := e.Attribute("id"); ok && v == id {
		return e
	}
	for _, c := range e.children {
		if found := c.findByID(id); found != nil {
			return found
		}
	}
	return nil
}

// HTML serializes the subtree for inspection and tooling output
func (e *MemElement) HTML() string {
	var sb strings.Builder
	e.writeHTML(&sb)
	return sb.String()
}

func (e *MemElement) writeHTML(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.tag)
	for _, a := range e.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	sb.WriteString(html.EscapeString(e.text))
	for _, c := range e.children {
		c.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.tag)
	sb.WriteByte('>')
}

// MemCanvas is an in-memory canvas recording draw operations
type MemCanvas struct {
	*MemElement

	pixelW, pixelH int
	ctx            *MemContext2D
	CtxErr         error // When set, Context2D fails
}

func (c *MemCanvas) SetPixelSize(width, height int) {
	c.pixelW, c.pixelH = width, height
}

func (c *MemCanvas) PixelSize() (int, int) {
	return c.pixelW, c.pixelH
}

func (c *MemCanvas) Context2D() (Context2D, error) {
	if c.CtxErr != nil {
		return nil, c.CtxErr
	}
	if c.ctx == nil {
		c.ctx = &MemContext2D{}
	}
	return c.ctx, nil
}

// Ctx returns the recorded context for inspection, nil before first use
func (c *MemCanvas) Ctx() *MemContext2D {
	return c.ctx
}

// MemContext2D records draw calls as formatted op strings
type MemContext2D struct {
	Font      string
	FillStyle string
	Ops       []string
}

func (c *MemContext2D) SetFont(font string) {
	c.Font = font
	c.Ops = append(c.Ops, "font="+font)
}

func (c *MemContext2D) SetFillStyle(style string) {
	c.FillStyle = style
	c.Ops = append(c.Ops, "fillStyle="+style)
}

func (c *MemContext2D) FillRect(x, y, w, h float64) {
	c.Ops = append(c.Ops, fmt.Sprintf("fillRect(%g,%g,%g,%g)", x, y, w, h))
}

func (c *MemContext2D) ClearRect(x, y, w, h float64) {
	c.Ops = append(c.Ops, fmt.Sprintf("clearRect(%g,%g,%g,%g)", x, y, w, h))
}

func (c *MemContext2D) FillText(text string, x, y float64) {
	c.Ops = append(c.Ops, fmt.Sprintf("fillText(%q,%g,%g)", text, x, y))
}
