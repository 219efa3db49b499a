//go:build wasm

package web

import (
	"fmt"
	"strings"
	"syscall/js"
)

// User agent fragments identifying handheld devices
var handheldMarkers = []string{
	"android", "webos", "iphone", "ipad", "ipod",
	"blackberry", "iemobile", "opera mini",
}

// Browser returns a Host backed by the real browser environment
func Browser() Host {
	return &jsHost{global: js.Global()}
}

type jsHost struct {
	global js.Value
}

// jsValued exposes the underlying js.Value of browser-backed elements
type jsValued interface {
	value() js.Value
}

func (h *jsHost) Document() (Document, error) {
	doc := h.global.Get("document")
	if !doc.Truthy() {
		return nil, ErrNoDocument
	}
	return jsDocument{v: doc}, nil
}

func (h *jsHost) ViewportSize() (int, int, error) {
	w := h.global.Get("innerWidth")
	ht := h.global.Get("innerHeight")
	if w.Type() != js.TypeNumber || ht.Type() != js.TypeNumber {
		return 0, 0, ErrNoWindow
	}
	return w.Int(), ht.Int(), nil
}

func (h *jsHost) ScreenSize() (int, int, error) {
	screen := h.global.Get("screen")
	if !screen.Truthy() {
		return 0, 0, ErrNoScreen
	}
	w := screen.Get("width")
	ht := screen.Get("height")
	if w.Type() != js.TypeNumber || ht.Type() != js.TypeNumber {
		return 0, 0, ErrNoScreen
	}
	return w.Int(), ht.Int(), nil
}

func (h *jsHost) Handheld() bool {
	nav := h.global.Get("navigator")
	if !nav.Truthy() {
		return false
	}
	ua := nav.Get("userAgent")
	if ua.Type() != js.TypeString {
		return false
	}
	agent := strings.ToLower(ua.String())
	for _, marker := range handheldMarkers {
		if strings.Contains(agent, marker) {
			return true
		}
	}
	return false
}

func (h *jsHost) SetTitle(title string) {
	doc := h.global.Get("document")
	if doc.Truthy() {
		doc.Set("title", title)
	}
}

// OnResize registers a window resize listener.
// The callback is retained for the page lifetime.
func (h *jsHost) OnResize(fn func()) {
	cb := js.FuncOf(func(_ js.Value, _ []js.Value) any {
		fn()
		return nil
	})
	h.global.Call("addEventListener", "resize", cb)
}

// RequestFrame schedules a one-shot requestAnimationFrame callback.
// The js.Func is released when it fires.
func (h *jsHost) RequestFrame(fn func(now float64)) {
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		now := 0.0
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			now = args[0].Float()
		}
		cb.Release()
		fn(now)
		return nil
	})
	h.global.Call("requestAnimationFrame", cb)
}

type jsDocument struct {
	v js.Value
}

func (d jsDocument) CreateElement(tag string) (el Element, err error) {
	// createElement throws on invalid tag names; surface that as an error
	// instead of unwinding through the frame callback
	defer func() {
		if r := recover(); r != nil {
			el = nil
			err = fmt.Errorf("create %q: %w: %v", tag, ErrCreate, r)
		}
	}()

	v := d.v.Call("createElement", tag)
	if !v.Truthy() {
		return nil, fmt.Errorf("create %q: %w", tag, ErrCreate)
	}
	base := jsElement{v: v}
	if strings.EqualFold(tag, "canvas") {
		return jsCanvas{jsElement: base}, nil
	}
	return base, nil
}

func (d jsDocument) ElementByID(id string) (Element, bool) {
	v := d.v.Call("getElementById", id)
	if !v.Truthy() {
		return nil, false
	}
	return jsElement{v: v}, true
}

func (d jsDocument) Body() (Element, bool) {
	v := d.v.Get("body")
	if !v.Truthy() {
		return nil, false
	}
	return jsElement{v: v}, true
}

type jsElement struct {
	v js.Value
}

func (e jsElement) value() js.Value {
	return e.v
}

func (e jsElement) Tag() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e jsElement) SetTextContent(s string) {
	e.v.Set("textContent", s)
}

func (e jsElement) TextContent() string {
	t := e.v.Get("textContent")
	if t.Type() != js.TypeString {
		return ""
	}
	return t.String()
}

func (e jsElement) Attribute(name string) (string, bool) {
	a := e.v.Call("getAttribute", name)
	if a.Type() != js.TypeString {
		return "", false
	}
	return a.String(), true
}

func (e jsElement) SetAttribute(name, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("set attribute %q: %v", name, r)
		}
	}()
	e.v.Call("setAttribute", name, value)
	return nil
}

func (e jsElement) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

func (e jsElement) AppendChild(child Element) error {
	jc, ok := child.(jsValued)
	if !ok {
		return fmt.Errorf("append to <%s>: child is not a browser element", e.Tag())
	}
	e.v.Call("appendChild", jc.value())
	return nil
}

type jsCanvas struct {
	jsElement
}

func (c jsCanvas) SetPixelSize(width, height int) {
	c.v.Set("width", width)
	c.v.Set("height", height)
}

func (c jsCanvas) PixelSize() (int, int) {
	return c.v.Get("width").Int(), c.v.Get("height").Int()
}

func (c jsCanvas) Context2D() (Context2D, error) {
	ctx := c.v.Call("getContext", "2d")
	if !ctx.Truthy() {
		return nil, ErrNoCanvas
	}
	return jsContext2D{v: ctx}, nil
}

type jsContext2D struct {
	v js.Value
}

func (c jsContext2D) SetFont(font string) {
	c.v.Set("font", font)
}

func (c jsContext2D) SetFillStyle(style string) {
	c.v.Set("fillStyle", style)
}

func (c jsContext2D) FillRect(x, y, w, h float64) {
	c.v.Call("fillRect", x, y, w, h)
}

func (c jsContext2D) ClearRect(x, y, w, h float64) {
	c.v.Call("clearRect", x, y, w, h)
}

func (c jsContext2D) FillText(text string, x, y float64) {
	c.v.Call("fillText", text, x, y)
}
