// Package web abstracts the browser environment behind capability
// interfaces. Rendering backends receive a Host explicitly instead of
// touching globals, which allows them to run against both a real browser
// (syscall/js, wasm builds) and an in-memory document (tests, native tools).
package web

import (
	"errors"
)

// Environment acquisition and mutation errors
var (
	ErrNoWindow   = errors.New("window unavailable")
	ErrNoDocument = errors.New("document unavailable")
	ErrNoBody     = errors.New("document body unavailable")
	ErrNoElement  = errors.New("element not found")
	ErrNoScreen   = errors.New("screen geometry unavailable")
	ErrNoCanvas   = errors.New("canvas context unavailable")
	ErrCreate     = errors.New("element creation failed")
)

// Host provides access to the hosting environment.
// Geometry queries may fail (headless contexts, detached windows); callers
// treat that as non-fatal and fall back to a fixed grid. Document access
// failure is fatal for rendering.
type Host interface {
	// Document returns the page document
	Document() (Document, error)

	// ViewportSize returns the window inner dimensions in pixels
	ViewportSize() (width, height int, err error)

	// ScreenSize returns the device screen dimensions in pixels
	ScreenSize() (width, height int, err error)

	// Handheld reports whether the device class is a handheld (phone/tablet)
	Handheld() bool

	// SetTitle sets the page title
	SetTitle(title string)

	// OnResize registers a callback for viewport resize events
	OnResize(fn func())

	// RequestFrame schedules fn for the next paint; one-shot, re-register
	// from within the callback to run a frame loop
	RequestFrame(fn func(now float64))
}

// Document creates and locates elements
type Document interface {
	// CreateElement creates a detached element. Elements created with the
	// "canvas" tag additionally implement Canvas
	CreateElement(tag string) (Element, error)

	// ElementByID locates an element by its id attribute
	ElementByID(id string) (Element, bool)

	// Body returns the document body
	Body() (Element, bool)
}

// Element is a node in the document tree
type Element interface {
	// Tag returns the lowercase tag name
	Tag() string

	// SetTextContent replaces the element's children with a single text node
	SetTextContent(s string)
	TextContent() string

	// Attribute returns the attribute value and whether it is present
	Attribute(name string) (string, bool)
	SetAttribute(name, value string) error
	RemoveAttribute(name string)

	// AppendChild attaches a child created by the same document
	AppendChild(child Element) error
}

// Canvas is a fixed-pixel drawing surface
type Canvas interface {
	Element

	// SetPixelSize sets the backing raster dimensions
	SetPixelSize(width, height int)
	PixelSize() (width, height int)

	// Context2D returns the 2D drawing context
	Context2D() (Context2D, error)
}

// Context2D is the minimal 2D drawing surface used by the canvas backend
type Context2D interface {
	SetFont(font string)
	SetFillStyle(style string)
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillText(text string, x, y float64)
}
