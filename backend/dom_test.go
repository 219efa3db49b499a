package backend

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/webgrid/grid"
	"github.com/lixenwraith/webgrid/web"
)

// gridRoot returns the container div after at least one flush
func gridRoot(t *testing.T, host *web.MemHost) *web.MemElement {
	t.Helper()
	root := host.Doc.BodyElement().Child(0)
	if root == nil {
		t.Fatal("Expected grid container under body")
	}
	if id, _ := root.Attribute("id"); id != "grid" {
		t.Fatalf("Expected container id %q, got %q", "grid", id)
	}
	return root
}

func TestDOMFirstPaint(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(3, 2)
	buf.SetText(0, 0, "hi!", tcell.ColorGreen, tcell.ColorDefault, grid.AttrBold)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	if w, h := d.GridSize(); w != 3 || h != 2 {
		t.Errorf("Expected backend to adopt buffer size 3x2, got %dx%d", w, h)
	}

	body := host.Doc.BodyElement()
	if len(body.Children()) != 1 {
		t.Fatalf("Expected one container under body, got %d children", len(body.Children()))
	}
	root := gridRoot(t, host)
	if len(root.Children()) != 2 {
		t.Fatalf("Expected 2 row divs, got %d", len(root.Children()))
	}

	for y, row := range root.Children() {
		if row.Tag() != "div" {
			t.Errorf("Expected row %d tag div, got %q", y, row.Tag())
		}
		if len(row.Children()) != 3 {
			t.Errorf("Expected 3 spans in row %d, got %d", y, len(row.Children()))
		}
	}

	row := root.Child(0)
	wantText := []string{"h", "i", "!"}
	wantStyle := "color: rgb(0, 128, 0);background-color: transparent;font-weight: bold;display: inline-block;width: 1ch;"
	for x, want := range wantText {
		cell := row.Child(x)
		if cell.Tag() != "span" {
			t.Errorf("Expected span at column %d, got %q", x, cell.Tag())
		}
		if got := cell.TextContent(); got != want {
			t.Errorf("Expected column %d text %q, got %q", x, want, got)
		}
		if got, _ := cell.Attribute("style"); got != wantStyle {
			t.Errorf("Expected column %d style %q, got %q", x, wantStyle, got)
		}
	}

	if got := root.Child(1).Child(0).TextContent(); got != " " {
		t.Errorf("Expected untouched cell to render a space, got %q", got)
	}
}

func TestDOMGridSizeFromHost(t *testing.T) {
	host := web.NewMemHost()
	host.ViewportW, host.ViewportH = 1000, 190

	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}
	if w, h := d.GridSize(); w != 100 || h != 10 {
		t.Errorf("Expected viewport-derived grid 100x10, got %dx%d", w, h)
	}

	host.Mobile = true
	host.ScreenW, host.ScreenH = 400, 950
	d, err = NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}
	if w, h := d.GridSize(); w != 40 || h != 50 {
		t.Errorf("Expected screen-derived grid 40x50, got %dx%d", w, h)
	}
}

func TestDOMIdenticalFlushWritesNothing(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(4, 2)
	buf.SetText(0, 0, "text", tcell.ColorSilver, tcell.ColorNavy, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected first flush to succeed, got %v", err)
	}
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected second flush to succeed, got %v", err)
	}

	root := gridRoot(t, host)
	if root.TextCalls != 1 {
		t.Errorf("Expected no rebuild on identical flush, got %d root writes", root.TextCalls)
	}
	for y, row := range root.Children() {
		for x, cell := range row.Children() {
			if cell.TextCalls != 1 || cell.SetAttrCalls != 1 {
				t.Errorf("Expected cell (%d,%d) untouched after identical flush, got %d text / %d attr writes",
					x, y, cell.TextCalls, cell.SetAttrCalls)
			}
		}
	}
}

func TestDOMSingleCellPatch(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(3, 1)
	buf.SetText(0, 0, "abc", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected first flush to succeed, got %v", err)
	}
	root := gridRoot(t, host)
	row := root.Child(0)

	// Symbol change only: one text write, no style write
	c := buf.Get(1, 0)
	c.Symbol = "B"
	buf.Set(1, 0, c)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	if got := row.Child(1).TextContent(); got != "B" {
		t.Errorf("Expected patched text B, got %q", got)
	}
	if row.Child(1).TextCalls != 2 {
		t.Errorf("Expected 2 text writes on changed cell, got %d", row.Child(1).TextCalls)
	}
	if row.Child(1).SetAttrCalls != 1 {
		t.Errorf("Expected no style write for unchanged declaration, got %d attr writes", row.Child(1).SetAttrCalls)
	}
	for _, x := range []int{0, 2} {
		if row.Child(x).TextCalls != 1 || row.Child(x).SetAttrCalls != 1 {
			t.Errorf("Expected cell %d untouched, got %d text / %d attr writes",
				x, row.Child(x).TextCalls, row.Child(x).SetAttrCalls)
		}
	}

	// Color change only: one style write, no text write
	c = buf.Get(2, 0)
	c.Fg = tcell.ColorRed
	buf.Set(2, 0, c)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	if row.Child(2).TextCalls != 1 {
		t.Errorf("Expected no text write for unchanged symbol, got %d", row.Child(2).TextCalls)
	}
	if row.Child(2).SetAttrCalls != 2 {
		t.Errorf("Expected 2 attr writes on recolored cell, got %d", row.Child(2).SetAttrCalls)
	}
	want := "color: rgb(255, 0, 0);background-color: transparent;display: inline-block;width: 1ch;"
	if got, _ := row.Child(2).Attribute("style"); got != want {
		t.Errorf("Expected patched style %q, got %q", want, got)
	}
}

func TestDOMPatchKeepsDeclarationShape(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(1, 1)
	buf.Set(0, 0, grid.Cell{Symbol: "x", Fg: tcell.ColorGreen, Attrs: grid.AttrBold})
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}
	cell := gridRoot(t, host).Child(0).Child(0)

	// Value update lands in position
	buf.Set(0, 0, grid.Cell{Symbol: "x", Fg: tcell.ColorRed, Attrs: grid.AttrBold})
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}
	want := "color: rgb(255, 0, 0);background-color: transparent;font-weight: bold;display: inline-block;width: 1ch;"
	if got, _ := cell.Attribute("style"); got != want {
		t.Errorf("Expected in-place color update %q, got %q", want, got)
	}

	// Dropped modifier disappears without disturbing the rest
	buf.Set(0, 0, grid.Cell{Symbol: "x", Fg: tcell.ColorRed})
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}
	want = "color: rgb(255, 0, 0);background-color: transparent;display: inline-block;width: 1ch;"
	if got, _ := cell.Attribute("style"); got != want {
		t.Errorf("Expected modifier removal %q, got %q", want, got)
	}
}

func TestDOMResizeRebuilds(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	if err := d.Flush(grid.NewBuffer(3, 2)); err != nil {
		t.Fatalf("Expected first flush to succeed, got %v", err)
	}
	root := gridRoot(t, host)

	d.Resize(2, 1)
	if err := d.Flush(grid.NewBuffer(2, 1)); err != nil {
		t.Fatalf("Expected flush after resize to succeed, got %v", err)
	}

	if got := host.Doc.BodyElement().Child(0); got != root {
		t.Error("Expected the container element to survive a rebuild")
	}
	if len(root.Children()) != 1 {
		t.Fatalf("Expected 1 row after resize, got %d", len(root.Children()))
	}
	if got := len(root.Child(0).Children()); got != 2 {
		t.Errorf("Expected 2 spans after resize, got %d", got)
	}

	// A differently sized buffer forces the same path without Resize
	if err := d.Flush(grid.NewBuffer(4, 1)); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}
	if w, h := d.GridSize(); w != 4 || h != 1 {
		t.Errorf("Expected adopted size 4x1, got %dx%d", w, h)
	}
	if got := len(root.Child(0).Children()); got != 4 {
		t.Errorf("Expected 4 spans after adoption, got %d", got)
	}
}

func TestDOMLinkRun(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(10, 1)
	buf.SetLink(2, 0, "go.dev", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	row := gridRoot(t, host).Child(0)
	if got := len(row.Children()); got != 5 {
		t.Fatalf("Expected 2 spans + anchor + 2 spans = 5 nodes, got %d", got)
	}

	a := row.Child(2)
	if a.Tag() != "a" {
		t.Fatalf("Expected anchor for link run, got %q", a.Tag())
	}
	if got := a.TextContent(); got != "go.dev" {
		t.Errorf("Expected anchor text go.dev, got %q", got)
	}
	if got, _ := a.Attribute("href"); got != "go.dev" {
		t.Errorf("Expected href go.dev, got %q", got)
	}
	want := "color: rgb(255, 255, 255);background-color: transparent;display: inline-block;width: 6ch;"
	if got, _ := a.Attribute("style"); got != want {
		t.Errorf("Expected run-wide anchor style %q, got %q", want, got)
	}

	for _, x := range []int{0, 1, 3, 4} {
		if got := row.Child(x).Tag(); got != "span" {
			t.Errorf("Expected plain span at node %d, got %q", x, got)
		}
	}
}

func TestDOMLinkContentPatch(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(8, 1)
	buf.SetLink(1, 0, "go.dev", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}
	root := gridRoot(t, host)
	a := root.Child(0).Child(1)

	// Same topology, new content: the anchor is patched in place
	buf.SetLink(1, 0, "GO.DEV", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	if root.TextCalls != 1 {
		t.Error("Expected no rebuild when link topology is stable")
	}
	if got := root.Child(0).Child(1); got != a {
		t.Error("Expected the anchor element to be patched, not replaced")
	}
	if got := a.TextContent(); got != "GO.DEV" {
		t.Errorf("Expected patched anchor text GO.DEV, got %q", got)
	}
	if got, _ := a.Attribute("href"); got != "GO.DEV" {
		t.Errorf("Expected patched href GO.DEV, got %q", got)
	}
}

func TestDOMLinkTopologyRebuild(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(6, 1)
	buf.SetLink(0, 0, "go.dev", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}
	root := gridRoot(t, host)
	if got := len(root.Child(0).Children()); got != 1 {
		t.Fatalf("Expected a single anchor node, got %d nodes", got)
	}

	// Losing the link bit changes node structure, so the tree is rebuilt
	buf.SetText(0, 0, "go.dev", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	if root.TextCalls != 2 {
		t.Errorf("Expected a rebuild after topology change, got %d root writes", root.TextCalls)
	}
	row := root.Child(0)
	if got := len(row.Children()); got != 6 {
		t.Fatalf("Expected 6 spans after topology change, got %d", got)
	}
	for x, cell := range row.Children() {
		if cell.Tag() != "span" {
			t.Errorf("Expected span at column %d, got %q", x, cell.Tag())
		}
	}
}

func TestDOMLinksDisabled(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host, WithLinks(false))
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(6, 1)
	buf.SetLink(0, 0, "go.dev", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	row := gridRoot(t, host).Child(0)
	if got := len(row.Children()); got != 6 {
		t.Fatalf("Expected 6 plain spans with links disabled, got %d nodes", got)
	}
	for x, cell := range row.Children() {
		if cell.Tag() != "span" {
			t.Errorf("Expected span at column %d, got %q", x, cell.Tag())
		}
	}
}

func TestDOMWideGlyph(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	buf := grid.NewBuffer(3, 1)
	buf.SetText(0, 0, "你", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	row := gridRoot(t, host).Child(0)
	if got := row.Child(0).TextContent(); got != "你" {
		t.Errorf("Expected wide glyph in first span, got %q", got)
	}
	wide := "color: rgb(255, 255, 255);background-color: transparent;display: inline-block;width: 2ch;"
	if got, _ := row.Child(0).Attribute("style"); got != wide {
		t.Errorf("Expected 2ch glyph span, got %q", got)
	}
	if got := row.Child(1).TextContent(); got != "" {
		t.Errorf("Expected empty shadow span, got %q", got)
	}
	shadow := "color: rgb(255, 255, 255);background-color: transparent;display: inline-block;width: 0ch;"
	if got, _ := row.Child(1).Attribute("style"); got != shadow {
		t.Errorf("Expected 0ch shadow span, got %q", got)
	}
}

func TestDOMMountOptions(t *testing.T) {
	host := web.NewMemHost()
	mount, err := host.Doc.CreateElement("div")
	if err != nil {
		t.Fatalf("Expected element creation to succeed, got %v", err)
	}
	if err := mount.SetAttribute("id", "app"); err != nil {
		t.Fatalf("Expected attribute write to succeed, got %v", err)
	}
	if err := host.Doc.BodyElement().AppendChild(mount); err != nil {
		t.Fatalf("Expected append to succeed, got %v", err)
	}

	d, err := NewDOM(host, WithParentID("app"), WithTitle("Dashboard"))
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}
	if host.Title != "Dashboard" {
		t.Errorf("Expected page title Dashboard, got %q", host.Title)
	}
	if err := d.Flush(grid.NewBuffer(1, 1)); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}

	parent := host.Doc.BodyElement().Child(0)
	if id, _ := parent.Attribute("id"); id != "app" {
		t.Fatalf("Expected grid mounted under #app, body child is %q", id)
	}
	root := parent.Child(0)
	if root == nil {
		t.Fatal("Expected container under #app")
	}
	if id, _ := root.Attribute("id"); id != "grid" {
		t.Errorf("Expected container id grid, got %q", id)
	}
}

func TestDOMMissingMountPoint(t *testing.T) {
	host := web.NewMemHost()
	d, err := NewDOM(host, WithParentID("nope"))
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}

	err = d.Flush(grid.NewBuffer(1, 1))
	if !errors.Is(err, web.ErrNoElement) {
		t.Errorf("Expected missing mount point error, got %v", err)
	}
	if len(host.Doc.BodyElement().Children()) != 0 {
		t.Error("Expected nothing attached after mount failure")
	}
}

func TestDOMDocumentUnavailable(t *testing.T) {
	host := web.NewMemHost()
	host.DocErr = web.ErrNoDocument

	if _, err := NewDOM(host); !errors.Is(err, web.ErrNoDocument) {
		t.Errorf("Expected document error to be fatal, got %v", err)
	}
}

func TestDOMBuildFailureLeavesSurfaceIntact(t *testing.T) {
	// Failure during the very first build attaches nothing
	host := web.NewMemHost()
	host.Doc.FailAfter = 1
	d, err := NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}
	err = d.Flush(grid.NewBuffer(2, 1))
	if !errors.Is(err, web.ErrCreate) {
		t.Fatalf("Expected creation failure, got %v", err)
	}
	if len(host.Doc.BodyElement().Children()) != 0 {
		t.Error("Expected empty body after failed first build")
	}

	// Failure during a later rebuild keeps the previous frame attached
	host = web.NewMemHost()
	d, err = NewDOM(host)
	if err != nil {
		t.Fatalf("Expected backend construction to succeed, got %v", err)
	}
	buf := grid.NewBuffer(2, 1)
	buf.SetText(0, 0, "ok", tcell.ColorDefault, tcell.ColorDefault, grid.AttrNone)
	if err := d.Flush(buf); err != nil {
		t.Fatalf("Expected first flush to succeed, got %v", err)
	}
	root := gridRoot(t, host)

	host.Doc.FailAfter = host.Doc.Created + 2
	err = d.Flush(grid.NewBuffer(3, 1))
	if !errors.Is(err, web.ErrCreate) {
		t.Fatalf("Expected creation failure, got %v", err)
	}

	if got := host.Doc.BodyElement().Child(0); got != root {
		t.Error("Expected the previous container to stay attached")
	}
	if root.TextCalls != 1 {
		t.Error("Expected the failed rebuild to leave the old frame untouched")
	}
	row := root.Child(0)
	if row == nil || len(row.Children()) != 2 {
		t.Fatal("Expected the previous frame's row to survive")
	}
	if got := row.Child(0).TextContent(); got != "o" {
		t.Errorf("Expected previous frame content to survive, got %q", got)
	}
}
