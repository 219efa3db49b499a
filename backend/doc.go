// Package backend renders a grid.Buffer onto a browser-hosted surface.
//
// Features:
//   - Terminal color model translated to explicit RGB / CSS color values
//   - Cell styles composed into inline CSS declarations
//   - Incremental per-field style patching with cell-level frame diffing
//   - DOM surface (span per cell, anchors for hyperlink runs)
//   - Fixed-pixel canvas surface sharing the same color translation
//   - Viewport-derived grid sizing with handheld device selection
//
// Backends receive the host environment explicitly (web.Host); nothing in
// this package reaches for ambient globals.
package backend
