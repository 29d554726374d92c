// Package ui defines the render tree produced by the page engine and the app
// shell. Nodes are plain values with no behaviour beyond identifying their
// kind; HTML and terminal renderers turn a tree into output.
//
// Palette resolves the semantic colors (status, severity, stat cards) from a
// go-theme manifest so renderers and the page engine agree on one source.
package ui
