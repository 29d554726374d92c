package render

import "github.com/LyzrCore/spaces/pkg/ui"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the render tree.
type RenderOptions struct {
	// Title names the document when a renderer wraps output in a layout.
	Title string
	// Fragment skips the surrounding document and renders only the node.
	Fragment bool
	// Palette overrides the default colors. Renderers that draw badges or
	// stats read it through PaletteOrDefault.
	Palette *ui.Palette
	// HiddenFields are emitted inside every form as hidden inputs.
	HiddenFields map[string]string
}

// PaletteOrDefault returns the configured palette or the built-in one.
func (o RenderOptions) PaletteOrDefault() ui.Palette {
	if o.Palette != nil {
		return *o.Palette
	}
	return ui.DefaultPalette()
}
