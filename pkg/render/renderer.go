package render

import (
	"context"

	"github.com/LyzrCore/spaces/pkg/ui"
)

// Renderer converts a render tree into a byte representation (HTML,
// terminal text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, node ui.Node, options RenderOptions) ([]byte, error)
}
