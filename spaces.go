// Package spaces builds demo dashboards from page configuration: a page
// template engine, a mock multi-agent orchestrator and an app registry,
// drawn as HTML or terminal text.
package spaces

import (
	"context"

	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/blueprint"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/registry"
	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/renderers/html"
	"github.com/LyzrCore/spaces/pkg/renderers/terminal"
)

// App is an assembled demo app; alias exported via the root package for
// convenience.
type App = app.App

// Definition is the declarative description an App is built from.
type Definition = app.Definition

// View selects the page, item and form state to draw.
type View = app.View

// RenderOptions describes per-request overrides renderers honour.
type RenderOptions = render.RenderOptions

// NewApp builds an app against reg.
func NewApp(def Definition, reg *registry.Registry, options ...app.Option) (*App, error) {
	return app.New(def, reg, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(bp blueprint.Blueprint, options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(bp, options...)
}

// RenderHTML draws a full page of a as an HTML document. It is the simplest
// entry point for callers that just want markup.
func RenderHTML(ctx context.Context, a *App, view View, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderPage(ctx, renderer, a, view)
}

// RenderText draws a full page of a as styled terminal text.
func RenderText(ctx context.Context, a *App, view View, options ...terminal.Option) ([]byte, error) {
	return renderPage(ctx, terminal.New(options...), a, view)
}

func renderPage(ctx context.Context, renderer render.Renderer, a *App, view View) ([]byte, error) {
	node, err := a.RenderPage(view)
	if err != nil {
		return nil, err
	}
	palette := a.Palette()
	return renderer.Render(ctx, node, RenderOptions{Title: a.Title(), Palette: &palette})
}
