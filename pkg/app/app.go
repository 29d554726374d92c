package app

import (
	"fmt"
	"maps"
	"strings"

	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/registry"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// Option customises an App.
type Option func(*App)

// WithOrchestrator binds form submissions to orch.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(a *App) {
		a.orchestrator = orch
	}
}

// WithData registers a data source, replacing any source of the same key
// from the definition.
func WithData(key string, value any) Option {
	return func(a *App) {
		if key != "" {
			a.data[key] = value
		}
	}
}

// WithPalette selects the colors used for badges, stats and steps.
func WithPalette(p ui.Palette) Option {
	return func(a *App) {
		a.palette = p
	}
}

// WithBasePath sets the URL prefix forms post to and sidebar links point
// at. The default is "/apps/<id>".
func WithBasePath(prefix string) Option {
	return func(a *App) {
		if trimmed := strings.TrimRight(strings.TrimSpace(prefix), "/"); trimmed != "" {
			a.basePath = trimmed
		}
	}
}

// Page is a built page. Err holds the configuration error of a page that
// could not be built; such a page renders as an error notice.
type Page struct {
	Path    string
	ItemKey string
	Spec    page.Spec
	Config  page.Config
	Err     error
}

// Kind reports the page kind, or the declared kind when the build failed.
func (p *Page) Kind() page.Kind {
	if p.Config != nil {
		return p.Config.Kind()
	}
	return p.Spec.Kind
}

// Form returns the page config when the page is a valid form.
func (p *Page) Form() (page.FormConfig, bool) {
	cfg, ok := p.Config.(page.FormConfig)
	return cfg, ok
}

// App is a demo app assembled from a Definition: layout, pages, data
// sources and an optional orchestrator. It is read-only after New.
type App struct {
	def          Definition
	info         registry.App
	registry     *registry.Registry
	orchestrator *orchestrator.Orchestrator
	palette      ui.Palette
	data         map[string]any
	basePath     string

	pages  []*Page
	byPath map[string]*Page
}

// New builds an app. The app id must be present in reg. Pages with invalid
// configuration do not fail the app; they are kept with their error.
func New(def Definition, reg *registry.Registry, opts ...Option) (*App, error) {
	if reg == nil {
		return nil, fmt.Errorf("app: registry is required")
	}
	id := strings.TrimSpace(def.ID)
	info, err := reg.Resolve(id)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	def.ID = id
	if def.Title == "" {
		def.Title = info.Name
	}
	if def.Description == "" {
		def.Description = info.Description
	}

	a := &App{
		def:      def,
		info:     info,
		registry: reg,
		palette:  ui.DefaultPalette(),
		data:     make(map[string]any, len(def.Data)),
		basePath: "/apps/" + id,
		byPath:   make(map[string]*Page, len(def.Pages)),
	}
	maps.Copy(a.data, def.Data)
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	for _, spec := range def.Pages {
		p := &Page{
			Path:    normalizePath(spec.Path),
			ItemKey: spec.ItemKey,
			Spec:    spec.Spec,
		}
		if p.ItemKey == "" {
			p.ItemKey = "id"
		}
		if _, dup := a.byPath[p.Path]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePage, p.Path)
		}
		p.Config, p.Err = spec.Build()
		a.pages = append(a.pages, p)
		a.byPath[p.Path] = p
	}
	return a, nil
}

func (a *App) ID() string                               { return a.def.ID }
func (a *App) Title() string                            { return a.def.Title }
func (a *App) Description() string                      { return a.def.Description }
func (a *App) Definition() Definition                   { return a.def }
func (a *App) Info() registry.App                       { return a.info }
func (a *App) Registry() *registry.Registry             { return a.registry }
func (a *App) Orchestrator() *orchestrator.Orchestrator { return a.orchestrator }
func (a *App) Palette() ui.Palette                      { return a.palette }
func (a *App) BasePath() string                         { return a.basePath }

// SubmitURL is the endpoint forms post to.
func (a *App) SubmitURL() string { return a.basePath + "/submit" }

// StreamURL is the websocket endpoint streaming processing steps.
func (a *App) StreamURL() string { return a.basePath + "/stream" }

// PageURL links to path within the app.
func (a *App) PageURL(path string) string {
	return a.basePath + "?page=" + normalizePath(path)
}

// Pages returns the pages in declared order.
func (a *App) Pages() []*Page {
	return append([]*Page(nil), a.pages...)
}

// Paths returns the page paths in declared order.
func (a *App) Paths() []string {
	paths := make([]string, 0, len(a.pages))
	for _, p := range a.pages {
		paths = append(paths, p.Path)
	}
	return paths
}

// HomePath is "/" when defined, otherwise the first page.
func (a *App) HomePath() string {
	if _, ok := a.byPath["/"]; ok || len(a.pages) == 0 {
		return "/"
	}
	return a.pages[0].Path
}

// Page looks up a page by path.
func (a *App) Page(path string) (*Page, bool) {
	p, ok := a.byPath[normalizePath(path)]
	return p, ok
}

// Forms returns the pages that are valid forms.
func (a *App) Forms() []*Page {
	var out []*Page
	for _, p := range a.pages {
		if _, ok := p.Form(); ok {
			out = append(out, p)
		}
	}
	return out
}

// Data resolves the data bound to p: the source named by data_key, then the
// page's inline mock_data, then nil.
func (a *App) Data(p *Page) any {
	if p == nil {
		return nil
	}
	if key := p.Spec.DataKey; key != "" {
		if value, ok := a.data[key]; ok {
			return value
		}
	}
	return p.Spec.MockData
}
