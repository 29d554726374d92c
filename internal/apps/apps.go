// Package apps assembles the built-in demo apps from embedded definitions,
// blueprints and sample data.
package apps

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/blueprint"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/registry"
	"github.com/LyzrCore/spaces/pkg/ui"
)

//go:embed definitions/*.yaml blueprints/*.yaml data/*.yaml
var files embed.FS

// Files exposes the embedded definitions, blueprints and data.
func Files() fs.FS {
	return files
}

type Option func(*options)

type options struct {
	orchestrator []orchestrator.Option
	palette      *ui.Palette
	now          func() time.Time
}

// WithOrchestratorOptions configures every orchestrator the catalog builds.
func WithOrchestratorOptions(opts ...orchestrator.Option) Option {
	return func(o *options) {
		o.orchestrator = append(o.orchestrator, opts...)
	}
}

// WithPalette applies p to every app.
func WithPalette(p ui.Palette) Option {
	return func(o *options) {
		o.palette = &p
	}
}

// WithClock replaces the clock used for status timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Catalog holds the built apps in registry order.
type Catalog struct {
	apps []*app.App
	byID map[string]*app.App
}

// Get returns the app with id.
func (c *Catalog) Get(id string) (*app.App, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Apps returns the apps in registry order.
func (c *Catalog) Apps() []*app.App {
	return append([]*app.App(nil), c.apps...)
}

// IDs returns the app ids in registry order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.apps))
	for _, a := range c.apps {
		ids = append(ids, a.ID())
	}
	return ids
}

func (c *Catalog) Len() int {
	return len(c.apps)
}

// extras adds per-app data sources that are computed rather than declared.
var extras = map[string]func(reg *registry.Registry, o options) ([]app.Option, error){
	"it_service_desk": serviceDeskData,
	"dashboard":       dashboardData,
}

// Build assembles every built-in app whose id is in reg. Registry entries
// without a built-in definition only appear as navigation links.
func Build(reg *registry.Registry, opts ...Option) (*Catalog, error) {
	if reg == nil {
		return nil, errors.New("apps: registry is required")
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	defs, err := Definitions()
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{byID: make(map[string]*app.App, len(defs))}
	for _, id := range reg.IDs() {
		def, ok := defs[id]
		if !ok {
			continue
		}
		built, err := buildApp(def, reg, o)
		if err != nil {
			return nil, err
		}
		catalog.apps = append(catalog.apps, built)
		catalog.byID[id] = built
	}
	return catalog, nil
}

func buildApp(def app.Definition, reg *registry.Registry, o options) (*app.App, error) {
	var appOpts []app.Option
	if o.palette != nil {
		appOpts = append(appOpts, app.WithPalette(*o.palette))
	}
	if def.Blueprint != "" {
		bp, err := LoadBlueprint(def.Blueprint)
		if err != nil {
			return nil, fmt.Errorf("apps: %s: %w", def.ID, err)
		}
		appOpts = append(appOpts, app.WithOrchestrator(orchestrator.New(bp, o.orchestrator...)))
	}
	if extra, ok := extras[def.ID]; ok {
		more, err := extra(reg, o)
		if err != nil {
			return nil, fmt.Errorf("apps: %s: %w", def.ID, err)
		}
		appOpts = append(appOpts, more...)
	}
	return app.New(def, reg, appOpts...)
}

// Definitions loads every embedded app definition keyed by id.
func Definitions() (map[string]app.Definition, error) {
	names, err := fs.Glob(files, "definitions/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("apps: list definitions: %w", err)
	}
	sort.Strings(names)
	defs := make(map[string]app.Definition, len(names))
	for _, name := range names {
		def, err := app.LoadDefinitionFS(files, name)
		if err != nil {
			return nil, err
		}
		if _, dup := defs[def.ID]; dup {
			return nil, fmt.Errorf("apps: duplicate definition %q in %s", def.ID, name)
		}
		defs[def.ID] = def
	}
	return defs, nil
}

// LoadBlueprint loads an embedded blueprint by file name.
func LoadBlueprint(name string) (blueprint.Blueprint, error) {
	return blueprint.LoadFS(files, path.Join("blueprints", name))
}

func loadData(name string, out any) error {
	data, err := fs.ReadFile(files, path.Join("data", name))
	if err != nil {
		return fmt.Errorf("apps: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("apps: decode %s: %w", name, err)
	}
	return nil
}
