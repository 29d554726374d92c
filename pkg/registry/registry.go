package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LyzrCore/spaces/pkg/ui"
)

// ErrAppNotFound is returned when an id is not in the registry.
var ErrAppNotFound = errors.New("registry: app not found")

// App is the metadata of one app in the ecosystem.
type App struct {
	ID          string `yaml:"id" json:"id" toml:"id"`
	Name        string `yaml:"name" json:"name" toml:"name"`
	HFSpace     string `yaml:"hf_space" json:"hf_space" toml:"hf_space"`
	URL         string `yaml:"url" json:"url" toml:"url"`
	Description string `yaml:"description" json:"description" toml:"description"`
}

// Registry is an immutable, ordered set of apps keyed by id. Construct it
// once and pass it to whatever needs lookups.
type Registry struct {
	apps  []App
	index map[string]int
}

// New builds a registry from apps in the given order. Ids are trimmed; a
// blank or repeated id is an error. Field-level problems are left to
// Validate so a partially filled registry can still be inspected.
func New(apps ...App) (*Registry, error) {
	r := &Registry{
		apps:  make([]App, 0, len(apps)),
		index: make(map[string]int, len(apps)),
	}
	for i, app := range apps {
		app.ID = strings.TrimSpace(app.ID)
		if app.ID == "" {
			return nil, fmt.Errorf("registry: app at position %d has no id", i)
		}
		if _, dup := r.index[app.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate app id %q", app.ID)
		}
		r.index[app.ID] = len(r.apps)
		r.apps = append(r.apps, app)
	}
	return r, nil
}

// MustNew panics when New fails.
func MustNew(apps ...App) *Registry {
	r, err := New(apps...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the app registered under id.
func (r *Registry) Lookup(id string) (App, bool) {
	if r == nil {
		return App{}, false
	}
	i, ok := r.index[strings.TrimSpace(id)]
	if !ok {
		return App{}, false
	}
	return r.apps[i], true
}

// Resolve is Lookup with an error wrapping ErrAppNotFound.
func (r *Registry) Resolve(id string) (App, error) {
	app, ok := r.Lookup(id)
	if !ok {
		return App{}, fmt.Errorf("%w: %q", ErrAppNotFound, id)
	}
	return app, nil
}

// URL returns the production URL of id.
func (r *Registry) URL(id string) (string, bool) {
	app, ok := r.Lookup(id)
	if !ok || app.URL == "" {
		return "", false
	}
	return app.URL, true
}

// IDs returns app ids in registry order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.apps))
	for _, app := range r.apps {
		out = append(out, app.ID)
	}
	return out
}

// Apps returns a copy of every app in registry order.
func (r *Registry) Apps() []App {
	if r == nil {
		return nil
	}
	return append([]App(nil), r.apps...)
}

// Len reports the number of apps.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.apps)
}

// Links builds cross-app navigation. The current app is marked and carries
// no URL; every other app links to its production URL.
func (r *Registry) Links(currentID string) []ui.Link {
	if r == nil {
		return nil
	}
	links := make([]ui.Link, 0, len(r.apps))
	for _, app := range r.apps {
		if app.ID == currentID {
			links = append(links, ui.Link{Label: app.Name, Current: true})
			continue
		}
		links = append(links, ui.Link{Label: app.Name, URL: app.URL, External: true})
	}
	return links
}
