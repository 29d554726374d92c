package app

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LyzrCore/spaces/pkg/page"
)

// SidebarItem is one navigation entry in the sidebar.
type SidebarItem struct {
	Label string `yaml:"label" json:"label"`
	Path  string `yaml:"path" json:"path"`
	Icon  string `yaml:"icon" json:"icon"`
}

// PageSpec binds a path to a declarative page. ItemKey names the record
// field detail pages select on (default "id").
type PageSpec struct {
	Path      string `yaml:"path"`
	ItemKey   string `yaml:"item_key"`
	page.Spec `yaml:",inline"`
}

// Definition is the declarative description of a demo app.
//
//	id: it_service_desk
//	title: IT Service Desk
//	sidebar:
//	  - {label: Dashboard, path: /, icon: "📊"}
//	pages:
//	  - path: /
//	    page: dashboard
//	    data_key: dashboard
//	    config: {...}
type Definition struct {
	ID               string         `yaml:"id"`
	Title            string         `yaml:"title"`
	Description      string         `yaml:"description"`
	GithubURL        string         `yaml:"github_url"`
	StudioURL        string         `yaml:"studio_url"`
	ReadmeURL        string         `yaml:"readme_url"`
	EntityName       string         `yaml:"entity_name"`
	EntityNamePlural string         `yaml:"entity_name_plural"`
	Blueprint        string         `yaml:"blueprint"`
	Sidebar          []SidebarItem  `yaml:"sidebar"`
	Pages            []PageSpec     `yaml:"pages"`
	Data             map[string]any `yaml:"data"`
}

// ParseDefinition decodes a YAML app definition.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("app: decode definition: %w", err)
	}
	def.ID = strings.TrimSpace(def.ID)
	if def.ID == "" {
		return Definition{}, fmt.Errorf("app: definition is missing an id")
	}
	return def, nil
}

// LoadDefinitionFS reads and parses a definition from fsys.
func LoadDefinitionFS(fsys fs.FS, path string) (Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("app: read definition %s: %w", path, err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return Definition{}, fmt.Errorf("%w (%s)", err, path)
	}
	return def, nil
}

// EntityLabel returns the singular entity name, defaulting to "item".
func (d Definition) EntityLabel() string {
	if d.EntityName == "" {
		return "item"
	}
	return d.EntityName
}

// EntityLabelPlural returns the plural entity name, defaulting to "items".
func (d Definition) EntityLabelPlural() string {
	if d.EntityNamePlural == "" {
		return d.EntityLabel() + "s"
	}
	return d.EntityNamePlural
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return "/"
	}
	return "/" + strings.Trim(path, "/")
}
