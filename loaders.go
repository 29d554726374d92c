package spaces

import (
	"io/fs"

	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/blueprint"
	"github.com/LyzrCore/spaces/pkg/registry"
)

// DefaultRegistry returns the built-in registry of the demo apps.
func DefaultRegistry() *registry.Registry {
	return registry.Default()
}

// LoadRegistry reads a YAML, JSON or TOML registry file.
func LoadRegistry(path string) (*registry.Registry, error) {
	return registry.Load(path)
}

// LoadBlueprint reads a blueprint YAML file from fsys.
func LoadBlueprint(fsys fs.FS, path string) (blueprint.Blueprint, error) {
	return blueprint.LoadFS(fsys, path)
}

// LoadDefinition reads an app definition YAML file from fsys.
func LoadDefinition(fsys fs.FS, path string) (Definition, error) {
	return app.LoadDefinitionFS(fsys, path)
}
