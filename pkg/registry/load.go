package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed apps.yaml
var defaultApps []byte

// Format is a registry file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

type document struct {
	Apps []App `yaml:"apps" json:"apps" toml:"apps"`
}

// Default returns the built-in registry of the three demo apps.
func Default() *Registry {
	r, err := Parse(defaultApps, FormatYAML)
	if err != nil {
		panic(fmt.Errorf("registry: built-in registry: %w", err))
	}
	return r
}

// Load reads a registry file. The format follows the extension: .yaml/.yml,
// .json or .toml.
func Load(path string) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	r, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("registry: load %s: %w", path, err)
	}
	return r, nil
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("registry: unsupported file extension %q", filepath.Ext(path))
	}
}

// Parse decodes a registry document of the given format.
func Parse(data []byte, format Format) (*Registry, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("registry: decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("registry: decode json: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("registry: decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("registry: unsupported format %q", format)
	}
	return New(doc.Apps...)
}
