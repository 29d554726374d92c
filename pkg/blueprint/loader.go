package blueprint

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML blueprint document. source is only used in
// error messages.
func Parse(data []byte, source string) (Blueprint, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Blueprint{}, fmt.Errorf("blueprint: file %s is empty", source)
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		if yerr := yaml.Unmarshal(data, &spec); yerr != nil {
			return Blueprint{}, fmt.Errorf("blueprint: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	if strings.TrimSpace(spec.ID) == "" {
		return Blueprint{}, fmt.Errorf("blueprint: file %s defines an empty id", source)
	}
	return New(spec), nil
}

// LoadFS reads and parses a single blueprint file from fsys.
func LoadFS(fsys fs.FS, path string) (Blueprint, error) {
	if fsys == nil {
		return Blueprint{}, fmt.Errorf("blueprint: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Blueprint{}, fmt.Errorf("blueprint: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// MustLoadFS panics when the blueprint cannot be loaded. Intended for
// embedded, build-time blueprints.
func MustLoadFS(fsys fs.FS, path string) Blueprint {
	bp, err := LoadFS(fsys, path)
	if err != nil {
		panic(err)
	}
	return bp
}
