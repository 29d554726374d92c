package page

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is the declarative form of a page inside an app definition:
//
//	page: list
//	variant: table
//	data_key: incidents
//	config:
//	  title: All Incidents
//
// Variant is copied into the decoded config. DataKey and MockData are for the
// caller; the page engine never looks data up itself.
type Spec struct {
	Kind     Kind      `yaml:"page"`
	Variant  string    `yaml:"variant"`
	DataKey  string    `yaml:"data_key"`
	MockData any       `yaml:"mock_data"`
	Config   yaml.Node `yaml:"config"`
}

// Build decodes the raw config into the matching Config type and validates
// it. An empty page kind means list.
func (s Spec) Build() (Config, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(string(s.Kind))))
	if kind == "" {
		kind = KindList
	}

	cfg, err := decodeNode(kind, &s.Config)
	if err != nil {
		return nil, err
	}
	cfg = withVariant(cfg, s.Variant)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses a YAML (or JSON) page config document for kind.
func Decode(kind Kind, data []byte) (Config, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("page: decode %s config: %w", kind, err)
	}
	var target *yaml.Node
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		target = node.Content[0]
	}
	cfg, err := decodeNode(kind, target)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeNode ignores unknown keys; a nil or empty node yields the zero config.
func decodeNode(kind Kind, node *yaml.Node) (Config, error) {
	empty := node == nil || node.Kind == 0
	switch kind {
	case KindList:
		var cfg ListConfig
		if !empty {
			if err := node.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("page: decode list config: %w", err)
			}
		}
		return cfg, nil
	case KindDetail:
		var cfg DetailConfig
		if !empty {
			if err := node.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("page: decode detail config: %w", err)
			}
		}
		return cfg, nil
	case KindForm:
		var cfg FormConfig
		if !empty {
			if err := node.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("page: decode form config: %w", err)
			}
		}
		return cfg, nil
	case KindDashboard:
		var cfg DashboardConfig
		if !empty {
			if err := node.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("page: decode dashboard config: %w", err)
			}
		}
		return cfg, nil
	default:
		return nil, configErr(kind, "page", fmt.Sprintf("unknown page kind %q", kind))
	}
}

func withVariant(cfg Config, variant string) Config {
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return cfg
	}
	switch c := cfg.(type) {
	case ListConfig:
		c.Variant = variant
		return c
	case DetailConfig:
		c.Variant = variant
		return c
	case FormConfig:
		c.Variant = variant
		return c
	case DashboardConfig:
		c.Variant = variant
		return c
	}
	return cfg
}
