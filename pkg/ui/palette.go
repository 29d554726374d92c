package ui

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token groups inside a palette manifest. A token key is "<group>.<name>",
// for example "status.open" or "stat.blue".
const (
	groupStatus   = "status"
	groupSeverity = "severity"
	groupStat     = "stat"

	tokenNeutral = "neutral"
	tokenAccent  = "accent"

	defaultStatColor = "blue"
)

// BadgeType selects which token group colors a badge.
type BadgeType string

const (
	BadgeStatus   BadgeType = "status"
	BadgeSeverity BadgeType = "severity"
)

// DefaultThemeName is the name of the built-in manifest.
const DefaultThemeName = "spaces"

// DefaultManifest returns the built-in color manifest with a light base and a
// "dark" variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			tokenNeutral:         "#6b7280",
			tokenAccent:          "#3b82f6",
			"surface":            "#ffffff",
			"border":             "#e5e7eb",
			"text":               "#111827",
			"muted":              "#6b7280",
			"status.open":        "#ef4444",
			"status.in_progress": "#f59e0b",
			"status.in progress": "#f59e0b",
			"status.resolved":    "#22c55e",
			"status.closed":      "#6b7280",
			"severity.p1":        "#dc2626",
			"severity.p2":        "#ea580c",
			"severity.p3":        "#ca8a04",
			"severity.p4":        "#6b7280",
			"severity.critical":  "#dc2626",
			"severity.high":      "#ea580c",
			"severity.medium":    "#ca8a04",
			"severity.low":       "#6b7280",
			"stat.blue":          "#3b82f6",
			"stat.green":         "#22c55e",
			"stat.yellow":        "#f59e0b",
			"stat.red":           "#ef4444",
			"stat.purple":        "#8b5cf6",
			"stat.gray":          "#6b7280",
			"step.complete":      "#22c55e",
			"step.active":        "#3b82f6",
			"step.pending":       "#9ca3af",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"border":  "#374151",
					"text":    "#f9fafb",
					"muted":   "#9ca3af",
				},
			},
		},
	}
}

// Palette resolves semantic colors from a theme manifest.
type Palette struct {
	theme   string
	variant string
	tokens  map[string]string
}

// DefaultPalette returns the base variant of the built-in manifest.
func DefaultPalette() Palette {
	return NewPalette(DefaultManifest(), "")
}

// NewPalette merges a manifest's base tokens with the tokens of variant.
// Unknown variants fall back to the base tokens.
func NewPalette(manifest *theme.Manifest, variant string) Palette {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[strings.ToLower(key)] = value
	}
	variant = strings.TrimSpace(variant)
	if v, ok := manifest.Variants[variant]; ok {
		for key, value := range v.Tokens {
			tokens[strings.ToLower(key)] = value
		}
	} else {
		variant = ""
	}
	return Palette{theme: manifest.Name, variant: variant, tokens: tokens}
}

// PaletteFromSelection builds a palette from a resolved theme selection.
func PaletteFromSelection(selection *theme.Selection) Palette {
	if selection == nil || selection.Manifest == nil {
		return DefaultPalette()
	}
	return NewPalette(selection.Manifest, selection.Variant)
}

// Theme reports the manifest name.
func (p Palette) Theme() string { return p.theme }

// Variant reports the active variant, empty for the base tokens.
func (p Palette) Variant() string { return p.variant }

// Token returns the color stored under key, or the neutral color.
func (p Palette) Token(key string) string {
	if value, ok := p.tokens[strings.ToLower(strings.TrimSpace(key))]; ok {
		return value
	}
	return p.neutral()
}

// StatusColor colors workflow states such as "open" or "In Progress".
func (p Palette) StatusColor(status string) string {
	return p.lookup(groupStatus, status)
}

// SeverityColor colors priorities. Besides the bare keys ("p1", "critical")
// it understands labels like "P1 - Critical".
func (p Palette) SeverityColor(severity string) string {
	key := strings.ToLower(strings.TrimSpace(severity))
	if color, ok := p.tokens[groupSeverity+"."+key]; ok {
		return color
	}
	if head, tail, found := strings.Cut(key, "-"); found {
		if color, ok := p.tokens[groupSeverity+"."+strings.TrimSpace(head)]; ok {
			return color
		}
		if color, ok := p.tokens[groupSeverity+"."+strings.TrimSpace(tail)]; ok {
			return color
		}
	}
	return p.neutral()
}

// BadgeColor dispatches on the badge type; anything but severity is a status.
func (p Palette) BadgeColor(value string, kind BadgeType) string {
	if kind == BadgeSeverity {
		return p.SeverityColor(value)
	}
	return p.StatusColor(value)
}

// StatColor maps a stat color name (blue, green, ...) to a color. Unknown
// names fall back to blue.
func (p Palette) StatColor(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if color, ok := p.tokens[groupStat+"."+key]; ok {
		return color
	}
	return p.tokens[groupStat+"."+defaultStatColor]
}

// StepColor colors a processing step.
func (p Palette) StepColor(status StepStatus) string {
	return p.Token("step." + string(status))
}

// Tokens returns a copy of the merged token map.
func (p Palette) Tokens() map[string]string {
	out := make(map[string]string, len(p.tokens))
	for key, value := range p.tokens {
		out[key] = value
	}
	return out
}

// CSSVars converts tokens to CSS custom properties: "status.in progress"
// becomes "--status-in-progress".
func (p Palette) CSSVars() map[string]string {
	out := make(map[string]string, len(p.tokens))
	for key, value := range p.tokens {
		out[cssVarName(key)] = value
	}
	return out
}

// RendererConfig exposes the palette in the shape go-theme renderers consume.
func (p Palette) RendererConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   p.theme,
		Variant: p.variant,
		Tokens:  p.Tokens(),
		CSSVars: p.CSSVars(),
	}
}

func (p Palette) lookup(group, value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	if color, ok := p.tokens[group+"."+key]; ok {
		return color
	}
	return p.neutral()
}

func (p Palette) neutral() string {
	if color, ok := p.tokens[tokenNeutral]; ok {
		return color
	}
	return "#6b7280"
}

func cssVarName(key string) string {
	replacer := strings.NewReplacer(".", "-", " ", "-", "_", "-")
	return "--" + replacer.Replace(strings.ToLower(key))
}

// ManifestSelector resolves palettes from a fixed set of manifests. It
// satisfies theme.ThemeSelector.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector validates each manifest through a go-theme registry and
// indexes it by name. The first manifest becomes the default theme.
func NewManifestSelector(defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	selector := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("ui: register theme %q: %w", manifest.Name, err)
		}
		if selector.defaultTheme == "" {
			selector.defaultTheme = manifest.Name
		}
		selector.manifests[manifest.Name] = manifest
	}
	if selector.defaultTheme == "" {
		return nil, fmt.Errorf("ui: no theme manifests provided")
	}
	return selector, nil
}

// Select resolves name and variant, substituting defaults for blanks.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("ui: theme %q not found", name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("ui: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Themes lists the registered manifest names.
func (s *ManifestSelector) Themes() []string {
	out := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SelectPalette is a convenience wrapper around any theme.ThemeSelector.
func SelectPalette(selector theme.ThemeSelector, name, variant string) (Palette, error) {
	if selector == nil {
		return DefaultPalette(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Palette{}, err
	}
	return PaletteFromSelection(selection), nil
}
