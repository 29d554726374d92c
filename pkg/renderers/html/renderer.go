package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/LyzrCore/spaces/pkg/render"
	rendertemplate "github.com/LyzrCore/spaces/pkg/render/template"
	"github.com/LyzrCore/spaces/pkg/render/template/gotemplate"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

// DefaultAssetsPrefix is the URL path the stylesheet and script are linked
// from.
const DefaultAssetsPrefix = "/assets"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	assetsPrefix     string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain the same templates/*.tmpl names as the embedded one.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPolicy overrides the bluemonday policy applied to rendered markdown.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithAssetsPrefix changes where the page layout links its assets from.
func WithAssetsPrefix(prefix string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimRight(strings.TrimSpace(prefix), "/"); trimmed != "" {
			cfg.assetsPrefix = trimmed
		}
	}
}

// Renderer draws a ui.Node tree as HTML using pongo2 templates, one template
// per node kind.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	markdown     *Markdown
	assetsPrefix string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		assetsPrefix: DefaultAssetsPrefix,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:    templates,
		markdown:     NewMarkdown(cfg.policy),
		assetsPrefix: cfg.assetsPrefix,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws node. Unless opts.Fragment is set the output is a complete
// document whose :root carries the palette as CSS custom properties.
func (r *Renderer) Render(ctx context.Context, node ui.Node, opts render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	if node == nil {
		return nil, errors.New("html renderer: node is required")
	}

	v := &viewer{
		r:       r,
		palette: opts.PaletteOrDefault(),
		hidden:  render.SortedHiddenFields(opts.HiddenFields),
	}
	body, err := v.node(node)
	if err != nil {
		return nil, err
	}
	if opts.Fragment {
		return []byte(body), nil
	}

	page, err := r.exec("page", map[string]any{
		"title":      opts.Title,
		"theme":      v.palette.Theme(),
		"variant":    v.palette.Variant(),
		"css_vars":   cssVars(v.palette),
		"stylesheet": r.assetsPrefix + "/" + StylesheetName,
		"script":     r.assetsPrefix + "/" + RuntimeScriptName,
		"body":       body,
	})
	if err != nil {
		return nil, err
	}
	return []byte(page), nil
}

func (r *Renderer) exec(name string, data map[string]any) (string, error) {
	out, err := r.templates.RenderTemplate("templates/"+name+".tmpl", data)
	if err != nil {
		return "", fmt.Errorf("html renderer: render %s: %w", name, err)
	}
	return out, nil
}

// cssVars lists the go-theme renderer config's custom properties by name.
func cssVars(p ui.Palette) []any {
	vars := p.RendererConfig().CSSVars
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{"name": name, "value": vars[name]})
	}
	return out
}
