package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/LyzrCore/spaces/pkg/render/template"
)

// ErrFilterExists is returned by RegisterFilter when pongo2 already knows a
// filter by that name. pongo2 filters are process wide.
var ErrFilterExists = errors.New("gotemplate: filter already registered")

// DefaultExtension is appended to template names without one.
const DefaultExtension = ".tmpl"

// Option configures the engine before construction.
type Option func(*Engine)

// WithFS sets the file system templates are loaded from.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension overrides DefaultExtension. A missing leading dot is added.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext = strings.TrimSpace(ext); ext == "" {
			return
		}
		e.ext = "." + strings.TrimPrefix(ext, ".")
	}
}

// Engine is a pongo2-backed template.TemplateRenderer. Parsed templates are
// cached per engine; filters are shared by every pongo2 set in the process.
type Engine struct {
	files fs.FS
	ext   string

	mu     sync.RWMutex
	set    *pongo2.TemplateSet
	parsed map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{ext: DefaultExtension, parsed: map[string]*pongo2.Template{}}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.files == nil {
		return nil, errors.New("gotemplate: a template fs.FS is required")
	}
	e.set = pongo2.NewSet("spaces", pongo2.NewFSLoader(e.files))
	e.set.Globals = pongo2.Context{}
	registerDefaultFilters()
	return e, nil
}

// Render dispatches to RenderString for inline content and RenderTemplate
// otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if isTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes a named template, appending the configured
// extension when missing. The result is also copied to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, fmt.Sprintf("template %q", name), out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	return e.execute(tmpl, data, "template string", out)
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}
	e.mu.RLock()
	rendered, err := tmpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// RegisterFilter adapts fn into a pongo2 filter. Registering a name twice
// returns an error wrapping ErrFilterExists.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("%w: %q", ErrFilterExists, name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template can read.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	globals, err := toContext(data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.set.Globals.Update(globals)
	e.mu.Unlock()
	return nil
}

// lookup returns the cached template for name, parsing it on first use.
func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl := e.parsed[name]
	e.mu.RUnlock()
	if tmpl != nil {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl = e.parsed[name]; tmpl != nil {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", name, err)
	}
	e.parsed[name] = tmpl
	return tmpl, nil
}

func isTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

// toContext prepares data for pongo2. Maps are walked so scalars and
// functions keep their Go types; anything else is flattened through JSON so
// templates see the keys a JSON client would.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	var fields map[string]any
	switch v := data.(type) {
	case pongo2.Context:
		fields = v
	case map[string]any:
		fields = v
	default:
		flat, err := viaJSON(data)
		if err != nil {
			return nil, err
		}
		obj, ok := flat.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("gotemplate: %T does not encode to an object", data)
		}
		fields = obj
	}

	ctx := make(pongo2.Context, len(fields))
	for key, value := range fields {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		v, err := normalize(value)
		if err != nil {
			return nil, err
		}
		ctx[key] = v
	}
	return ctx, nil
}

func normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case pongo2.Context:
		return normalize(map[string]any(v))
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	if isCallable(value) {
		return value, nil
	}
	flat, err := viaJSON(value)
	if err != nil {
		return nil, err
	}
	switch flat.(type) {
	case map[string]any, []any:
		return normalize(flat)
	}
	return flat, nil
}

func viaJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: encode %T: %w", v, err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("domid") {
		_ = pongo2.RegisterFilter("domid", filterDOMID)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterDOMID turns a path or label into an element id: "/new incident"
// becomes "new-incident", "/" becomes "home". An optional parameter is used
// as prefix.
func filterDOMID(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	id := DOMID(in.String())
	if param != nil && param.String() != "" {
		id = param.String() + "-" + id
	}
	return pongo2.AsValue(id), nil
}

// DOMID is the function behind the domid filter.
func DOMID(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	if b.Len() == 0 {
		return "home"
	}
	return b.String()
}
