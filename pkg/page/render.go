package page

import (
	"fmt"

	"github.com/LyzrCore/spaces/pkg/ui"
)

// FormState carries per-request form data: submitted values, field errors,
// the formatted result and the processing steps.
type FormState struct {
	Values map[string]string
	Errors map[string]string
	Result string
	Steps  *ui.Steps
}

type renderConfig struct {
	palette   ui.Palette
	formID    string
	action    string
	streamURL string
	form      FormState
}

// RenderOption customises a Render call.
type RenderOption func(*renderConfig)

// WithPalette selects the colors used for badges and stats.
func WithPalette(p ui.Palette) RenderOption {
	return func(cfg *renderConfig) {
		cfg.palette = p
	}
}

// WithFormAction sets the form id plus its submit and stream endpoints.
func WithFormAction(id, action, streamURL string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.formID = id
		cfg.action = action
		cfg.streamURL = streamURL
	}
}

// WithFormState pre-fills a form and reveals its result panel when a result
// is present.
func WithFormState(state FormState) RenderOption {
	return func(cfg *renderConfig) {
		cfg.form = state
	}
}

// Render turns cfg and data into a render tree. Missing optional config
// fields take their defaults. It fails with a *ConfigError when cfg is
// invalid and a *DataError when data lacks every key cfg relies on.
func Render(cfg Config, data any, opts ...RenderOption) (ui.Node, error) {
	rc := renderConfig{palette: ui.DefaultPalette()}
	for _, opt := range opts {
		if opt != nil {
			opt(&rc)
		}
	}
	if cfg == nil {
		return nil, configErr("", "", "config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch c := cfg.(type) {
	case ListConfig:
		return renderList(c.WithDefaults(), data, rc)
	case DetailConfig:
		return renderDetail(c.WithDefaults(), data, rc)
	case FormConfig:
		return renderForm(c.WithDefaults(), rc), nil
	case DashboardConfig:
		return renderDashboard(c.WithDefaults(), data, rc)
	default:
		return nil, configErr(cfg.Kind(), "", fmt.Sprintf("unsupported config %T", cfg))
	}
}
