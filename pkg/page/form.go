package page

import (
	"strconv"
	"strings"

	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/ui"
)

func renderForm(cfg FormConfig, rc renderConfig) ui.Node {
	form := ui.Form{
		ID:          rc.formID,
		Action:      rc.action,
		StreamURL:   rc.streamURL,
		Title:       cfg.Title,
		Description: cfg.Description,
		Fields:      make([]ui.Field, 0, len(cfg.Fields)),
		Submit:      ui.Button{Label: cfg.SubmitLabel, Variant: "primary", Action: rc.action},
		Result: ui.ResultPanel{
			ID:              resultPanelID(rc.formID),
			Visible:         rc.form.Result != "",
			ProcessingLabel: cfg.ProcessingLabel,
			Steps:           rc.form.Steps,
			Content:         rc.form.Result,
		},
	}

	for _, field := range cfg.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		node := ui.Field{
			Key:         field.Key,
			Label:       label,
			Type:        ui.FieldType(field.Type),
			Placeholder: field.Placeholder,
			Required:    field.Required,
			Value:       rc.form.Values[field.Key],
			Error:       rc.form.Errors[field.Key],
		}
		switch node.Type {
		case ui.FieldTextarea:
			node.Rows = field.Rows
		case ui.FieldSelect:
			node.Options = append([]string(nil), field.Options...)
		}
		form.Fields = append(form.Fields, node)
	}
	return form
}

func resultPanelID(formID string) string {
	if formID == "" {
		return "result"
	}
	return formID + "-result"
}

// Collect gathers values in declared field order. Every declared field gets
// an entry; missing values are empty strings. Number fields holding a
// numeric value are stored as float64.
func (c FormConfig) Collect(values map[string]string) orchestrator.Submission {
	cfg := c.WithDefaults()
	entries := make([]orchestrator.Entry, 0, len(cfg.Fields))
	for _, field := range cfg.Fields {
		raw := strings.TrimSpace(values[field.Key])
		var value any = raw
		if field.Type == string(ui.FieldNumber) && raw != "" {
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				value = n
			}
		}
		entries = append(entries, orchestrator.Entry{Key: field.Key, Value: value})
	}
	return orchestrator.NewSubmission(entries...)
}

// MissingRequired lists the keys of required fields left blank, in declared
// order.
func (c FormConfig) MissingRequired(values map[string]string) []string {
	cfg := c.WithDefaults()
	var missing []string
	for _, field := range cfg.Fields {
		if field.Required && strings.TrimSpace(values[field.Key]) == "" {
			missing = append(missing, field.Key)
		}
	}
	return missing
}

// FieldKeys returns the declared field keys in order.
func (c FormConfig) FieldKeys() []string {
	keys := make([]string, 0, len(c.Fields))
	for _, field := range c.Fields {
		keys = append(keys, strings.TrimSpace(field.Key))
	}
	return keys
}
