package html

import (
	"fmt"
	"strings"

	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/render/template/gotemplate"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// viewer turns nodes into template data. Containers, forms and result panels
// render their children first and hand the markup to their own template.
type viewer struct {
	r       *Renderer
	palette ui.Palette
	hidden  []render.HiddenField
}

func (v *viewer) node(node ui.Node) (string, error) {
	switch n := node.(type) {
	case ui.Container:
		return v.container(n)
	case ui.Heading:
		return v.r.exec("heading", map[string]any{"level": clampLevel(n.Level), "text": n.Text})
	case ui.Text:
		return v.r.exec("text", map[string]any{"text": n.Text, "muted": n.Muted, "emphasis": n.Emphasis})
	case ui.Markdown:
		html, err := v.r.markdown.Render(n.Source)
		if err != nil {
			return "", err
		}
		return v.r.exec("markdown", map[string]any{"html": html})
	case ui.Badge:
		return v.r.exec("badge", badgeData(&n))
	case ui.Table:
		return v.r.exec("table", tableData(n))
	case ui.Cards:
		return v.r.exec("cards", map[string]any{"items": itemsData(n.Items)})
	case ui.CompactList:
		return v.r.exec("compact", map[string]any{"items": itemsData(n.Items)})
	case ui.StatGrid:
		return v.r.exec("stats", statsData(n))
	case ui.KeyValues:
		items := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, map[string]any{"label": item.Label, "value": item.Value})
		}
		return v.r.exec("key_values", map[string]any{"items": items})
	case ui.Timeline:
		return v.r.exec("timeline", timelineData(n))
	case ui.EmptyState:
		return v.r.exec("empty_state", map[string]any{"icon": n.Icon, "title": n.Title, "description": n.Description})
	case ui.Notice:
		return v.r.exec("notice", map[string]any{"level": string(n.Level), "title": n.Title, "message": n.Message})
	case ui.Field:
		return v.r.exec("field", fieldData(n, ""))
	case ui.Button:
		return v.r.exec("button", buttonData(n))
	case ui.Steps:
		return v.r.exec("steps", v.stepsData(n))
	case ui.ResultPanel:
		return v.resultPanel(n)
	case ui.Form:
		return v.form(n)
	case ui.Links:
		return v.r.exec("links", linksData(n))
	default:
		return "", fmt.Errorf("html renderer: unsupported node %T", node)
	}
}

func (v *viewer) container(n ui.Container) (string, error) {
	children := make([]any, 0, len(n.Children))
	for _, child := range n.Children {
		html, err := v.node(child)
		if err != nil {
			return "", err
		}
		children = append(children, html)
	}
	return v.r.exec("container", map[string]any{
		"role":     string(n.Role),
		"id":       n.ID,
		"title":    n.Title,
		"children": children,
	})
}

func (v *viewer) form(n ui.Form) (string, error) {
	fields := make([]any, 0, len(n.Fields))
	for _, field := range n.Fields {
		html, err := v.r.exec("field", fieldData(field, n.ID))
		if err != nil {
			return "", err
		}
		fields = append(fields, html)
	}
	submit, err := v.r.exec("button", buttonData(n.Submit))
	if err != nil {
		return "", err
	}
	result, err := v.resultPanel(n.Result)
	if err != nil {
		return "", err
	}

	hidden := make([]any, 0, len(v.hidden))
	for _, field := range v.hidden {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	return v.r.exec("form", map[string]any{
		"id":            n.ID,
		"action":        n.Action,
		"stream_url":    n.StreamURL,
		"title":         n.Title,
		"description":   n.Description,
		"result_id":     n.Result.ID,
		"hidden_fields": hidden,
		"fields":        fields,
		"submit":        submit,
		"result":        result,
	})
}

func (v *viewer) resultPanel(n ui.ResultPanel) (string, error) {
	var steps string
	if n.Steps != nil {
		html, err := v.r.exec("steps", v.stepsData(*n.Steps))
		if err != nil {
			return "", err
		}
		steps = html
	}
	content, err := v.r.markdown.Render(n.Content)
	if err != nil {
		return "", err
	}
	return v.r.exec("result_panel", map[string]any{
		"id":               n.ID,
		"visible":          n.Visible,
		"processing_label": n.ProcessingLabel,
		"steps":            steps,
		"content":          content,
	})
}

func (v *viewer) stepsData(n ui.Steps) map[string]any {
	steps := make([]any, 0, len(n.Steps))
	for _, step := range n.Steps {
		steps = append(steps, map[string]any{
			"label":  step.Label,
			"status": string(step.Status),
			"color":  v.palette.StepColor(step.Status),
		})
	}
	return map[string]any{"title": n.Title, "steps": steps}
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}

func badgeData(b *ui.Badge) map[string]any {
	if b == nil || b.Label == "" {
		return nil
	}
	return map[string]any{"label": b.Label, "color": b.Color}
}

func tableData(n ui.Table) map[string]any {
	columns := make([]any, 0, len(n.Columns))
	for _, col := range n.Columns {
		columns = append(columns, map[string]any{"label": col.Label, "width": col.Width})
	}
	rows := make([]any, 0, len(n.Rows))
	for _, row := range n.Rows {
		cells := make([]any, 0, len(row))
		for _, cell := range row {
			entry := map[string]any{"text": cell.Text}
			if badge := badgeData(cell.Badge); badge != nil {
				entry["badge"] = badge
			}
			cells = append(cells, entry)
		}
		rows = append(rows, cells)
	}
	return map[string]any{"columns": columns, "rows": rows}
}

func itemsData(items []ui.Item) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		entry := map[string]any{"title": item.Title, "subtitle": item.Subtitle}
		if badge := badgeData(item.Badge); badge != nil {
			entry["badge"] = badge
		}
		out = append(out, entry)
	}
	return out
}

func statsData(n ui.StatGrid) map[string]any {
	stats := make([]any, 0, len(n.Stats))
	for _, stat := range n.Stats {
		stats = append(stats, map[string]any{
			"label": stat.Label,
			"value": stat.Value,
			"icon":  stat.Icon,
			"color": stat.Color,
		})
	}
	return map[string]any{"stats": stats}
}

func timelineData(n ui.Timeline) map[string]any {
	events := make([]any, 0, len(n.Events))
	for _, event := range n.Events {
		events = append(events, map[string]any{
			"time":    event.Time,
			"title":   event.Title,
			"agent":   event.Agent,
			"details": event.Details,
		})
	}
	return map[string]any{"events": events, "empty": n.EmptyText}
}

func fieldData(n ui.Field, formID string) map[string]any {
	rows := n.Rows
	if rows <= 0 {
		rows = 3
	}
	options := make([]any, 0, len(n.Options))
	for _, option := range n.Options {
		options = append(options, option)
	}
	id := "field-" + gotemplate.DOMID(n.Key)
	if formID != "" {
		id = gotemplate.DOMID(formID) + "-" + strings.TrimPrefix(id, "field-")
	}
	return map[string]any{
		"id":          id,
		"key":         n.Key,
		"label":       n.Label,
		"type":        string(n.Type),
		"placeholder": n.Placeholder,
		"required":    n.Required,
		"options":     options,
		"rows":        rows,
		"value":       n.Value,
		"error":       n.Error,
	}
}

func buttonData(n ui.Button) map[string]any {
	variant := n.Variant
	if variant == "" {
		variant = "secondary"
	}
	return map[string]any{"label": n.Label, "variant": variant, "action": n.Action}
}

func linksData(n ui.Links) map[string]any {
	items := make([]any, 0, len(n.Items))
	for _, link := range n.Items {
		items = append(items, map[string]any{
			"label":    link.Label,
			"url":      link.URL,
			"current":  link.Current,
			"external": link.External,
		})
	}
	separator := n.Separator
	if separator == "" {
		separator = "|"
	}
	return map[string]any{"items": items, "separator": separator}
}
