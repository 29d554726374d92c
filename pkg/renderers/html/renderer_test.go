package html_test

import (
	"context"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/microcosm-cc/bluemonday"

	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/renderers/html"
	"github.com/LyzrCore/spaces/pkg/ui"
)

func newRenderer(t *testing.T) *html.Renderer {
	t.Helper()
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderString(t *testing.T, node ui.Node, opts render.RenderOptions) string {
	t.Helper()
	out, err := newRenderer(t).Render(context.Background(), node, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(out, part) {
			t.Fatalf("expected output to contain %q\n%s", part, out)
		}
	}
}

func TestRender_DocumentLayout(t *testing.T) {
	out := renderString(t, ui.Heading{Level: 1, Text: "IT Service Desk"}, render.RenderOptions{Title: "IT Service Desk"})

	assertContains(t, out,
		"<!DOCTYPE html>",
		"<title>IT Service Desk</title>",
		`<h1 class="sp-heading">IT Service Desk</h1>`,
		`href="/assets/spaces.css"`,
		"--status-open: #ef4444;",
		`data-theme="spaces"`,
	)
}

func TestRender_FragmentSkipsLayout(t *testing.T) {
	out := renderString(t, ui.Text{Text: "<b>hi</b>", Muted: true}, render.RenderOptions{Fragment: true})

	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Fatalf("fragment should not include layout:\n%s", out)
	}
	assertContains(t, out, "sp-muted", "&lt;b&gt;hi&lt;/b&gt;")
}

func TestRender_TableKeepsRowOrderAndBadges(t *testing.T) {
	table := ui.Table{
		Columns: []ui.Column{{Key: "id", Label: "ID", Width: "100px"}, {Key: "status", Label: "Status", Badge: true}},
		Rows: [][]ui.Cell{
			{{Text: "INC-2"}, {Text: "Open", Badge: &ui.Badge{Label: "Open", Color: "#ef4444"}}},
			{{Text: "INC-1"}, {Text: ""}},
		},
	}
	out := renderString(t, table, render.RenderOptions{Fragment: true})

	assertContains(t, out, `style="width: 100px"`, `background-color: #ef4444">Open</span>`)
	if strings.Index(out, "INC-2") > strings.Index(out, "INC-1") {
		t.Fatalf("rows out of order:\n%s", out)
	}
}

func TestRender_MarkdownIsSanitized(t *testing.T) {
	out := renderString(t, ui.Markdown{Source: "### Result\n\n**Severity:** P1\n\n<script>alert(1)</script>"}, render.RenderOptions{Fragment: true})

	assertContains(t, out, "<h3", "Result</h3>", "<strong>Severity:</strong> P1")
	if strings.Contains(out, "<script>") {
		t.Fatalf("script tag survived sanitizing:\n%s", out)
	}
}

func TestRender_FormWithHiddenFieldsAndResult(t *testing.T) {
	form := ui.Form{
		ID:        "new",
		Action:    "/apps/it_service_desk/submit",
		StreamURL: "/apps/it_service_desk/stream",
		Title:     "Report New Incident",
		Fields: []ui.Field{
			{Key: "title", Label: "Incident Title *", Type: ui.FieldText, Required: true, Error: "Incident Title is required"},
			{Key: "description", Label: "Description *", Type: ui.FieldTextarea, Rows: 5, Required: true},
			{Key: "affected_system", Label: "Affected System *", Type: ui.FieldSelect, Options: []string{"Database", "Other"}, Value: "Database"},
		},
		Submit: ui.Button{Label: "Submit Incident", Variant: "primary", Action: "/apps/it_service_desk/submit"},
		Result: ui.ResultPanel{
			ID:      "new-result",
			Visible: true,
			Steps:   &ui.Steps{Title: "Analyzing incident...", Steps: []ui.Step{{Label: "Alert Triage", Status: ui.StepComplete}}},
			Content: "### Result\n\n**Status:** In Progress",
		},
	}
	out := renderString(t, form, render.RenderOptions{
		Fragment:     true,
		HiddenFields: map[string]string{"_page": "/new"},
	})

	assertContains(t, out,
		`action="/apps/it_service_desk/submit"`,
		`data-stream-url="/apps/it_service_desk/stream"`,
		`<input type="hidden" name="_page" value="/new">`,
		`id="new-title"`,
		`rows="5"`,
		`<option value="Database" selected>Database</option>`,
		"Incident Title is required",
		`<button class="sp-button sp-button-primary" type="submit">Submit Incident</button>`,
		`id="new-result"`,
		"sp-step-complete",
		"<strong>Status:</strong> In Progress",
	)
	if strings.Contains(out, `id="new-result" data-processing-label="" hidden`) {
		t.Fatalf("visible result panel rendered hidden:\n%s", out)
	}
}

func TestRender_HiddenResultPanel(t *testing.T) {
	out := renderString(t, ui.ResultPanel{ID: "result", ProcessingLabel: "Processing..."}, render.RenderOptions{Fragment: true})
	assertContains(t, out, `data-processing-label="Processing..." hidden`)
}

func TestRender_ContainerTree(t *testing.T) {
	tree := ui.Container{Role: ui.RolePage, Children: []ui.Node{
		ui.Group(ui.RoleHeader, ui.Heading{Level: 1, Text: "Analytics"}),
		ui.Group(ui.RoleRow,
			ui.Group(ui.RoleSidebar, ui.Links{Items: []ui.Link{{Label: "Overview", Current: true}, {Label: "Reports", URL: "?page=/reports"}}}),
			ui.Group(ui.RoleMain,
				ui.StatGrid{Stats: []ui.Stat{{Label: "Total Users", Value: "1234", Icon: "👥", Color: "#3b82f6"}}},
				ui.Section("Recent Items", ui.Timeline{EmptyText: "No activity yet"}),
				ui.EmptyState{Icon: "📭", Title: "No items yet"},
				ui.Notice{Level: ui.NoticeError, Title: "Page unavailable", Message: "form has no fields"},
				ui.KeyValues{Items: []ui.KeyValue{{Label: "Owner", Value: "N/A"}}},
				ui.Cards{Items: []ui.Item{{Title: "Card", Badge: &ui.Badge{Label: "Open", Color: "#ef4444"}}}},
				ui.CompactList{Items: []ui.Item{{Title: "Row", Subtitle: "2024-01-15"}}},
			),
		),
		ui.Group(ui.RoleFooter, ui.Markdown{Source: "**Powered by Lyzr** | [lyzr.space](https://lyzr.space)"}),
	}}
	out := renderString(t, tree, render.RenderOptions{Fragment: true})

	assertContains(t, out,
		`<header class="sp-header">`,
		`<nav class="sp-sidebar">`,
		`<strong aria-current="page">Overview</strong> | <a href="?page=/reports">Reports</a>`,
		`<span class="sp-stat-value" style="color: #3b82f6">1234</span>`,
		"<h3>Recent Items</h3>",
		"No activity yet",
		"📭",
		`role="alert"`,
		"<dt>Owner</dt><dd>N/A</dd>",
		"sp-card",
		"2024-01-15",
		`<a href="https://lyzr.space"`,
	)
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{html.StylesheetName, html.RuntimeScriptName} {
		data, err := fs.ReadFile(html.AssetsFS(), name)
		if err != nil || len(data) == 0 {
			t.Fatalf("asset %s missing: %v", name, err)
		}
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != "html" || !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected metadata %q %q", r.Name(), r.ContentType())
	}
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil node")
	}
}

func TestRenderer_TemplateOverrides(t *testing.T) {
	files := fstest.MapFS{
		"templates/heading.tmpl": {Data: []byte("<h{{ level }}>[{{ text }}]</h{{ level }}>")},
	}
	r, err := html.New(html.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), ui.Heading{Level: 2, Text: "Overview"}, render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "<h2>[Overview]</h2>" {
		t.Fatalf("unexpected output %q", out)
	}

	dir := t.TempDir()
	r, err = html.New(html.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), ui.Heading{Level: 1, Text: "x"}, render.RenderOptions{Fragment: true}); err == nil {
		t.Fatalf("expected error for a directory without templates")
	}
}

type recordingTemplates struct {
	names []string
}

func (r *recordingTemplates) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	return "<" + name + ">", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *recordingTemplates) GlobalContext(any) error { return nil }

func TestRenderer_DelegatesToTemplateRenderer(t *testing.T) {
	templates := &recordingTemplates{}
	r, err := html.New(html.WithTemplateRenderer(templates))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), ui.Heading{Level: 1, Text: "Hi"}, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{"templates/heading.tmpl", "templates/page.tmpl"}
	if strings.Join(templates.names, ",") != strings.Join(want, ",") {
		t.Fatalf("templates = %v, want %v", templates.names, want)
	}
}

func TestRenderer_MarkdownPolicy(t *testing.T) {
	r, err := html.New(html.WithPolicy(bluemonday.StrictPolicy()))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), ui.Markdown{Source: "**bold** text"}, render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<strong>") || !strings.Contains(string(out), "bold text") {
		t.Fatalf("strict policy output %q", out)
	}
}
