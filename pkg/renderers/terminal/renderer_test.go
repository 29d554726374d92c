package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"

	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/ui"
)

func renderString(t *testing.T, node ui.Node, opts render.RenderOptions) string {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	out, err := New(WithWidth(60)).Render(context.Background(), node, opts)
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

func TestRender_Table(t *testing.T) {
	table := ui.Table{
		Columns: []ui.Column{{Key: "id", Label: "ID"}, {Key: "status", Label: "Status", Badge: true}},
		Rows: [][]ui.Cell{
			{{Text: "INC-2"}, {Text: "Open", Badge: &ui.Badge{Label: "Open", Color: "#ef4444"}}},
			{{Text: "INC-1"}, {Text: "Resolved", Badge: &ui.Badge{Label: "Resolved"}}},
		},
	}
	out := renderString(t, table, render.RenderOptions{Fragment: true})

	assertContains(t, out, "ID", "Status", "INC-2", "[Open]", "[Resolved]")
	if strings.Index(out, "INC-2") > strings.Index(out, "INC-1") {
		t.Fatalf("rows out of order:\n%s", out)
	}
}

func TestRender_PageTree(t *testing.T) {
	tree := ui.Container{Role: ui.RolePage, Children: []ui.Node{
		ui.Group(ui.RoleHeader, ui.Heading{Level: 1, Text: "IT Service Desk"}),
		ui.Group(ui.RoleMain,
			ui.StatGrid{Stats: []ui.Stat{{Label: "Open", Value: "2", Icon: "🔴", Color: "#ef4444"}}},
			ui.Section("Recent Items", ui.Timeline{Events: []ui.Event{{Time: "00:00", Title: "Incident reported", Agent: "System Monitoring"}}}),
			ui.KeyValues{Items: []ui.KeyValue{{Label: "Owner", Value: "N/A"}}},
			ui.CompactList{Items: []ui.Item{{Title: "Database slow", Subtitle: "2024-01-15"}}},
			ui.Notice{Level: ui.NoticeError, Title: "Page unavailable", Message: "form has no fields"},
			ui.EmptyState{Icon: "📭", Title: "No items yet"},
		),
		ui.Group(ui.RoleFooter, ui.Markdown{Source: "**Powered by Lyzr** | [lyzr.space](https://lyzr.space)"}),
	}}
	out := renderString(t, tree, render.RenderOptions{Title: "Spaces"})

	assertContains(t, out,
		"Spaces",
		"IT Service Desk",
		"🔴 Open",
		"Recent Items",
		"00:00",
		"Incident reported",
		"(System Monitoring)",
		"Owner",
		"N/A",
		"Database slow",
		"[ERROR]",
		"form has no fields",
		"No items yet",
		"**Powered by Lyzr**",
		"────",
	)
}

func TestRender_FormWithResult(t *testing.T) {
	form := ui.Form{
		Title: "Report New Incident",
		Fields: []ui.Field{
			{Key: "title", Label: "Incident Title *", Type: ui.FieldText, Error: "Incident Title is required"},
			{Key: "severity", Label: "Severity", Type: ui.FieldSelect, Options: []string{"P1", "P2"}},
		},
		Submit: ui.Button{Label: "Submit Incident", Variant: "primary"},
		Result: ui.ResultPanel{
			Visible: true,
			Steps:   &ui.Steps{Steps: []ui.Step{{Label: "Alert Triage", Status: ui.StepComplete}, {Label: "Diagnostics", Status: ui.StepPending}}},
			Content: "### Result",
		},
	}
	out := renderString(t, form, render.RenderOptions{Fragment: true})

	assertContains(t, out, "Incident Title is required", "P1 / P2", "[ Submit Incident ]", "✓", "Alert Triage", "○", "### Result")
}

func TestRender_HiddenResultPanelIsEmpty(t *testing.T) {
	out := renderString(t, ui.ResultPanel{Content: "secret"}, render.RenderOptions{Fragment: true})
	if strings.Contains(out, "secret") {
		t.Fatalf("hidden panel rendered content: %q", out)
	}
}

func TestRender_Links(t *testing.T) {
	out := renderString(t, ui.Links{Items: []ui.Link{
		{Label: "Dashboard", Current: true},
		{Label: "Analytics", URL: "https://analytics.lyzr.space", External: true},
	}}, render.RenderOptions{Fragment: true})
	assertContains(t, out, "Dashboard", " | Analytics <https://analytics.lyzr.space>")
}

func TestRenderer_Metadata(t *testing.T) {
	r := New()
	if r.Name() != Name || !strings.HasPrefix(r.ContentType(), "text/plain") {
		t.Fatalf("unexpected metadata %q %q", r.Name(), r.ContentType())
	}
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil node")
	}
}

type stubDriver struct {
	inputs    []string
	selectIdx []int
	textAreas []string

	inputPos    int
	selectPos   int
	textAreaPos int

	decline  bool
	confirms []string
	rejected []string
	infos    []string
}

// nextValid feeds scripted answers through the validator the way survey
// re-prompts until one passes.
func (s *stubDriver) nextValid(answers []string, pos *int, validate func(string) error) (string, error) {
	for *pos < len(answers) {
		answer := answers[*pos]
		*pos++
		if validate != nil {
			if err := validate(answer); err != nil {
				s.rejected = append(s.rejected, err.Error())
				continue
			}
		}
		return answer, nil
	}
	return "", ErrAborted
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	return s.nextValid(s.inputs, &s.inputPos, cfg.Validator)
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return 0, ErrAborted
	}
	idx := s.selectIdx[s.selectPos]
	s.selectPos++
	return idx, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	return s.nextValid(s.textAreas, &s.textAreaPos, cfg.Validator)
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirms = append(s.confirms, cfg.Message)
	return !s.decline, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func incidentForm() ui.Form {
	return ui.Form{
		Title:  "Report New Incident",
		Submit: ui.Button{Label: "Submit Incident"},
		Fields: []ui.Field{
			{Key: "title", Label: "Incident Title *", Type: ui.FieldText, Required: true},
			{Key: "description", Label: "Description *", Type: ui.FieldTextarea, Required: true},
			{Key: "affected_system", Label: "Affected System", Type: ui.FieldSelect, Options: []string{"Database", "Network", "Other"}},
			{Key: "users", Label: "Users Affected", Type: ui.FieldNumber},
		},
	}
}

func TestPrompt_CollectsInDeclaredOrder(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Database slow", "many", " 42 "},
		textAreas: []string{"Queries time out"},
		selectIdx: []int{1},
	}
	values, err := NewPrompter(WithPromptDriver(driver)).Prompt(context.Background(), incidentForm())
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}

	want := map[string]string{
		"title":           "Database slow",
		"description":     "Queries time out",
		"affected_system": "Network",
		"users":           "42",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	wantRejected := []string{"Incident Title is required", "Users Affected must be a number"}
	if diff := cmp.Diff(wantRejected, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Report New Incident"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Submit Incident?"}, driver.confirms); diff != "" {
		t.Fatalf("confirms mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompt_Declined(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Database slow", "3"},
		textAreas: []string{"Queries time out"},
		selectIdx: []int{0},
		decline:   true,
	}
	_, err := NewPrompter(WithPromptDriver(driver)).Prompt(context.Background(), incidentForm())
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestPrompt_Aborted(t *testing.T) {
	driver := &stubDriver{}
	_, err := NewPrompter(WithPromptDriver(driver)).Prompt(context.Background(), incidentForm())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestPrompt_NoFields(t *testing.T) {
	_, err := NewPrompter(WithPromptDriver(&stubDriver{})).Prompt(context.Background(), ui.Form{})
	if !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}
