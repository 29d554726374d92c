package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/LyzrCore/spaces/pkg/blueprint"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/registry"
	"github.com/LyzrCore/spaces/pkg/ui"
)

func loadDefinition(t *testing.T) Definition {
	t.Helper()
	data, err := os.ReadFile("testdata/service_desk.yaml")
	if err != nil {
		t.Fatalf("read definition: %v", err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	return def
}

func testOrchestrator() *orchestrator.Orchestrator {
	bp := blueprint.New(blueprint.Spec{
		ID:      "it-incident-response",
		Name:    "IT Incident Response",
		Domain:  blueprint.DomainITOperations,
		Manager: blueprint.Agent{Name: "Incident Coordinator"},
		Workers: []blueprint.Agent{
			{Name: "System Monitoring", Role: "Monitors system health", Triggers: []string{"cpu", "slow"}},
			{Name: "Alert Triage", Role: "Triages alerts", Triggers: []string{"critical"}},
			{Name: "Root Cause Analysis", Role: "Finds root causes", Triggers: []string{"error"}},
		},
	})
	return orchestrator.New(bp,
		orchestrator.WithIDGenerator(orchestrator.SequentialIDs(1001)),
		orchestrator.WithSleep(func(time.Duration) {}),
	)
}

func newApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	a, err := New(loadDefinition(t), registry.Default(), opts...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestNew_UnknownApp(t *testing.T) {
	_, err := New(Definition{ID: "missing"}, registry.Default())
	if !errors.Is(err, registry.ErrAppNotFound) {
		t.Fatalf("expected ErrAppNotFound, got %v", err)
	}
}

func TestNew_DuplicatePath(t *testing.T) {
	def := Definition{ID: "dashboard", Pages: []PageSpec{{Path: "/"}, {Path: ""}}}
	_, err := New(def, registry.Default())
	if !errors.Is(err, ErrDuplicatePage) {
		t.Fatalf("expected ErrDuplicatePage, got %v", err)
	}
}

func TestNew_KeepsBrokenPages(t *testing.T) {
	a := newApp(t)

	want := []string{"/", "/incidents", "/incident", "/archive", "/new", "/broken"}
	if diff := cmp.Diff(want, a.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	broken, _ := a.Page("broken")
	if !errors.Is(broken.Err, page.ErrInvalidConfig) {
		t.Fatalf("expected config error, got %v", broken.Err)
	}
	if len(a.Forms()) != 1 {
		t.Fatalf("expected one valid form, got %d", len(a.Forms()))
	}

	node, err := a.Content(View{Path: "/broken"})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	notice, ok := node.(ui.Notice)
	if !ok || notice.Level != ui.NoticeError {
		t.Fatalf("expected error notice, got %#v", node)
	}
}

func TestRenderPage_Layout(t *testing.T) {
	a := newApp(t)

	node, err := a.RenderPage(View{Path: "/incidents"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}

	headings := ui.Find(node, ui.KindHeading)
	if len(headings) == 0 || headings[0].(ui.Heading).Text != "IT Service Desk" {
		t.Fatalf("unexpected first heading %#v", headings)
	}

	links := ui.Find(node, ui.KindLinks)
	if len(links) != 3 {
		t.Fatalf("expected header, sidebar and nav links, got %d", len(links))
	}
	header := links[0].(ui.Links)
	if len(header.Items) != 2 || header.Items[0].Label != "⭐ GitHub" {
		t.Fatalf("unexpected header links %#v", header.Items)
	}
	sidebar := links[1].(ui.Links)
	want := []ui.Link{
		{Label: "📊 Dashboard", URL: "/apps/it_service_desk?page=/"},
		{Label: "🎫 Incidents", URL: "/apps/it_service_desk?page=/incidents", Current: true},
		{Label: "➕ New Incident", URL: "/apps/it_service_desk?page=/new"},
	}
	if diff := cmp.Diff(want, sidebar.Items); diff != "" {
		t.Fatalf("sidebar mismatch (-want +got):\n%s", diff)
	}
	nav := links[2].(ui.Links)
	var current []string
	for _, link := range nav.Items {
		if link.Current {
			current = append(current, link.Label)
		}
	}
	if len(current) != 1 {
		t.Fatalf("expected exactly one current app, got %v", current)
	}

	var footer bool
	for _, n := range ui.Find(node, ui.KindMarkdown) {
		if n.(ui.Markdown).Source == FooterMarkdown {
			footer = true
		}
	}
	if !footer {
		t.Fatalf("footer missing")
	}
	if len(ui.Find(node, ui.KindTable)) != 1 {
		t.Fatalf("expected the incidents table")
	}
}

func TestContent_UnknownPath(t *testing.T) {
	_, err := newApp(t).Content(View{Path: "/nope"})
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestData_DataKeyThenMockData(t *testing.T) {
	a := newApp(t, WithData("dashboard", map[string]any{"open_count": 7}))

	home, _ := a.Page("/")
	if got := a.Data(home).(map[string]any)["open_count"]; got != 7 {
		t.Fatalf("WithData should override definition data, got %v", got)
	}
	archive, _ := a.Page("/archive")
	node, err := a.Content(View{Path: archive.Path})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	tables := ui.Find(node, ui.KindTable)
	if len(tables) != 1 || tables[0].(ui.Table).Rows[0][0].Text != "INC-0900" {
		t.Fatalf("expected mock data table, got %#v", node)
	}
}

func TestContent_DetailSelection(t *testing.T) {
	a := newApp(t)

	node, err := a.Content(View{Path: "/incident"})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if md, ok := node.(ui.Markdown); !ok || md.Source != SelectItemText {
		t.Fatalf("expected selection prompt, got %#v", node)
	}

	node, err = a.Content(View{Path: "/incident", Item: "INC-1003"})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	headings := ui.Find(node, ui.KindHeading)
	if len(headings) == 0 || headings[0].(ui.Heading).Text != "Slow Dashboard Loading" {
		t.Fatalf("unexpected detail headings %#v", headings)
	}
	badges := ui.Find(node, ui.KindBadge)
	if len(badges) != 1 || badges[0].(ui.Badge).Label != "Open" {
		t.Fatalf("unexpected badges %#v", badges)
	}
}

func TestContent_FormBinding(t *testing.T) {
	a := newApp(t)

	node, err := a.Content(View{Path: "/new"})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	form, ok := node.(ui.Form)
	if !ok {
		t.Fatalf("expected form, got %T", node)
	}
	if form.ID != "new" || form.Action != "/apps/it_service_desk/submit" || form.StreamURL != "/apps/it_service_desk/stream" {
		t.Fatalf("unexpected form binding %q %q %q", form.ID, form.Action, form.StreamURL)
	}
	if form.Result.Visible {
		t.Fatalf("result panel should start hidden")
	}
}

func TestSubmit_MissingRequired(t *testing.T) {
	a := newApp(t, WithOrchestrator(testOrchestrator()))

	outcome, err := a.Submit(context.Background(), "/new", map[string]string{"title": "  "})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]string{
		"title":       "Incident Title is required",
		"description": "Description is required",
	}
	if diff := cmp.Diff(want, outcome.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if outcome.Result != nil || outcome.Markdown != "" {
		t.Fatalf("invalid submission should not be processed")
	}

	node, err := a.Content(outcome.View())
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	form := node.(ui.Form)
	if form.Fields[0].Error != "Incident Title is required" {
		t.Fatalf("field error not rendered: %#v", form.Fields[0])
	}
}

func TestSubmit_Processes(t *testing.T) {
	a := newApp(t, WithOrchestrator(testOrchestrator()))

	outcome, err := a.Submit(context.Background(), "/new", map[string]string{
		"title":           "Database slow",
		"description":     "CPU at 100% on the primary",
		"affected_system": "Database",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Result == nil || outcome.Result.Identifier != "INC-1001" {
		t.Fatalf("unexpected result %#v", outcome.Result)
	}
	if !strings.HasPrefix(outcome.Markdown, "### Result\n\n**Incident Id:** INC-1001\n\n**Title:** Database slow") {
		t.Fatalf("unexpected markdown:\n%s", outcome.Markdown)
	}
	if outcome.Steps == nil || outcome.Steps.Title != "Analyzing incident..." {
		t.Fatalf("unexpected steps %#v", outcome.Steps)
	}
	for _, step := range outcome.Steps.Steps {
		if step.Status != ui.StepComplete {
			t.Fatalf("step %q not complete", step.Label)
		}
	}

	keys := outcome.Submission.Keys()
	if diff := cmp.Diff([]string{"title", "description", "affected_system"}, keys); diff != "" {
		t.Fatalf("submission order mismatch (-want +got):\n%s", diff)
	}

	node, err := a.Content(outcome.View())
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	form := node.(ui.Form)
	if !form.Result.Visible || form.Result.Content != outcome.Markdown {
		t.Fatalf("result panel not populated: %#v", form.Result)
	}
}

func TestSubmit_NoOrchestrator(t *testing.T) {
	outcome, err := newApp(t).Submit(context.Background(), "/new", map[string]string{"title": "x", "description": "y"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := "### Result\n\n*Processing complete (no orchestrator configured)*"
	if outcome.Markdown != want {
		t.Fatalf("got %q want %q", outcome.Markdown, want)
	}
}

func TestSubmit_NotForm(t *testing.T) {
	_, err := newApp(t).Submit(context.Background(), "/incidents", nil)
	if !errors.Is(err, ErrNotForm) {
		t.Fatalf("expected ErrNotForm, got %v", err)
	}
}

func TestStream_StepsAdvance(t *testing.T) {
	a := newApp(t, WithOrchestrator(testOrchestrator()))

	updates, err := a.Stream(context.Background(), "/new", map[string]string{
		"title":       "Checkout slow",
		"description": "critical error on payment",
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}

	var got []orchestrator.Stage
	var last StreamUpdate
	for update := range updates {
		got = append(got, update.Event.Stage)
		last = update
		if update.Event.Stage == orchestrator.StageAnalyzing && update.Steps.Steps[0].Status != ui.StepActive {
			t.Fatalf("analysis step should be active: %#v", update.Steps)
		}
	}

	want := []orchestrator.Stage{
		orchestrator.StageAnalyzing,
		orchestrator.StageProcessing,
		orchestrator.StageProcessing,
		orchestrator.StageProcessing,
		orchestrator.StageSynthesizing,
		orchestrator.StageComplete,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}
	if last.Outcome == nil || last.Outcome.Result == nil {
		t.Fatalf("final update missing outcome")
	}
	if !strings.Contains(last.Outcome.Markdown, "**Severity:** P1 - Critical") {
		t.Fatalf("unexpected markdown:\n%s", last.Outcome.Markdown)
	}
}

func TestStream_InvalidYieldsSingleUpdate(t *testing.T) {
	a := newApp(t, WithOrchestrator(testOrchestrator()))

	updates, err := a.Stream(context.Background(), "/new", nil)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	var count int
	var last StreamUpdate
	for update := range updates {
		count++
		last = update
	}
	if count != 1 || last.Outcome == nil || last.Outcome.Valid() {
		t.Fatalf("expected one invalid outcome, got %d updates", count)
	}
}
