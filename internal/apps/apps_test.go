package apps

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/registry"
	"github.com/LyzrCore/spaces/pkg/ui"
)

func buildCatalog(t *testing.T, reg *registry.Registry) *Catalog {
	t.Helper()
	catalog, err := Build(reg,
		WithOrchestratorOptions(
			orchestrator.WithIDGenerator(orchestrator.SequentialIDs(1001)),
			orchestrator.WithSleep(func(time.Duration) {}),
		),
		WithClock(func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return catalog
}

func TestBuild_RegistryOrder(t *testing.T) {
	catalog := buildCatalog(t, registry.Default())

	want := []string{"dashboard", "analytics", "it_service_desk"}
	if diff := cmp.Diff(want, catalog.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	for _, a := range catalog.Apps() {
		for _, p := range a.Pages() {
			if p.Err != nil {
				t.Fatalf("%s%s: %v", a.ID(), p.Path, p.Err)
			}
		}
	}
}

func TestBuild_SkipsAppsMissingFromRegistry(t *testing.T) {
	reg := registry.MustNew(registry.App{ID: "analytics", Name: "Analytics", URL: "https://analytics.lyzr.space"})
	catalog := buildCatalog(t, reg)

	if catalog.Len() != 1 {
		t.Fatalf("expected only analytics, got %v", catalog.IDs())
	}
	if _, ok := catalog.Get("it_service_desk"); ok {
		t.Fatalf("it_service_desk should be skipped")
	}
}

func TestDashboardStats(t *testing.T) {
	incidents, err := SampleIncidents()
	if err != nil {
		t.Fatalf("sample incidents: %v", err)
	}
	if len(incidents) != 5 {
		t.Fatalf("expected 5 sample incidents, got %d", len(incidents))
	}

	stats := DashboardStats(incidents)
	got := map[string]any{
		"open":        stats["open_count"],
		"in_progress": stats["in_progress_count"],
		"resolved":    stats["resolved_count"],
		"total":       stats["total_count"],
	}
	want := map[string]any{"open": 1, "in_progress": 1, "resolved": 3, "total": 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceDesk_Pages(t *testing.T) {
	catalog := buildCatalog(t, registry.Default())
	desk, ok := catalog.Get("it_service_desk")
	if !ok {
		t.Fatalf("it_service_desk missing")
	}
	if desk.Orchestrator() == nil || desk.Orchestrator().Blueprint().ID() != "it-incident-response" {
		t.Fatalf("expected it-incident-response orchestrator")
	}

	home, err := desk.Content(app.View{})
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	stats := ui.Find(home, ui.KindStatGrid)
	if len(stats) != 1 {
		t.Fatalf("expected stat grid on home")
	}
	var values []string
	for _, stat := range stats[0].(ui.StatGrid).Stats {
		values = append(values, stat.Label+"="+stat.Value)
	}
	if diff := cmp.Diff([]string{"Open=1", "In Progress=1", "Resolved=3", "Total=5"}, values); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	list, err := desk.Content(app.View{Path: "/incidents"})
	if err != nil {
		t.Fatalf("incidents: %v", err)
	}
	tables := ui.Find(list, ui.KindTable)
	if len(tables) != 1 || len(tables[0].(ui.Table).Rows) != 5 {
		t.Fatalf("expected 5 incident rows")
	}

	detail, err := desk.Content(app.View{Path: "/incident", Item: "INC-1001"})
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(ui.Find(detail, ui.KindTimeline)) != 1 {
		t.Fatalf("expected incident timeline")
	}
}

func TestServiceDesk_Submit(t *testing.T) {
	catalog := buildCatalog(t, registry.Default())
	desk, _ := catalog.Get("it_service_desk")

	outcome, err := desk.Submit(context.Background(), "/new", map[string]string{
		"title":           "Checkout errors",
		"description":     "Production checkout is down after the release",
		"affected_system": "API Gateway",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	result := outcome.Result
	if result.Identifier != "INC-1001" || result.Severity != orchestrator.SeverityCritical {
		t.Fatalf("unexpected result %s %s", result.Identifier, result.Severity)
	}
	if result.AssignedSystem != "API Gateway" || result.AssignedTo != "On-Call Team" {
		t.Fatalf("unexpected assignment %q %q", result.AssignedSystem, result.AssignedTo)
	}
	if !strings.Contains(outcome.Markdown, "- Rollback initiated") {
		t.Fatalf("expected deployment branch in timeline:\n%s", outcome.Markdown)
	}
}

func TestAnalytics_ExportUsesDefaultProfile(t *testing.T) {
	catalog := buildCatalog(t, registry.Default())
	analytics, _ := catalog.Get("analytics")

	outcome, err := analytics.Submit(context.Background(), "/export", map[string]string{
		"date_range":  "Last 30 Days",
		"metric_type": "Users",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.HasPrefix(outcome.Result.Identifier, "REQ-") || outcome.Result.Status != "Processed" {
		t.Fatalf("unexpected result %#v", outcome.Result)
	}
	if diff := cmp.Diff([]string{"Data Collector", "Trend Analyst"}, outcome.Result.Workers); diff != "" {
		t.Fatalf("workers mismatch (-want +got):\n%s", diff)
	}
}

func TestDashboard_Directory(t *testing.T) {
	catalog := buildCatalog(t, registry.Default())
	dash, _ := catalog.Get("dashboard")

	node, err := dash.Content(app.View{Path: "/apps"})
	if err != nil {
		t.Fatalf("apps page: %v", err)
	}
	cards := ui.Find(node, ui.KindCards)
	if len(cards) != 1 {
		t.Fatalf("expected app cards, got %#v", node)
	}
	var titles []string
	for _, item := range cards[0].(ui.Cards).Items {
		titles = append(titles, item.Title)
	}
	if diff := cmp.Diff([]string{"Dashboard", "Analytics", "IT Service Desk"}, titles); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}

	status, err := dash.Content(app.View{Path: "/status"})
	if err != nil {
		t.Fatalf("status page: %v", err)
	}
	var found bool
	for _, n := range ui.Find(status, ui.KindKeyValues) {
		for _, kv := range n.(ui.KeyValues).Items {
			if kv.Label == "Last Checked" && kv.Value == "2024-01-15 10:00:00" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected last checked timestamp")
	}
}
