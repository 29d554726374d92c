package orchestrator

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/LyzrCore/spaces/pkg/blueprint"
)

func itBlueprint() blueprint.Blueprint {
	return blueprint.New(blueprint.Spec{
		ID:      "it_incident_management",
		Name:    "IT Incident Management",
		Domain:  blueprint.DomainITOperations,
		Manager: blueprint.Agent{Name: "Incident Coordinator", Role: "Coordinates incident response"},
		Workers: []blueprint.Agent{
			{Name: "System Monitoring", Role: "Monitors system health", Triggers: []string{"cpu", "memory", "disk", "performance", "slow", "high"}},
			{Name: "Alert Triage", Role: "Prioritizes alerts", Triggers: []string{"alert", "critical", "urgent", "priority"}},
			{Name: "Root Cause Analysis", Role: "Investigates failures", Triggers: []string{"error", "failure", "bug", "issue", "cause"}},
			{Name: "Escalation Coordinator", Role: "Handles escalations", Triggers: []string{"escalate", "notify", "team", "urgent"}},
		},
	})
}

func fixedIDs(id string) IDGenerator {
	return IDGeneratorFunc(func(prefix string) string { return prefix + "-" + id })
}

func TestProcess_OutageExample(t *testing.T) {
	o := New(itBlueprint(), WithIDGenerator(fixedIDs("4242")))
	input := NewSubmission(
		Entry{Key: "title", Value: "DB outage"},
		Entry{Key: "description", Value: "production database down for all users"},
		Entry{Key: "affected_system", Value: "Database"},
	)

	result := o.Process(input)

	if result.Identifier != "INC-4242" {
		t.Fatalf("unexpected identifier %q", result.Identifier)
	}
	if result.Severity != SeverityCritical {
		t.Fatalf("expected critical severity, got %q", result.Severity)
	}
	if result.AssignedSystem != "Database" {
		t.Fatalf("expected assigned system from input, got %q", result.AssignedSystem)
	}
	if result.Title != "DB outage" || result.Status != "In Progress" || result.AssignedTo != "On-Call Team" {
		t.Fatalf("unexpected header fields: %+v", result)
	}
	if result.RootCause != defaultRootCause {
		t.Fatalf("expected default root cause, got %q", result.RootCause)
	}
	if result.Resolution != defaultResolution {
		t.Fatalf("expected default resolution, got %q", result.Resolution)
	}
	if len(result.Timeline) != 4 {
		t.Fatalf("expected 4 timeline events, got %d", len(result.Timeline))
	}
	wantRecs := []string{
		"Monitor system metrics for the next 24 hours",
		"Schedule post-incident review",
		"Update runbook with findings",
	}
	if diff := cmp.Diff(wantRecs, result.Recommendations); diff != "" {
		t.Fatalf("recommendations mismatch (-want +got):\n%s", diff)
	}
	// nothing triggers, so the first three workers stand in
	wantWorkers := []string{"System Monitoring", "Alert Triage", "Root Cause Analysis"}
	if diff := cmp.Diff(wantWorkers, result.Workers); diff != "" {
		t.Fatalf("workers mismatch (-want +got):\n%s", diff)
	}
}

func TestProcess_MissingFieldsUseDefaults(t *testing.T) {
	o := New(itBlueprint(), WithIDGenerator(fixedIDs("1")))
	result := o.Process(NewSubmission())

	if result.Title != "Incident" {
		t.Fatalf("expected default title, got %q", result.Title)
	}
	if result.AssignedSystem != "Unknown System" {
		t.Fatalf("expected default system, got %q", result.AssignedSystem)
	}
	if result.Severity != SeverityLow {
		t.Fatalf("expected low severity, got %q", result.Severity)
	}
}

func TestDetermineSeverity(t *testing.T) {
	cases := []struct {
		text string
		want Severity
	}{
		{"service outage and slow responses", SeverityCritical},
		{"api is slow", SeverityHigh},
		{"high cpu on worker nodes", SeverityHigh},
		{"intermittent failures", SeverityMedium},
		{"error rate climbing", SeverityMedium},
		{"typo on the about page", SeverityLow},
		{"", SeverityLow},
	}
	for _, tc := range cases {
		if got := DetermineSeverity(tc.text); got != tc.want {
			t.Fatalf("DetermineSeverity(%q) = %q, want %q", tc.text, got, tc.want)
		}
		if !DetermineSeverity(tc.text).Valid() {
			t.Fatalf("severity for %q is not a known level", tc.text)
		}
	}
}

func TestBuildTimeline_Shapes(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"nothing to see", 4},
		{"memory pressure", 6},
		{"bad release", 6},
		{"cpu spike after deploy", 8},
	}
	for _, tc := range cases {
		events := BuildTimeline(tc.text)
		if len(events) != tc.want {
			t.Fatalf("timeline for %q: expected %d events, got %d", tc.text, tc.want, len(events))
		}
		if diff := cmp.Diff(timelinePrefix, events[:3]); diff != "" {
			t.Fatalf("timeline prefix mismatch for %q (-want +got):\n%s", tc.text, diff)
		}
		if last := events[len(events)-1]; last != timelineClosing {
			t.Fatalf("timeline for %q must close with %+v, got %+v", tc.text, timelineClosing, last)
		}
	}
}

func TestBuildTimeline_BranchOrder(t *testing.T) {
	events := BuildTimeline("cpu spike after deploy")
	got := []string{events[3].Event, events[4].Event, events[5].Event, events[6].Event}
	want := []string{
		"Resource exhaustion detected",
		"Scaling remediation initiated",
		"Recent deployment identified",
		"Rollback initiated",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("branch order mismatch (-want +got):\n%s", diff)
	}
}

func TestRootCauseAndResolutionPriority(t *testing.T) {
	if got := RootCause("memory and cpu"); !strings.HasPrefix(got, "Root cause identified as CPU") {
		t.Fatalf("cpu must outrank memory, got %q", got)
	}
	if got := RootCause("release went out"); !strings.HasPrefix(got, "Issue traced to recent deployment") {
		t.Fatalf("release must select deployment cause, got %q", got)
	}
	if got := RootCause("timeout and error"); !strings.HasPrefix(got, "Timeout caused by") {
		t.Fatalf("timeout must outrank error, got %q", got)
	}
	if got := RootCause("error spike"); !strings.HasPrefix(got, "Error spike caused by") {
		t.Fatalf("unexpected error cause %q", got)
	}
	// the resolution table has no release row
	if got := Resolution("release went out"); got != defaultResolution {
		t.Fatalf("expected default resolution for release, got %q", got)
	}
	if got := Resolution("deploy failed"); !strings.HasPrefix(got, "1. Initiated rollback") {
		t.Fatalf("unexpected deploy resolution %q", got)
	}
}

func TestRelevantWorkers(t *testing.T) {
	o := New(itBlueprint())

	got := names(o.RelevantWorkers(NewSubmission(Entry{Key: "d", Value: "URGENT: High CPU"})))
	want := []string{"System Monitoring", "Alert Triage", "Escalation Coordinator"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("workers mismatch (-want +got):\n%s", diff)
	}

	empty := New(blueprint.New(blueprint.Spec{ID: "empty"}))
	if workers := empty.RelevantWorkers(NewSubmission(Entry{Key: "d", Value: "cpu"})); len(workers) != 0 {
		t.Fatalf("expected no workers for empty roster, got %v", workers)
	}

	two := New(blueprint.New(blueprint.Spec{ID: "two", Workers: []blueprint.Agent{{Name: "A"}, {Name: "B"}}}))
	if got := names(two.RelevantWorkers(NewSubmission())); !cmp.Equal([]string{"A", "B"}, got) {
		t.Fatalf("expected fallback to both workers, got %v", got)
	}
}

func TestProcess_DomainProfiles(t *testing.T) {
	support := New(blueprint.New(blueprint.Spec{ID: "s", Domain: blueprint.DomainCustomerService}), WithIDGenerator(fixedIDs("7")))
	result := support.Process(NewSubmission(Entry{Key: "query", Value: "billing question"}))
	if result.Identifier != "TKT-7" || result.Status != "Resolved" || result.Category != "General Inquiry" {
		t.Fatalf("unexpected support result: %+v", result)
	}
	if result.ResolutionTime != "15 minutes" || result.Response == "" {
		t.Fatalf("support extras missing: %+v", result)
	}

	generic := New(blueprint.New(blueprint.Spec{ID: "g", Domain: "analytics"}), WithIDGenerator(fixedIDs("8")))
	input := NewSubmission(Entry{Key: "report", Value: "weekly"})
	result = generic.Process(input)
	if result.Identifier != "REQ-8" || result.Status != "Processed" {
		t.Fatalf("unexpected generic result: %+v", result)
	}
	if result.Message != "Your request has been processed successfully." {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.Input == nil || !cmp.Equal(input.Map(), result.Input.Map()) {
		t.Fatalf("expected echoed input, got %+v", result.Input)
	}
	if !result.Severity.Valid() || len(result.Timeline) < 4 {
		t.Fatalf("generic profile must carry the full analysis: %+v", result)
	}
}

func TestProcess_ResultsAreIndependent(t *testing.T) {
	o := New(itBlueprint(), WithIDGenerator(SequentialIDs(1001)))
	first := o.Process(NewSubmission(Entry{Key: "description", Value: "cpu"}))
	first.Timeline[0].Event = "mutated"
	first.Recommendations[0] = "mutated"

	second := o.Process(NewSubmission(Entry{Key: "description", Value: "cpu"}))
	if second.Timeline[0].Event != "Incident reported" || second.Recommendations[0] == "mutated" {
		t.Fatalf("results share state: %+v", second)
	}
	if first.Identifier != "INC-1001" || second.Identifier != "INC-1002" {
		t.Fatalf("unexpected sequential ids %q, %q", first.Identifier, second.Identifier)
	}
}

func TestProcessStream_StageOrder(t *testing.T) {
	var slept []time.Duration
	o := New(itBlueprint(),
		WithIDGenerator(fixedIDs("1")),
		WithSleep(func(d time.Duration) { slept = append(slept, d) }),
	)
	input := NewSubmission(Entry{Key: "description", Value: "disk alert"})

	var events []StreamEvent
	for event := range o.ProcessStream(input) {
		events = append(events, event)
	}

	stages := make([]Stage, 0, len(events))
	for _, event := range events {
		stages = append(stages, event.Stage)
	}
	wantStages := []Stage{StageAnalyzing, StageProcessing, StageProcessing, StageSynthesizing, StageComplete}
	if diff := cmp.Diff(wantStages, stages); diff != "" {
		t.Fatalf("stage order mismatch (-want +got):\n%s", diff)
	}
	if events[0].Agent != "Incident Coordinator" || events[0].Message != "Analyzing your request..." {
		t.Fatalf("unexpected analyzing event %+v", events[0])
	}
	if events[1].Message != "Processing: Monitors system health" {
		t.Fatalf("unexpected processing message %q", events[1].Message)
	}

	final := events[len(events)-1].Result
	if final == nil {
		t.Fatalf("complete event must carry a result")
	}
	if diff := cmp.Diff(o.Process(input), *final); diff != "" {
		t.Fatalf("streamed result differs from Process (-want +got):\n%s", diff)
	}

	wantSleeps := []time.Duration{500 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond}
	if diff := cmp.Diff(wantSleeps, slept); diff != "" {
		t.Fatalf("sleep schedule mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessStream_ZeroDelaysCompletes(t *testing.T) {
	o := New(itBlueprint(), WithStageDelays(StageDelays{}))
	events := o.ProcessStream(NewSubmission())

	deadline := time.After(2 * time.Second)
	count := 0
	for {
		select {
		case _, ok := <-events:
			if !ok {
				if count != 6 {
					t.Fatalf("expected 6 events, got %d", count)
				}
				return
			}
			count++
		case <-deadline:
			t.Fatalf("stream did not complete")
		}
	}
}

func names(agents []blueprint.Agent) []string {
	out := make([]string, 0, len(agents))
	for _, agent := range agents {
		out = append(out, agent.Name)
	}
	return out
}
