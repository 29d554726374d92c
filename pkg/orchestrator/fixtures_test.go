package orchestrator_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LyzrCore/spaces/pkg/blueprint"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/testsupport"
)

type expectedResult struct {
	Identifier     string   `yaml:"identifier"`
	Severity       string   `yaml:"severity"`
	Status         string   `yaml:"status"`
	AssignedSystem string   `yaml:"assigned_system"`
	Workers        []string `yaml:"workers"`
}

func TestProcess_SubmissionFixture(t *testing.T) {
	input := testsupport.MustLoadSubmission(t, filepath.Join("testdata", "outage.yaml"))
	if diff := cmp.Diff([]string{"title", "description", "affected_system", "impacted_users"}, input.Keys()); diff != "" {
		t.Fatalf("fixture key order mismatch (-want +got):\n%s", diff)
	}
	if users, _ := input.Get("impacted_users"); users != 1200 {
		t.Fatalf("impacted_users = %#v", users)
	}

	bp := blueprint.New(blueprint.Spec{
		ID:      "it_incident_management",
		Name:    "IT Incident Management",
		Domain:  blueprint.DomainITOperations,
		Manager: blueprint.Agent{Name: "Incident Coordinator"},
		Workers: []blueprint.Agent{
			{Name: "System Monitoring", Triggers: []string{"cpu", "memory", "slow"}},
			{Name: "Alert Triage", Triggers: []string{"alert", "critical", "urgent"}},
			{Name: "Root Cause Analysis", Triggers: []string{"error", "failure", "bug"}},
			{Name: "Escalation Coordinator", Triggers: []string{"escalate", "notify"}},
		},
	})
	result := orchestrator.New(bp, orchestrator.WithIDGenerator(orchestrator.SequentialIDs(1001))).Process(input)

	var want expectedResult
	testsupport.MustLoadYAML(t, filepath.Join("testdata", "outage_expected.yaml"), &want)
	got := expectedResult{
		Identifier:     result.Identifier,
		Severity:       string(result.Severity),
		Status:         result.Status,
		AssignedSystem: result.AssignedSystem,
		Workers:        result.Workers,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSubmission_Errors(t *testing.T) {
	if _, err := testsupport.LoadSubmission(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := testsupport.LoadSubmission(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
