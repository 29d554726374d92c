package blueprint

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestNew_NormalizesTriggers(t *testing.T) {
	bp := New(Spec{
		ID:     " ops ",
		Domain: "IT_Operations",
		Workers: []Agent{
			{Name: "Monitor", Triggers: []string{" CPU ", "cpu", "", "Memory"}},
		},
	})

	if bp.ID() != "ops" {
		t.Fatalf("expected trimmed id, got %q", bp.ID())
	}
	if bp.Domain() != DomainITOperations {
		t.Fatalf("expected lowercased domain, got %q", bp.Domain())
	}
	want := []string{"cpu", "memory"}
	if diff := cmp.Diff(want, bp.Workers()[0].Triggers); diff != "" {
		t.Fatalf("triggers mismatch (-want +got):\n%s", diff)
	}
}

func TestBlueprint_WorkersReturnsCopy(t *testing.T) {
	bp := New(Spec{
		ID:      "copy",
		Workers: []Agent{{Name: "A", Triggers: []string{"x"}}},
	})

	workers := bp.Workers()
	workers[0].Name = "mutated"
	workers[0].Triggers[0] = "mutated"

	again := bp.Workers()
	if again[0].Name != "A" || again[0].Triggers[0] != "x" {
		t.Fatalf("blueprint mutated through accessor: %+v", again[0])
	}
}

func TestAgent_MatchesCaseInsensitive(t *testing.T) {
	agent := Agent{Name: "Triage", Triggers: []string{"Critical"}}
	if !agent.Matches("a critical alert") {
		t.Fatalf("expected match on lowercased text")
	}
	if agent.Matches("nothing relevant") {
		t.Fatalf("unexpected match")
	}
	if (Agent{Triggers: []string{""}}).Matches("anything") {
		t.Fatalf("empty trigger must never match")
	}
}

func TestParse_YAMLAndJSON(t *testing.T) {
	yamlDoc := []byte(`
id: support
name: Support
domain: customer_service
manager:
  name: Lead
  role: Routes tickets
workers:
  - name: Billing
    role: Answers billing questions
    triggers: [invoice, refund]
`)
	bp, err := Parse(yamlDoc, "support.yaml")
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if bp.Manager().Name != "Lead" || bp.WorkerCount() != 1 {
		t.Fatalf("unexpected blueprint: %+v", bp.Spec())
	}

	jsonDoc := []byte(`{"id":"j","workers":[{"name":"W","triggers":["A"]}]}`)
	bp, err = Parse(jsonDoc, "j.json")
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if got := bp.Workers()[0].Triggers; len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected triggers: %v", got)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte("  "), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Parse([]byte("name: no id\n"), "noid.yaml"); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"bp.yaml": {Data: []byte("id: fs\nworkers: []\n")},
	}
	bp, err := LoadFS(fsys, "bp.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if bp.ID() != "fs" || bp.WorkerCount() != 0 {
		t.Fatalf("unexpected blueprint: %+v", bp.Spec())
	}
	if _, err := LoadFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
