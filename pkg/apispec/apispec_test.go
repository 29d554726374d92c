package apispec_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/LyzrCore/spaces/internal/apps"
	"github.com/LyzrCore/spaces/pkg/apispec"
	"github.com/LyzrCore/spaces/pkg/page"
	"github.com/LyzrCore/spaces/pkg/registry"
)

func catalog(t *testing.T) *apps.Catalog {
	t.Helper()
	c, err := apps.Build(registry.Default())
	if err != nil {
		t.Fatalf("build apps: %v", err)
	}
	return c
}

func TestBuildApp_ServiceDesk(t *testing.T) {
	desk, ok := catalog(t).Get("it_service_desk")
	if !ok {
		t.Fatalf("it_service_desk missing")
	}
	doc, err := apispec.BuildApp(desk, apispec.WithServer("http://localhost:8080"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := apispec.Validate(context.Background(), doc); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if doc.Info.Title != desk.Title() {
		t.Fatalf("title = %q, want %q", doc.Info.Title, desk.Title())
	}
	submit := doc.Paths.Find("/apps/it_service_desk/submit")
	if submit == nil || submit.Post == nil {
		t.Fatalf("submit operation missing")
	}
	if submit.Post.OperationID != "it_service_desk_submit" {
		t.Fatalf("operation id = %q", submit.Post.OperationID)
	}

	schema := submit.Post.RequestBody.Value.Content.Get("application/x-www-form-urlencoded").Schema.Value
	want := []string{"_page", "title", "description", "affected_system"}
	if diff := cmp.Diff(want, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := schema.Properties["_page"].Value.Enum; len(got) != 1 || got[0] != "/new" {
		t.Fatalf("_page enum = %v", got)
	}
	if got := len(schema.Properties["affected_system"].Value.Enum); got == 0 {
		t.Fatalf("select field should carry its options as enum")
	}
	if submit.Post.Responses.Status(422) == nil {
		t.Fatalf("422 response missing")
	}
	if stream := doc.Paths.Find("/apps/it_service_desk/stream"); stream == nil || stream.Get == nil {
		t.Fatalf("stream operation missing")
	}
}

func TestBuild_AllApps(t *testing.T) {
	c := catalog(t)
	doc, err := apispec.Build(c.Apps(), apispec.WithTitle("Lyzr Spaces"), apispec.WithVersion("0.1.0"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := apispec.Validate(context.Background(), doc); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Info.Title != "Lyzr Spaces" || doc.Info.Version != "0.1.0" {
		t.Fatalf("info = %+v", doc.Info)
	}
	if len(doc.Tags) != c.Len() {
		t.Fatalf("tags = %d, want %d", len(doc.Tags), c.Len())
	}
	if item := doc.Paths.Find("/apps/dashboard/submit"); item != nil {
		t.Fatalf("dashboard has no forms; submit path should be absent")
	}
	if item := doc.Paths.Find("/apps/analytics/submit"); item == nil {
		t.Fatalf("analytics submit path missing")
	}

	data, err := apispec.MarshalIndent(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var reloaded openapi3.T
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.OpenAPI != apispec.Version {
		t.Fatalf("openapi = %q", reloaded.OpenAPI)
	}
}

func TestBuild_RequiresApps(t *testing.T) {
	if _, err := apispec.Build(nil); err == nil {
		t.Fatalf("expected error for empty app list")
	}
	if _, err := apispec.BuildApp(nil); err == nil {
		t.Fatalf("expected error for nil app")
	}
}

func TestFormSchema_FieldTypes(t *testing.T) {
	cfg := page.FormConfig{Fields: []page.FieldConfig{
		{Key: "count", Type: "number", Required: true},
		{Key: "notes", Type: "textarea", Placeholder: "Anything else?"},
		{Key: "kind", Type: "select", Options: []string{"a", "b"}},
		{Key: "name"},
	}}
	schema := apispec.FormSchema("/export", cfg)

	types := map[string]string{}
	for key, prop := range schema.Properties {
		types[key] = prop.Value.Type.Slice()[0]
	}
	want := map[string]string{"_page": "string", "count": "number", "notes": "string", "kind": "string", "name": "string"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if schema.Properties["notes"].Value.Example != "Anything else?" {
		t.Fatalf("placeholder should become the example")
	}
	if schema.Properties["count"].Value.Title != "Count" {
		t.Fatalf("title = %q", schema.Properties["count"].Value.Title)
	}
}
