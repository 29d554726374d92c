// Package apispec describes the HTTP surface of demo apps as an OpenAPI 3
// document: the page endpoint, the form submit endpoint and the progress
// stream.
package apispec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/page"
)

// Version is the OpenAPI version emitted.
const Version = "3.0.3"

// PageField is the form field naming the form page being submitted.
const PageField = "_page"

// Option customises Build.
type Option func(*config)

type config struct {
	title   string
	version string
	servers []string
}

// WithTitle sets info.title. Defaults to the app title for a single app.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(cfg *config) {
		if version != "" {
			cfg.version = version
		}
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(cfg *config) {
		if url != "" {
			cfg.servers = append(cfg.servers, url)
		}
	}
}

// Build describes apps in one document. Apps without form pages only get
// their page endpoint.
func Build(apps []*app.App, opts ...Option) (*openapi3.T, error) {
	if len(apps) == 0 {
		return nil, errors.New("apispec: at least one app is required")
	}
	cfg := config{title: "Spaces", version: "1.0.0"}
	if len(apps) == 1 {
		cfg.title = apps[0].Title()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   cfg.title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Result":        openapi3.NewSchemaRef("", resultSchema()),
				"TimelineEvent": openapi3.NewSchemaRef("", timelineSchema()),
				"Outcome":       openapi3.NewSchemaRef("", outcomeSchema()),
				"Error":         openapi3.NewSchemaRef("", errorSchema()),
			},
		},
	}
	if len(apps) == 1 {
		doc.Info.Description = apps[0].Description()
	}
	for _, url := range cfg.servers {
		doc.AddServer(&openapi3.Server{URL: url})
	}

	for _, a := range apps {
		if a == nil {
			continue
		}
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: a.ID(), Description: a.Title()})
		doc.AddOperation(a.BasePath(), http.MethodGet, pageOperation(a))

		forms := a.Forms()
		if len(forms) == 0 {
			continue
		}
		doc.AddOperation(a.SubmitURL(), http.MethodPost, submitOperation(a, forms))
		doc.AddOperation(a.StreamURL(), http.MethodGet, streamOperation(a, forms))
	}
	return doc, nil
}

// BuildApp describes a single app.
func BuildApp(a *app.App, opts ...Option) (*openapi3.T, error) {
	if a == nil {
		return nil, errors.New("apispec: app is nil")
	}
	return Build([]*app.App{a}, opts...)
}

// Validate checks doc against the OpenAPI 3 rules.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("apispec: %w", err)
	}
	return nil
}

// MarshalIndent renders doc as indented JSON.
func MarshalIndent(doc *openapi3.T) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("apispec: marshal: %w", err)
	}
	return data, nil
}

func pageOperation(a *app.App) *openapi3.Operation {
	paths := make([]any, 0, len(a.Paths()))
	for _, path := range a.Paths() {
		paths = append(paths, path)
	}
	pageParam := openapi3.NewQueryParameter("page").
		WithDescription("Page path; the home page when omitted.").
		WithSchema(openapi3.NewStringSchema().WithEnum(paths...))
	itemParam := openapi3.NewQueryParameter("item").
		WithDescription("Record selected on detail pages.").
		WithSchema(openapi3.NewStringSchema())

	html := openapi3.NewResponse().WithDescription("Rendered page")
	html.Content = openapi3.Content{"text/html": openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema())}

	return &openapi3.Operation{
		OperationID: a.ID() + "_page",
		Summary:     "Render a page of " + a.Title(),
		Tags:        []string{a.ID()},
		Parameters: openapi3.Parameters{
			&openapi3.ParameterRef{Value: pageParam},
			&openapi3.ParameterRef{Value: itemParam},
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: html}),
			openapi3.WithStatus(http.StatusNotFound, errorResponse("Unknown page")),
		),
	}
}

func submitOperation(a *app.App, forms []*app.Page) *openapi3.Operation {
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithDescription("Form values plus " + PageField + " naming the form page.").
		WithFormDataSchema(formsSchema(forms))

	ok := openapi3.NewResponse().
		WithDescription("Processed submission").
		WithJSONSchemaRef(schemaRef("Outcome", outcomeSchema))
	ok.Content["text/html"] = openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema())

	invalid := openapi3.NewResponse().
		WithDescription("Required fields missing").
		WithJSONSchemaRef(schemaRef("Outcome", outcomeSchema))

	return &openapi3.Operation{
		OperationID: a.ID() + "_submit",
		Summary:     "Submit a form of " + a.Title(),
		Tags:        []string{a.ID()},
		RequestBody: &openapi3.RequestBodyRef{Value: body},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: ok}),
			openapi3.WithStatus(http.StatusBadRequest, errorResponse("Malformed request")),
			openapi3.WithStatus(http.StatusNotFound, errorResponse("Unknown form page")),
			openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{Value: invalid}),
		),
	}
}

func streamOperation(a *app.App, forms []*app.Page) *openapi3.Operation {
	pages := make([]any, 0, len(forms))
	for _, p := range forms {
		pages = append(pages, p.Path)
	}
	param := openapi3.NewQueryParameter(PageField).
		WithRequired(true).
		WithDescription("Form page; the remaining query parameters are the form values.").
		WithSchema(openapi3.NewStringSchema().WithEnum(pages...))

	upgrade := openapi3.NewResponse().WithDescription("WebSocket upgrade; messages carry steps and finally html.")

	return &openapi3.Operation{
		OperationID: a.ID() + "_stream",
		Summary:     "Stream processing steps of a form submission",
		Tags:        []string{a.ID()},
		Parameters:  openapi3.Parameters{&openapi3.ParameterRef{Value: param}},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusSwitchingProtocols, &openapi3.ResponseRef{Value: upgrade}),
			openapi3.WithStatus(http.StatusBadRequest, errorResponse("Not a websocket request")),
		),
	}
}

// formsSchema is the union of every form's fields, one alternative per form
// page, told apart by the _page enum.
func formsSchema(forms []*app.Page) *openapi3.Schema {
	if len(forms) == 1 {
		cfg, _ := forms[0].Form()
		return FormSchema(forms[0].Path, cfg)
	}
	alternatives := make([]*openapi3.Schema, 0, len(forms))
	for _, p := range forms {
		cfg, _ := p.Form()
		alternatives = append(alternatives, FormSchema(p.Path, cfg))
	}
	return openapi3.NewOneOfSchema(alternatives...)
}

// FormSchema is the request schema of one form page.
func FormSchema(path string, cfg page.FormConfig) *openapi3.Schema {
	cfg = cfg.WithDefaults()
	schema := openapi3.NewObjectSchema()
	schema.Title = cfg.Title
	schema.Description = cfg.Description
	schema.WithProperty(PageField, openapi3.NewStringSchema().WithEnum(path))
	required := []string{PageField}

	for _, field := range cfg.Fields {
		prop := fieldSchema(field)
		prop.Title = field.Label
		if field.Placeholder != "" && (field.Type == "text" || field.Type == "textarea") {
			prop.Example = field.Placeholder
		}
		schema.WithProperty(field.Key, prop)
		if field.Required {
			required = append(required, field.Key)
		}
	}
	schema.Required = required
	return schema
}

func fieldSchema(field page.FieldConfig) *openapi3.Schema {
	switch field.Type {
	case "select":
		options := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, option)
		}
		if len(options) == 0 {
			return openapi3.NewStringSchema()
		}
		return openapi3.NewStringSchema().WithEnum(options...)
	case "number":
		return openapi3.NewFloat64Schema()
	case "textarea":
		schema := openapi3.NewStringSchema()
		schema.Description = "Multi-line text, " + strconv.Itoa(field.Rows) + " rows."
		return schema
	default:
		return openapi3.NewStringSchema()
	}
}

func resultSchema() *openapi3.Schema {
	severities := make([]any, 0, 4)
	for _, s := range orchestrator.Severities() {
		severities = append(severities, string(s))
	}
	str := openapi3.NewStringSchema
	schema := openapi3.NewObjectSchema().
		WithProperty("identifier", str()).
		WithProperty("domain", str()).
		WithProperty("title", str()).
		WithProperty("status", str()).
		WithProperty("severity", str().WithEnum(severities...)).
		WithProperty("assigned_system", str()).
		WithProperty("assigned_to", str()).
		WithProperty("workers", openapi3.NewArraySchema().WithItems(str())).
		WithPropertyRef("timeline", &openapi3.SchemaRef{Value: &openapi3.Schema{
			Type:  &openapi3.Types{openapi3.TypeArray},
			Items: schemaRef("TimelineEvent", timelineSchema),
		}}).
		WithProperty("root_cause", str()).
		WithProperty("resolution", str()).
		WithProperty("recommendations", openapi3.NewArraySchema().WithItems(str())).
		WithProperty("category", str()).
		WithProperty("response", str()).
		WithProperty("resolution_time", str()).
		WithProperty("message", str()).
		WithProperty("input_received", openapi3.NewObjectSchema().WithAdditionalProperties(str()))
	schema.Required = []string{"identifier", "status", "severity", "assigned_system", "timeline", "root_cause", "resolution", "recommendations"}
	return schema
}

func timelineSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("time", openapi3.NewStringSchema()).
		WithProperty("event", openapi3.NewStringSchema()).
		WithProperty("agent", openapi3.NewStringSchema())
	schema.Required = []string{"time", "event", "agent"}
	return schema
}

func outcomeSchema() *openapi3.Schema {
	stringMap := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
	schema := openapi3.NewObjectSchema().
		WithProperty("page", openapi3.NewStringSchema()).
		WithProperty("valid", openapi3.NewBoolSchema()).
		WithProperty("values", stringMap).
		WithProperty("errors", stringMap).
		WithPropertyRef("result", schemaRef("Result", resultSchema)).
		WithProperty("markdown", openapi3.NewStringSchema())
	schema.Required = []string{"page", "valid", "values"}
	return schema
}

func errorSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().WithProperty("error", openapi3.NewStringSchema())
	schema.Required = []string{"error"}
	return schema
}

// schemaRef points at a component schema. The value is carried along so the
// document validates without a resolving loader.
func schemaRef(name string, build func() *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, build())
}

func errorResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(schemaRef("Error", errorSchema))}
}
