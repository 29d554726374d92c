package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LyzrCore/spaces/pkg/apispec"
	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/orchestrator"
	"github.com/LyzrCore/spaces/pkg/render"
	"github.com/LyzrCore/spaces/pkg/ui"
)

const indexTitle = "Lyzr Spaces"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	links := make([]ui.Link, 0, s.catalog.Len())
	cards := make([]ui.Item, 0, s.catalog.Len())
	for _, a := range s.catalog.Apps() {
		links = append(links, ui.Link{Label: a.Title(), URL: a.BasePath()})
		cards = append(cards, ui.Item{Title: a.Title(), Subtitle: a.Description()})
	}

	var body ui.Node = ui.EmptyState{Icon: "📭", Title: "No apps configured"}
	if len(links) > 0 {
		body = ui.Group(ui.RoleMain,
			ui.Links{Items: links, Separator: "·"},
			ui.Cards{Items: cards},
		)
	}
	node := ui.Container{Role: ui.RolePage, Children: []ui.Node{
		ui.Group(ui.RoleHeader,
			ui.Heading{Level: 1, Text: indexTitle},
			ui.Text{Text: "Demo dashboards powered by Lyzr agents", Emphasis: true},
		),
		body,
		ui.Group(ui.RoleFooter, ui.Markdown{Source: app.FooterMarkdown}),
	}}
	s.writeHTML(w, r, "", node, render.RenderOptions{Title: indexTitle}, http.StatusOK)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	view := app.View{Path: query.Get("page"), Item: query.Get("item")}
	s.writePage(w, r, a, view, http.StatusOK)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		jsonError(w, "invalid form body", http.StatusBadRequest)
		return
	}
	path, values := formValues(r.PostForm)

	outcome, err := a.Submit(r.Context(), path, values)
	if err != nil {
		s.submitError(w, r, a, err)
		return
	}
	s.recordSubmission(r.Context(), a, outcome)

	switch {
	case wantsJSON(r):
		status := http.StatusOK
		if !outcome.Valid() {
			status = http.StatusUnprocessableEntity
		}
		jsonStatus(w, newOutcomeResponse(outcome), status)
	case r.Header.Get(FragmentHeader) != "":
		s.writeFragment(w, r, a, outcome)
	default:
		s.writePage(w, r, a, outcome.View(), http.StatusOK)
	}
}

func (s *Server) submitError(w http.ResponseWriter, r *http.Request, a *app.App, err error) {
	switch {
	case errors.Is(err, app.ErrPageNotFound), errors.Is(err, app.ErrNotForm):
		jsonError(w, err.Error(), http.StatusNotFound)
	default:
		s.logger.ErrorContext(r.Context(), "submit failed", "app", a.ID(), "error", err)
		jsonError(w, "submit failed", http.StatusInternalServerError)
	}
}

func (s *Server) recordSubmission(ctx context.Context, a *app.App, outcome *app.Outcome) {
	result := "processed"
	if !outcome.Valid() {
		result = "invalid"
	}
	s.metrics.Submission(ctx, a.ID(), result)
	s.logger.InfoContext(ctx, "form submitted",
		"app", a.ID(),
		"page", outcome.Path,
		"outcome", result,
		"identifier", identifier(outcome.Result),
	)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*app.App, bool) {
	id := r.PathValue("id")
	a, ok := s.catalog.Get(id)
	if !ok {
		jsonError(w, "app not found: "+id, http.StatusNotFound)
		return nil, false
	}
	return a, true
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, a *app.App, view app.View, status int) {
	node, err := a.RenderPage(view)
	if err != nil {
		if errors.Is(err, app.ErrPageNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.ErrorContext(r.Context(), "build page failed", "app", a.ID(), "page", view.Path, "error", err)
		jsonError(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	palette := a.Palette()
	s.writeHTML(w, r, a.ID(), node, render.RenderOptions{
		Title:        a.Title(),
		Palette:      &palette,
		HiddenFields: hiddenPage(a, view.Path),
	}, status)
}

// writeFragment renders only the content of the submitted page, which for
// a form page is the form wrapper the browser swaps in place.
func (s *Server) writeFragment(w http.ResponseWriter, r *http.Request, a *app.App, outcome *app.Outcome) {
	html, err := s.fragment(r.Context(), a, outcome)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render fragment failed", "app", a.ID(), "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.Write(html)
}

func (s *Server) fragment(ctx context.Context, a *app.App, outcome *app.Outcome) ([]byte, error) {
	node, err := a.Content(outcome.View())
	if err != nil {
		return nil, err
	}
	palette := a.Palette()
	return s.render(ctx, a.ID(), node, render.RenderOptions{
		Fragment:     true,
		Palette:      &palette,
		HiddenFields: hiddenPage(a, outcome.Path),
	})
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, appID string, node ui.Node, opts render.RenderOptions, status int) {
	html, err := s.render(r.Context(), appID, node, opts)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render failed", "app", appID, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	w.Write(html)
}

func (s *Server) render(ctx context.Context, appID string, node ui.Node, opts render.RenderOptions) ([]byte, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "render "+s.renderer.Name())
	defer span.End()
	out, err := s.renderer.Render(ctx, node, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.metrics.Render(ctx, appID, s.renderer.Name(), time.Since(start))
	return out, nil
}

// hiddenPage tags forms with the page they belong to. Only form pages get
// the field.
func hiddenPage(a *app.App, path string) map[string]string {
	if path == "" {
		path = a.HomePath()
	}
	p, ok := a.Page(path)
	if !ok {
		return nil
	}
	if _, isForm := p.Form(); !isForm {
		return nil
	}
	return render.MergeHiddenFields(nil, render.Hidden(apispec.PageField, p.Path))
}

// formValues splits a form body into the target page and the field values.
// Repeated keys keep their first value.
func formValues(form url.Values) (string, map[string]string) {
	values := make(map[string]string, len(form))
	for key, vals := range form {
		if key == apispec.PageField || len(vals) == 0 {
			continue
		}
		values[key] = vals[0]
	}
	return form.Get(apispec.PageField), values
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func identifier(result *orchestrator.Result) string {
	if result == nil {
		return ""
	}
	return result.Identifier
}

type outcomeResponse struct {
	Page     string               `json:"page"`
	Valid    bool                 `json:"valid"`
	Values   map[string]string    `json:"values"`
	Errors   map[string]string    `json:"errors,omitempty"`
	Result   *orchestrator.Result `json:"result,omitempty"`
	Markdown string               `json:"markdown,omitempty"`
}

func newOutcomeResponse(o *app.Outcome) outcomeResponse {
	return outcomeResponse{
		Page:     o.Path,
		Valid:    o.Valid(),
		Values:   o.Values,
		Errors:   o.Errors,
		Result:   o.Result,
		Markdown: o.Markdown,
	}
}
