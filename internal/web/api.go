package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/LyzrCore/spaces/pkg/apispec"
	"github.com/LyzrCore/spaces/pkg/app"
)

func (s *Server) registerAPI(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/status", s.getStatus)
	mux.HandleFunc("GET /api/registry", s.getRegistry)
	mux.HandleFunc("GET /api/apps", s.listApps)
	mux.HandleFunc("GET /api/apps/{id}", s.getApp)

	mux.HandleFunc("GET /openapi.json", s.getOpenAPI)
	mux.HandleFunc("GET /apps/{id}/openapi.json", s.getAppOpenAPI)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{
		"status":  "ok",
		"version": s.version,
		"apps":    s.catalog.Len(),
		"uptime":  time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) getRegistry(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, s.registry.Apps())
}

type pageSummary struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

type appSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Blueprint   string        `json:"blueprint,omitempty"`
	Pages       []pageSummary `json:"pages"`
}

func summarize(a *app.App) appSummary {
	summary := appSummary{
		ID:          a.ID(),
		Title:       a.Title(),
		Description: a.Description(),
		URL:         a.Info().URL,
		Pages:       make([]pageSummary, 0, len(a.Pages())),
	}
	if orch := a.Orchestrator(); orch != nil {
		summary.Blueprint = orch.Blueprint().ID()
	}
	for _, p := range a.Pages() {
		ps := pageSummary{Path: p.Path, Kind: string(p.Kind()), URL: a.PageURL(p.Path)}
		if p.Err != nil {
			ps.Error = p.Err.Error()
		}
		summary.Pages = append(summary.Pages, ps)
	}
	return summary
}

func (s *Server) listApps(w http.ResponseWriter, r *http.Request) {
	out := make([]appSummary, 0, s.catalog.Len())
	for _, a := range s.catalog.Apps() {
		out = append(out, summarize(a))
	}
	jsonResponse(w, out)
}

func (s *Server) getApp(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	jsonResponse(w, summarize(a))
}

func (s *Server) getOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := apispec.Build(s.catalog.Apps(), apispec.WithVersion(s.version))
	s.writeOpenAPI(w, r, doc, err)
}

func (s *Server) getAppOpenAPI(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	doc, err := apispec.BuildApp(a, apispec.WithVersion(s.version))
	s.writeOpenAPI(w, r, doc, err)
}

func (s *Server) writeOpenAPI(w http.ResponseWriter, r *http.Request, doc *openapi3.T, err error) {
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	jsonResponse(w, doc)
}

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonStatus(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	jsonStatus(w, map[string]string{"error": msg}, code)
}
