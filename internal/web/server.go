package web

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/LyzrCore/spaces/internal/apps"
	"github.com/LyzrCore/spaces/internal/telemetry"
	"github.com/LyzrCore/spaces/pkg/registry"
	"github.com/LyzrCore/spaces/pkg/renderers/html"
)

const tracerName = "github.com/LyzrCore/spaces/internal/web"

// FragmentHeader asks the submit endpoint for the form fragment instead of
// the whole page.
const FragmentHeader = "X-Spaces-Fragment"

type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records submissions and render durations.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithAssetsPrefix sets the URL prefix static assets are served under. It
// must match the prefix the renderer links to.
func WithAssetsPrefix(prefix string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimRight(strings.TrimSpace(prefix), "/"); trimmed != "" {
			s.assetsPrefix = trimmed
		}
	}
}

// WithVersion is reported by the status endpoint and the OpenAPI documents.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// Server serves the demo apps over HTTP.
type Server struct {
	catalog      *apps.Catalog
	registry     *registry.Registry
	renderer     *html.Renderer
	assets       fs.FS
	assetsPrefix string
	metrics      *telemetry.Metrics
	tracer       trace.Tracer
	logger       *slog.Logger
	version      string
	startedAt    time.Time
}

func NewServer(catalog *apps.Catalog, reg *registry.Registry, renderer *html.Renderer, opts ...Option) *Server {
	s := &Server{
		catalog:      catalog,
		registry:     reg,
		renderer:     renderer,
		assets:       html.AssetsFS(),
		assetsPrefix: html.DefaultAssetsPrefix,
		tracer:       otel.Tracer(tracerName),
		logger:       slog.Default(),
		version:      "dev",
		startedAt:    time.Now(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the routes wrapped in the logging and tracing middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /apps/{id}", s.handlePage)
	mux.HandleFunc("POST /apps/{id}/submit", s.handleSubmit)
	mux.HandleFunc("GET /apps/{id}/stream", s.handleStream)

	s.registerAPI(mux)

	mux.Handle("GET "+s.assetsPrefix+"/", http.StripPrefix(s.assetsPrefix, http.FileServer(http.FS(s.assets))))

	return s.withMiddleware(mux)
}

// Start listens on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (s *Server) Start(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "addr", addr, "apps", s.catalog.Len())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("web server shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
