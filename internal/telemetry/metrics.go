package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics are the instruments recorded by the web layer.
type Metrics struct {
	submissions metric.Int64Counter
	renders     metric.Float64Histogram
}

// NewMetrics registers the instruments on provider, or on the global
// provider when nil.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("github.com/LyzrCore/spaces")

	submissions, err := meter.Int64Counter(
		"spaces.submissions",
		metric.WithDescription("Form submissions by app and outcome"),
	)
	if err != nil {
		return nil, err
	}
	renders, err := meter.Float64Histogram(
		"spaces.render.duration",
		metric.WithDescription("Page render time by app and renderer"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	return &Metrics{submissions: submissions, renders: renders}, nil
}

// Submission counts one form submission. outcome is "processed" or
// "invalid".
func (m *Metrics) Submission(ctx context.Context, appID, outcome string) {
	if m == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("app", appID),
		attribute.String("outcome", outcome),
	))
}

// Render records how long drawing a page took.
func (m *Metrics) Render(ctx context.Context, appID, renderer string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.renders.Record(ctx, float64(elapsed)/float64(time.Millisecond), metric.WithAttributes(
		attribute.String("app", appID),
		attribute.String("renderer", renderer),
	))
}
