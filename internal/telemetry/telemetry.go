// Package telemetry wires OpenTelemetry tracing and metrics plus a
// trace-aware slog logger.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc flushes and stops the telemetry providers.
type ShutdownFunc func(context.Context) error

// Config controls which exporter Init installs.
type Config struct {
	Enabled  bool
	Exporter string // stdout, none
	Service  string
	Version  string
	// Output receives stdout exporter records; nil means os.Stdout.
	Output io.Writer
}

func noop(context.Context) error { return nil }

// Init installs global tracer and meter providers. When telemetry is
// disabled the otel no-op providers stay in place and the returned
// shutdown does nothing.
func Init(cfg Config) (ShutdownFunc, error) {
	exporter := strings.ToLower(strings.TrimSpace(cfg.Exporter))
	if !cfg.Enabled || exporter == "none" {
		return noop, nil
	}
	if exporter != "" && exporter != "stdout" {
		return nil, fmt.Errorf("telemetry: unknown exporter %q", cfg.Exporter)
	}

	service := cfg.Service
	if service == "" {
		service = "spaces"
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(service),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create resource: %w", err)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	tp, mp, err := initStdout(res, out)
	if err != nil {
		return nil, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

func initStdout(res *resource.Resource, out io.Writer) (*trace.TracerProvider, *metric.MeterProvider, error) {
	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: create trace exporter: %w", err)
	}
	tp := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter, trace.WithBatchTimeout(time.Second)),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(out))
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: create metric exporter: %w", err)
	}
	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(time.Minute))),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return tp, mp, nil
}
