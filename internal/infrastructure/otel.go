package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"keyprep/internal/config"
	"keyprep/pkg/contracts"
)

const (
	ServiceVersion = contracts.Version
	TracerName     = "keyprep"
)

// Tracing holds the tracer used for pipeline stages and the provider to flush on exit
type Tracing struct {
	Tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// InitializeTracing builds a tracer from configuration. When tracing is disabled
// a no-op tracer is returned so callers never need to nil-check. Spans are
// written as JSON to w (stdout when nil).
func InitializeTracing(cfg config.TracingConfig, w io.Writer, logger *slog.Logger) (*Tracing, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enabled {
		return &Tracing{Tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}
	if w == nil {
		w = os.Stdout
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	logger.Info("Tracing initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("exporter", "stdout"))

	return &Tracing{
		Tracer:   tp.Tracer(TracerName, trace.WithInstrumentationVersion(ServiceVersion)),
		provider: tp,
	}, nil
}

// Shutdown flushes pending spans. It is a no-op for disabled tracing.
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// StartSpan starts a span tagged with the run ID carried by ctx
func (t *Tracing) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if runID := GetRunID(ctx); runID != "" {
		attrs = append(attrs, attribute.String("run.id", runID))
	}
	return t.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
