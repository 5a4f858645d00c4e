package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"sanistat/internal/config"
	"sanistat/pkg/contracts"
)

const (
	// ServiceName identifies the pipeline in exported spans
	ServiceName = "sanistat"
	// TracerName is the instrumentation scope for pipeline spans
	TracerName = "sanistat/pipeline"
)

// TracingProvider holds the tracer provider and the tracer pipeline stages use.
// When tracing is disabled it carries a noop tracer so callers never branch.
type TracingProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	logger   *slog.Logger
}

// InitializeTracing sets up the OpenTelemetry stdout trace exporter according
// to configuration. Disabled tracing returns a provider whose tracer is a
// noop, so stage instrumentation is unconditional at call sites.
func InitializeTracing(cfg config.TracingConfig, logger *slog.Logger) (*TracingProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if !cfg.Enabled {
		return &TracingProvider{
			tracer: noop.NewTracerProvider().Tracer(TracerName),
			logger: logger,
		}, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	otel.SetTracerProvider(tp)

	logger.Info("Tracing initialized",
		slog.String("exporter", "stdout"),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return &TracingProvider{
		provider: tp,
		tracer:   tp.Tracer(TracerName, trace.WithInstrumentationVersion(contracts.Version)),
		logger:   logger,
	}, nil
}

// Tracer returns the tracer pipeline stages should create spans from.
func (p *TracingProvider) Tracer() trace.Tracer {
	return p.tracer
}

// Shutdown flushes and stops the tracer provider.
func (p *TracingProvider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	if err := p.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	p.logger.InfoContext(ctx, "Tracing shutdown complete")
	return nil
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}
