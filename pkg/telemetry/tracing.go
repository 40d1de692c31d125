// Package telemetry wires OpenTelemetry tracing for the CLI
package telemetry

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// ServiceName identifies agents-md spans
const ServiceName = "agents-md"

// Config controls tracer setup
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	SamplerType    string  // always, never or ratio
	SamplerRatio   float64 // used by the ratio sampler
}

// InitTracer installs a global tracer provider exporting over OTLP/HTTP and
// returns its shutdown function. The exporter reads the standard
// OTEL_EXPORTER_OTLP_* environment variables. When tracing is disabled the
// global no-op provider is left in place.
func InitTracer(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = ServiceName
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create resource")
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create trace exporter")
	}

	provider := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithSpanProcessor(trace.NewBatchSpanProcessor(
			exporter,
			trace.WithMaxExportBatchSize(512),
			trace.WithBatchTimeout(time.Second),
		)),
		trace.WithSampler(sampler(cfg)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Shutting down the provider flushes and stops the batch processor,
	// which in turn shuts down the exporter.
	return provider.Shutdown, nil
}

func sampler(cfg Config) trace.Sampler {
	switch cfg.SamplerType {
	case "never":
		return trace.NeverSample()
	case "ratio":
		return trace.ParentBased(trace.TraceIDRatioBased(cfg.SamplerRatio))
	default:
		return trace.AlwaysSample()
	}
}
