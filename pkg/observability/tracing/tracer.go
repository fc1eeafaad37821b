// Package tracing provides OpenTelemetry tracing for i18n build configuration runs.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const shutdownTimeout = 5 * time.Second

// Resource attribute keys identifying one run of the tool.
const (
	AttributeBuildID = attribute.Key("i18nbuild.build_id")
	AttributeTarget  = attribute.Key("i18nbuild.target")
)

// TracerConfig describes the tracer provider of one run.
type TracerConfig struct {
	ServiceName    string
	ServiceVersion string

	// Endpoint is the OTLP gRPC collector address, e.g. "localhost:4317".
	Endpoint string
	// SampleRate is the fraction of runs traced, between 0 and 1.
	SampleRate float64
	// Enabled turns on export; a disabled provider still records spans for
	// in-process span processors.
	Enabled bool

	// BuildID and Target are attached to every span as resource attributes.
	BuildID string
	Target  string
}

func (c TracerConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.Endpoint == "" {
		errs = append(errs, errors.New("OTLP endpoint is required"))
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("sample rate must be between 0 and 1, got %v", c.SampleRate))
	}
	return errors.Join(errs...)
}

// resource describes the run: service identity plus build ID and target.
func (c TracerConfig) resource() *resource.Resource {
	attrs := []attribute.KeyValue{semconv.ServiceName(c.ServiceName)}
	if c.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(c.ServiceVersion))
	}
	if c.BuildID != "" {
		attrs = append(attrs, AttributeBuildID.String(c.BuildID))
	}
	if c.Target != "" {
		attrs = append(attrs, AttributeTarget.String(c.Target))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// TracerProvider owns the SDK provider of a run.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	exported bool
}

// NewTracerProvider creates the provider of a run. When export is enabled the
// provider sends batches to the OTLP collector and is installed as the global
// provider, so the spans of ConfigureI18nBuild reach it.
func NewTracerProvider(ctx context.Context, cfg TracerConfig) (*TracerProvider, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(cfg.resource())}
	if !cfg.Enabled {
		return &TracerProvider{provider: sdktrace.NewTracerProvider(opts...)}, nil
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	))
	if err != nil {
		return nil, fmt.Errorf("tracing: create OTLP exporter for %s: %w", cfg.Endpoint, err)
	}
	opts = append(opts,
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	)
	provider := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return &TracerProvider{provider: provider, exported: true}, nil
}

// Exported reports whether spans leave the process.
func (tp *TracerProvider) Exported() bool {
	return tp != nil && tp.exported
}

// Tracer returns the tracer for scope; an empty scope means InstrumentationName.
func (tp *TracerProvider) Tracer(scope string) trace.Tracer {
	if scope == "" {
		scope = InstrumentationName
	}
	return tp.provider.Tracer(scope)
}

// RegisterSpanProcessor attaches an additional processor, e.g. a recorder in tests.
func (tp *TracerProvider) RegisterSpanProcessor(processor sdktrace.SpanProcessor) {
	tp.provider.RegisterSpanProcessor(processor)
}

// Shutdown flushes pending spans and stops the provider. It waits at most five
// seconds past ctx cancellation.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp == nil || tp.provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := tp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("tracing: shutdown: %w", err)
	}
	return nil
}
