package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the scope of the spans started by this package.
const InstrumentationName = "github.com/nimburion/i18nbuild"

// SpanOperation represents a traced operation type.
type SpanOperation string

const (
	// SpanOperationConfigure covers one ConfigureI18nBuild run
	SpanOperationConfigure SpanOperation = "i18n.configure"
	// SpanOperationLocale covers the resolution of one locale
	SpanOperationLocale SpanOperation = "i18n.locale"
	// SpanOperationLoad covers loading one translation file
	SpanOperationLoad SpanOperation = "i18n.load"
)

// SpanOption adds attributes to a span.
type SpanOption func(*[]attribute.KeyValue)

// WithTarget records the builder target.
func WithTarget(target string) SpanOption {
	return func(attrs *[]attribute.KeyValue) {
		*attrs = append(*attrs, attribute.String("i18n.target", target))
	}
}

// WithLocale records the locale being resolved.
func WithLocale(locale string) SpanOption {
	return func(attrs *[]attribute.KeyValue) {
		*attrs = append(*attrs, attribute.String("i18n.locale", locale))
	}
}

// WithFile records a translation file path.
func WithFile(path string) SpanOption {
	return func(attrs *[]attribute.KeyValue) {
		*attrs = append(*attrs, attribute.String("i18n.file", path))
	}
}

// StartSpan starts an internal span for operation on the global tracer provider.
func StartSpan(ctx context.Context, operation SpanOperation, opts ...SpanOption) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("i18n.operation", string(operation))}
	for _, opt := range opts {
		opt(&attrs)
	}
	return otel.Tracer(InstrumentationName).Start(ctx, string(operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records an error in the span and sets the span status to error.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// RecordSuccess sets the span status to OK.
func RecordSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
