package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	previous := otel.GetTracerProvider()
	spanRecorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	return spanRecorder
}

func TestStartSpan(t *testing.T) {
	recorder := setupTestTracer(t)

	tests := []struct {
		name          string
		operation     SpanOperation
		opts          []SpanOption
		expectedAttrs map[string]string
	}{
		{
			name:          "configure",
			operation:     SpanOperationConfigure,
			opts:          []SpanOption{WithTarget("app:build")},
			expectedAttrs: map[string]string{"i18n.operation": "i18n.configure", "i18n.target": "app:build"},
		},
		{
			name:          "load",
			operation:     SpanOperationLoad,
			opts:          []SpanOption{WithLocale("fr"), WithFile("src/locale/messages.fr.xlf")},
			expectedAttrs: map[string]string{"i18n.locale": "fr", "i18n.file": "src/locale/messages.fr.xlf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, span := StartSpan(context.Background(), tt.operation, tt.opts...)
			span.End()

			spans := recorder.Ended()
			got := spans[len(spans)-1]
			if got.Name() != string(tt.operation) {
				t.Fatalf("expected span name %q, got %q", tt.operation, got.Name())
			}
			attrs := map[string]string{}
			for _, kv := range got.Attributes() {
				attrs[string(kv.Key)] = kv.Value.AsString()
			}
			for key, want := range tt.expectedAttrs {
				if attrs[key] != want {
					t.Errorf("attribute %s = %q, want %q", key, attrs[key], want)
				}
			}
		})
	}
}

func TestStartSpan_NestsUnderParent(t *testing.T) {
	recorder := setupTestTracer(t)

	ctx, parent := StartSpan(context.Background(), SpanOperationConfigure)
	_, child := StartSpan(ctx, SpanOperationLocale, WithLocale("de"))
	child.End()
	parent.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Fatal("expected locale span to be a child of the configure span")
	}
}

func TestRecordErrorAndSuccess(t *testing.T) {
	recorder := setupTestTracer(t)

	_, failed := StartSpan(context.Background(), SpanOperationLoad)
	RecordError(failed, errors.New("boom"))
	failed.End()

	_, ok := StartSpan(context.Background(), SpanOperationLoad)
	RecordError(ok, nil)
	RecordSuccess(ok)
	ok.End()

	spans := recorder.Ended()
	if spans[0].Status().Code != codes.Error || spans[0].Status().Description != "boom" {
		t.Fatalf("expected error status, got %+v", spans[0].Status())
	}
	if len(spans[0].Events()) != 1 {
		t.Fatalf("expected one exception event, got %d", len(spans[0].Events()))
	}
	if spans[1].Status().Code != codes.Ok {
		t.Fatalf("expected ok status, got %+v", spans[1].Status())
	}
}
