package tracing

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewTracerProvider(ctx, TracerConfig{
		ServiceName:    "i18nbuild",
		ServiceVersion: "v1.2.3",
		BuildID:        "run-1",
		Target:         "app:build",
	})
	if err != nil {
		t.Fatalf("expected no error for disabled tracing, got: %v", err)
	}
	if provider.Exported() {
		t.Fatal("disabled provider must not export")
	}

	recorder := tracetest.NewSpanRecorder()
	provider.RegisterSpanProcessor(recorder)
	_, span := provider.Tracer("").Start(ctx, string(SpanOperationConfigure))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected one span, got %d", len(ended))
	}
	if got := ended[0].InstrumentationScope().Name; got != InstrumentationName {
		t.Errorf("scope = %q, want %q", got, InstrumentationName)
	}
	want := map[attribute.Key]string{
		"service.name":    "i18nbuild",
		"service.version": "v1.2.3",
		AttributeBuildID:  "run-1",
		AttributeTarget:   "app:build",
	}
	got := map[attribute.Key]string{}
	for _, attr := range ended[0].Resource().Attributes() {
		got[attr.Key] = attr.Value.AsString()
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("resource %s = %q, want %q", key, got[key], value)
		}
	}

	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("expected no error on shutdown, got: %v", err)
	}
}

func TestNewTracerProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  TracerConfig
		wantErr []string
	}{
		{
			name:    "missing service name",
			config:  TracerConfig{Enabled: true, Endpoint: "localhost:4317", SampleRate: 1},
			wantErr: []string{"service name is required"},
		},
		{
			name:    "missing endpoint",
			config:  TracerConfig{Enabled: true, ServiceName: "i18nbuild", SampleRate: 1},
			wantErr: []string{"OTLP endpoint is required"},
		},
		{
			name:    "sample rate too high",
			config:  TracerConfig{Enabled: true, ServiceName: "i18nbuild", Endpoint: "localhost:4317", SampleRate: 1.5},
			wantErr: []string{"sample rate must be between 0 and 1"},
		},
		{
			name:    "every problem reported",
			config:  TracerConfig{Enabled: true, SampleRate: -0.1},
			wantErr: []string{"service name is required", "OTLP endpoint is required", "sample rate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTracerProvider(context.Background(), tt.config)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestTracerProvider_NilShutdown(t *testing.T) {
	var provider *TracerProvider
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil provider shutdown to succeed, got %v", err)
	}
	if provider.Exported() {
		t.Fatal("nil provider must not export")
	}
}
