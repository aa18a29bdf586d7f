package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestSetupTracer(t *testing.T) {
	t.Run("No Endpoint Is A No-op", func(t *testing.T) {
		shutdown, err := SetupTracer(context.Background(), "popcorn-test", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("expected no-op shutdown, got %v", err)
		}
	})
}

func TestTraceID(t *testing.T) {
	t.Run("Empty Span", func(t *testing.T) {
		span := trace.SpanFromContext(context.Background())
		if got := TraceID(span); got != "" {
			t.Errorf("expected empty trace id, got %q", got)
		}
	})

	t.Run("Valid Span", func(t *testing.T) {
		tid, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		sid, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: sid})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)
		if got := TraceID(trace.SpanFromContext(ctx)); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
			t.Errorf("unexpected trace id %q", got)
		}
	})
}
