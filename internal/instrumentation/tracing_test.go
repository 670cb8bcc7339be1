package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func swapGlobalTracerProvider(tp trace.TracerProvider) trace.TracerProvider {
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	return prev
}

func newSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})
	// StartSpan and friends use the global tracer provider.
	prev := swapGlobalTracerProvider(provider)
	t.Cleanup(func() { swapGlobalTracerProvider(prev) })
	return recorder
}

func TestStartToolSpan(t *testing.T) {
	recorder := newSpanRecorder(t)

	_, span := StartToolSpan(context.Background(), "list_events",
		attribute.String(SpanAttrCalendarID, "primary"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name() != "tool.list_events" {
		t.Errorf("span name = %q", spans[0].Name())
	}

	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	if attrs[SpanAttrTool] != "list_events" {
		t.Errorf("tool attribute = %q", attrs[SpanAttrTool])
	}
	if attrs[SpanAttrCalendarID] != "primary" {
		t.Errorf("calendar id attribute = %q", attrs[SpanAttrCalendarID])
	}
}

func TestStartCalendarSpan(t *testing.T) {
	recorder := newSpanRecorder(t)

	_, span := StartCalendarSpan(context.Background(), "instances")
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Name() != "calendar.instances" {
		t.Fatalf("unexpected spans: %+v", spans)
	}
}

func TestSetSpanError(t *testing.T) {
	recorder := newSpanRecorder(t)

	_, span := StartSpan(context.Background(), "op")
	SetSpanError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if len(spans[0].Events()) == 0 {
		t.Error("error was not recorded as a span event")
	}
}

func TestGetTraceID(t *testing.T) {
	newSpanRecorder(t)

	if id := GetTraceID(context.Background()); id != "" {
		t.Errorf("GetTraceID without a span = %q, want empty", id)
	}

	ctx, span := StartSpan(context.Background(), "op")
	defer span.End()
	if id := GetTraceID(ctx); id == "" {
		t.Error("GetTraceID inside a span should not be empty")
	}
}
