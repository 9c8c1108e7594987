package tracing

import (
	"context"
	"errors"
	"testing"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	shutdown, err := Init(context.Background())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if shutdown == nil {
		t.Fatalf("shutdown func must not be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSpanHelpersOnGlobalProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "upstream/chaton", "ChatOn.Stream")
	if ctx == nil || span == nil {
		t.Fatalf("expected a span")
	}
	EndSpan(span, errors.New("boom"))

	_, span = StartSpan(context.Background(), "", "plain")
	EndSpan(span, nil)
}
