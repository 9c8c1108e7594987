package storage

import (
	"context"
	"time"

	mw "chaton2api-go/internal/middleware"
	"chaton2api-go/internal/monitoring/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// WithInstrumentation wraps a store with tracing spans and prometheus metrics.
func WithInstrumentation(inner ImageStore, label string) ImageStore {
	if inner == nil {
		return nil
	}
	if label == "" {
		label = "unknown"
	}
	return &instrumentedStore{ImageStore: inner, label: label}
}

type instrumentedStore struct {
	ImageStore
	label string
}

// Unwrap exposes the wrapped store.
func (i *instrumentedStore) Unwrap() ImageStore { return i.ImageStore }

func (i *instrumentedStore) Put(ctx context.Context, name string, data []byte) error {
	return i.instrument(ctx, "put", func(ctx context.Context) error {
		return i.ImageStore.Put(ctx, name, data)
	})
}

func (i *instrumentedStore) Get(ctx context.Context, name string) ([]byte, error) {
	var result []byte
	err := i.instrument(ctx, "get", func(ctx context.Context) error {
		var innerErr error
		result, innerErr = i.ImageStore.Get(ctx, name)
		return innerErr
	})
	return result, err
}

func (i *instrumentedStore) Exists(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := i.instrument(ctx, "exists", func(ctx context.Context) error {
		var innerErr error
		ok, innerErr = i.ImageStore.Exists(ctx, name)
		return innerErr
	})
	return ok, err
}

func (i *instrumentedStore) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracing.StartSpan(ctx, "storage", i.label+"/"+operation)
	span.SetAttributes(
		attribute.String("storage.backend", i.label),
		attribute.String("storage.operation", operation),
	)
	start := time.Now()
	err := fn(ctx)
	recorded := err
	if IsNotFound(err) {
		// a miss is a normal answer, not a backend failure
		recorded = nil
	}
	tracing.EndSpan(span, recorded)
	mw.RecordImageStore(i.label, operation, time.Since(start), recorded)
	return err
}
