package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/weekly/internal/kv"
)

// Span names and attribute keys for storage operations.
const (
	SpanStorageGet    = "storage.get"
	SpanStorageSet    = "storage.set"
	SpanStorageDelete = "storage.delete"

	AttrKey       = "storage.key"
	AttrFound     = "storage.found"
	AttrValueSize = "storage.value_bytes"
)

// tracedStorage wraps a kv.Storage with one span per call.
type tracedStorage struct {
	next   kv.Storage
	tracer trace.Tracer
}

// WrapStorage returns s unchanged when tracer is nil.
func WrapStorage(s kv.Storage, tracer trace.Tracer) kv.Storage {
	if tracer == nil {
		return s
	}
	return &tracedStorage{next: s, tracer: tracer}
}

func (t *tracedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := t.tracer.Start(ctx, SpanStorageGet, trace.WithAttributes(attribute.String(AttrKey, key)))
	defer span.End()

	v, ok, err := t.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool(AttrFound, ok), attribute.Int(AttrValueSize, len(v)))
	finish(span, err)
	return v, ok, err
}

func (t *tracedStorage) Set(ctx context.Context, key, value string) error {
	ctx, span := t.tracer.Start(ctx, SpanStorageSet, trace.WithAttributes(
		attribute.String(AttrKey, key),
		attribute.Int(AttrValueSize, len(value)),
	))
	defer span.End()

	err := t.next.Set(ctx, key, value)
	finish(span, err)
	return err
}

func (t *tracedStorage) Delete(ctx context.Context, key string) error {
	ctx, span := t.tracer.Start(ctx, SpanStorageDelete, trace.WithAttributes(attribute.String(AttrKey, key)))
	defer span.End()

	err := t.next.Delete(ctx, key)
	finish(span, err)
	return err
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
