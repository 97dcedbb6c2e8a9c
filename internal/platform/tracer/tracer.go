// Package tracer is a small tracing facade used by the activities service.
//
// Service code depends on the Tracer interface only. NoopTracer serves tests
// and OTelTracer forwards spans to the global OpenTelemetry provider.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span and marks it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to a span.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanActivitiesList       = "activities.list"
	SpanActivitiesSignUp     = "activities.signup"
	SpanActivitiesUnregister = "activities.unregister"
)

// Attribute keys.
const (
	AttrActivity      = "activity.name"
	AttrActivityCount = "activity.count"
	AttrOutcome       = "outcome"
)
