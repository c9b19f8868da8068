/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package optrace

import (
	"context"

	"github.com/chainguard-dev/clog"
)

type tracerKey[T any] struct{}

// Tracer creates traces and receives them once complete.
type Tracer[T any] interface {
	NewTrace(ctx context.Context, operation string, args map[string]any) *Trace[T]
	RecordTrace(trace *Trace[T])
}

// WithTracer returns a context carrying tracer for results of type T.
func WithTracer[T any](ctx context.Context, tracer Tracer[T]) context.Context {
	return context.WithValue(ctx, tracerKey[T]{}, tracer)
}

// TracerFromContext returns the context's tracer for T, or a tracer that logs
// completed traces to the context logger.
func TracerFromContext[T any](ctx context.Context) Tracer[T] {
	if tracer, ok := ctx.Value(tracerKey[T]{}).(Tracer[T]); ok {
		return tracer
	}
	return NewDefaultTracer[T](ctx)
}

// Start begins a trace for operation using the context's tracer.
func Start[T any](ctx context.Context, operation string, args map[string]any) *Trace[T] {
	return TracerFromContext[T](ctx).NewTrace(ctx, operation, args)
}

// Callback receives completed traces.
type Callback[T any] func(*Trace[T])

type byCodeTracer[T any] struct {
	callbacks []Callback[T]
}

// ByCode returns a tracer that invokes callbacks, in order, with each completed trace.
func ByCode[T any](callbacks ...Callback[T]) Tracer[T] {
	return &byCodeTracer[T]{callbacks: callbacks}
}

func (t *byCodeTracer[T]) NewTrace(ctx context.Context, operation string, args map[string]any) *Trace[T] {
	return newTraceWithTracer[T](ctx, t, operation, args)
}

func (t *byCodeTracer[T]) RecordTrace(trace *Trace[T]) {
	for _, cb := range t.callbacks {
		if cb != nil {
			cb(trace)
		}
	}
}

// NewDefaultTracer returns a tracer that logs each completed trace with clog.
// Failed operations log at warn level.
func NewDefaultTracer[T any](ctx context.Context) Tracer[T] {
	logger := clog.FromContext(ctx)

	return ByCode[T](func(trace *Trace[T]) {
		l := logger.With(
			"trace_id", trace.ID,
			"operation", trace.Operation,
			"outcome", trace.Outcome,
			"duration_ms", trace.Duration().Milliseconds(),
			"steps", len(trace.Steps),
		)
		if trace.Error != nil {
			l.Warn("Operation trace completed with error", "trace", trace.String())
			return
		}
		l.Debug("Operation trace completed", "trace", trace.String())
	})
}
