/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package optrace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "chainguard.dev/prpublish/optrace"

// Step is one call a tool operation makes while it runs, such as chunking the
// content or calling a collaborator.
type Step struct {
	Name      string         `json:"name"`
	Params    map[string]any `json:"params,omitempty"`
	Result    any            `json:"result,omitempty"`
	Error     error          `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	mu        sync.Mutex
	done      func(*Step)
	span      oteltrace.Span
}

// Trace records a single tool operation invocation from arguments to result.
type Trace[T any] struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Args      map[string]any `json:"args,omitempty"`
	Steps     []*Step        `json:"steps"`
	Outcome   string         `json:"outcome,omitempty"`
	Result    T              `json:"result"`
	Error     error          `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	tracer    Tracer[T]
	mu        sync.Mutex
	ctx       context.Context
	span      oteltrace.Span
}

func newTraceWithTracer[T any](ctx context.Context, tracer Tracer[T], operation string, args map[string]any) *Trace[T] {
	tr := otel.Tracer(instrumentationName, oteltrace.WithInstrumentationVersion("1.0.0"))

	attrs := []attribute.KeyValue{attribute.String("operation", operation)}
	for _, k := range slices.Sorted(maps.Keys(args)) {
		attrs = append(attrs, attribute.String("arg."+k, fmt.Sprint(args[k])))
	}
	ctx, span := tr.Start(ctx, "tool.operation", oteltrace.WithAttributes(attrs...))

	return &Trace[T]{
		ID:        generateTraceID(),
		Operation: operation,
		Args:      args,
		Steps:     []*Step{},
		StartTime: time.Now(),
		tracer:    tracer,
		ctx:       ctx,
		span:      span,
	}
}

// Context returns the context carrying the trace's span, for outbound calls.
func (t *Trace[T]) Context() context.Context {
	return t.ctx
}

// StartStep begins a step. Complete adds it to the trace.
func (t *Trace[T]) StartStep(name string, params map[string]any) *Step {
	tr := otel.Tracer(instrumentationName, oteltrace.WithInstrumentationVersion("1.0.0"))
	_, span := tr.Start(t.ctx, "tool.step", oteltrace.WithAttributes(attribute.String("step.name", name)))

	return &Step{
		Name:      name,
		Params:    params,
		StartTime: time.Now(),
		span:      span,
		done: func(s *Step) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.Steps = append(t.Steps, s)
		},
	}
}

// SetOutcome labels how the operation resolved ("ok", "absent", "error").
func (t *Trace[T]) SetOutcome(outcome string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Outcome = outcome
	if t.span != nil {
		t.span.SetAttributes(attribute.String("outcome", outcome))
	}
}

// Complete records the step result and attaches the step to its trace.
func (s *Step) Complete(result any, err error) {
	s.mu.Lock()
	s.Result = result
	s.Error = err
	s.EndTime = time.Now()
	span := s.span
	done := s.done
	s.mu.Unlock()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
	done(s)
}

// Duration returns how long the step ran, or has been running.
func (s *Step) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Complete finalizes the trace and hands it to its tracer.
func (t *Trace[T]) Complete(result T, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	tracer := t.tracer
	span := t.span
	t.mu.Unlock()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	tracer.RecordTrace(t)
}

// Duration returns the total duration of the trace.
func (t *Trace[T]) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// StepNames lists the recorded steps in completion order.
func (t *Trace[T]) StepNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.Steps))
	for _, s := range t.Steps {
		names = append(names, s.Name)
	}
	return names
}

// String renders the trace for operator logs.
func (t *Trace[T]) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder

	var duration time.Duration
	if t.EndTime.IsZero() {
		duration = time.Since(t.StartTime)
	} else {
		duration = t.EndTime.Sub(t.StartTime)
	}

	fmt.Fprintf(&sb, "=== Trace %s (%s) ===\n", t.ID, t.Operation)
	fmt.Fprintf(&sb, "Duration: %v\n", duration)
	if t.Outcome != "" {
		fmt.Fprintf(&sb, "Outcome: %s\n", t.Outcome)
	}

	if len(t.Args) > 0 {
		sb.WriteString("Args:\n")
		for _, k := range slices.Sorted(maps.Keys(t.Args)) {
			fmt.Fprintf(&sb, "  %s: %s\n", k, truncate(fmt.Sprint(t.Args[k]), 80))
		}
	}

	if len(t.Steps) == 0 {
		sb.WriteString("No steps\n")
	}
	for i, s := range t.Steps {
		// Steps are complete once attached, so EndTime is set.
		fmt.Fprintf(&sb, "  [%d] %s (%v)\n", i+1, s.Name, s.EndTime.Sub(s.StartTime))
		if s.Error != nil {
			fmt.Fprintf(&sb, "      Error: %v\n", s.Error)
		} else if s.Result != nil {
			fmt.Fprintf(&sb, "      Result: %s\n", truncate(fmt.Sprint(s.Result), 200))
		}
	}

	if t.Error != nil {
		fmt.Fprintf(&sb, "Error: %v\n", t.Error)
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// generateTraceID returns YYYYMMDD-HHMMSS-RRRRRRRR with a random suffix.
func generateTraceID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return time.Now().Format("20060102-150405.000000")
	}
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), hex.EncodeToString(b))
}
