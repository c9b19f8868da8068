/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry instruments for tool operations and
// their Prometheus export.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is the instrumentation scope for all prpublish metrics.
const MeterName = "chainguard.dev/prpublish"

// Operations provides OpenTelemetry metrics for tool operations.
// Any instrument that fails to initialize degrades to a no-op.
type Operations struct {
	calls       metric.Int64Counter
	blocks      metric.Int64Counter
	characters  metric.Int64Counter
	diffLengths metric.Int64Histogram
}

// NewOperations creates the instruments on the global meter provider.
func NewOperations() *Operations {
	return NewOperationsWithMeter(otel.Meter(MeterName, metric.WithInstrumentationVersion("1.0.0")))
}

// NewOperationsWithMeter creates the instruments on meter.
func NewOperationsWithMeter(meter metric.Meter) *Operations {
	calls, err := meter.Int64Counter("prpublish.tool.calls",
		metric.WithDescription("The number of tool operation invocations by outcome"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create tool call counter, metrics will be disabled", "error", err)
		calls = noop.Int64Counter{}
	}

	blocks, err := meter.Int64Counter("prpublish.page.blocks",
		metric.WithDescription("The number of paragraph blocks sent to the document store"),
		metric.WithUnit("{blocks}"))
	if err != nil {
		slog.Warn("Failed to create block counter, metrics will be disabled", "error", err)
		blocks = noop.Int64Counter{}
	}

	characters, err := meter.Int64Counter("prpublish.page.characters",
		metric.WithDescription("The number of analysis characters published"),
		metric.WithUnit("{characters}"))
	if err != nil {
		slog.Warn("Failed to create character counter, metrics will be disabled", "error", err)
		characters = noop.Int64Counter{}
	}

	diffLengths, err := meter.Int64Histogram("prpublish.diff.length",
		metric.WithDescription("The size of fetched pull request diffs"),
		metric.WithUnit("By"))
	if err != nil {
		slog.Warn("Failed to create diff length histogram, metrics will be disabled", "error", err)
		diffLengths = noop.Int64Histogram{}
	}

	return &Operations{
		calls:       calls,
		blocks:      blocks,
		characters:  characters,
		diffLengths: diffLengths,
	}
}

// RecordCall counts one invocation of operation that resolved with outcome.
func (m *Operations) RecordCall(ctx context.Context, operation, outcome string) {
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordPage records the size of a page handed to the document store.
func (m *Operations) RecordPage(ctx context.Context, blocks, characters int) {
	m.blocks.Add(ctx, int64(blocks))
	m.characters.Add(ctx, int64(characters))
}

// RecordDiff records the size of a fetched diff.
func (m *Operations) RecordDiff(ctx context.Context, bytes int) {
	m.diffLengths.Record(ctx, int64(bytes))
}
