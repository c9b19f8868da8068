/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"chainguard.dev/prpublish/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordCall(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m := metrics.NewOperationsWithMeter(provider.Meter(metrics.MeterName))
	m.RecordCall(ctx, "fetch_pr", "absent")
	m.RecordCall(ctx, "fetch_pr", "absent")
	m.RecordPage(ctx, 3, 4500)
	m.RecordDiff(ctx, 1024)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	sums := map[string]int64{}
	for _, md := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				sums[md.Name] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(2), sums["prpublish.tool.calls"])
	assert.Equal(t, int64(3), sums["prpublish.page.blocks"])
	assert.Equal(t, int64(4500), sums["prpublish.page.characters"])
}

func TestSetupPrometheus(t *testing.T) {
	ctx := context.Background()
	handler, shutdown, err := metrics.SetupPrometheus()
	require.NoError(t, err)
	defer func() { _ = shutdown(ctx) }()

	metrics.NewOperations().RecordCall(ctx, "create_notion_page", "ok")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), "prpublish_tool_calls"), "metrics output:\n%s", body)
}
