// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantLabel string
	}{
		{
			name:      "successful select",
			operation: "select",
			table:     "test_users",
		},
		{
			name:      "short error",
			operation: "select",
			table:     "test_edges",
			err:       errors.New("connection refused"),
			wantLabel: "connection refused",
		},
		{
			name:      "long error is truncated to 50 chars",
			operation: "select",
			table:     "test_music",
			err:       errors.New(strings.Repeat("x", 80)),
			wantLabel: strings.Repeat("x", 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, 10*time.Millisecond, tt.err)

			if tt.err == nil {
				return
			}
			got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.wantLabel))
			if got != 1 {
				t.Errorf("errors{%s} = %v, want 1", tt.wantLabel, got)
			}
		})
	}
}

func TestRecordRowsFetched(t *testing.T) {
	before := testutil.ToFloat64(DBRowsFetched.WithLabelValues("test_rows"))
	RecordRowsFetched("test_rows", 7)
	RecordRowsFetched("test_rows", 3)

	if got := testutil.ToFloat64(DBRowsFetched.WithLabelValues("test_rows")) - before; got != 10 {
		t.Errorf("rows fetched delta = %v, want 10", got)
	}
}

func TestRecordAnalysisRun(t *testing.T) {
	success := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("success"))
	failed := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("error"))

	RecordAnalysisRun("success", 2*time.Second)
	RecordAnalysisRun("error", time.Second)

	if got := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("success")) - success; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(AnalysisRunsTotal.WithLabelValues("error")) - failed; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
	if testutil.ToFloat64(AnalysisLastSuccess) <= 0 {
		t.Error("AnalysisLastSuccess not set")
	}
}

func TestRecordGraphSize(t *testing.T) {
	RecordGraphSize("test_graph", 12, 30)
	RecordGraphSize("test_graph", 4, 5)

	if got := testutil.ToFloat64(GraphNodes.WithLabelValues("test_graph")); got != 4 {
		t.Errorf("graph_nodes = %v, want 4", got)
	}
	if got := testutil.ToFloat64(GraphEdges.WithLabelValues("test_graph")); got != 5 {
		t.Errorf("graph_edges = %v, want 5", got)
	}
}

func TestRecordCuratorSource_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(CuratorResults.WithLabelValues("test_source"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordCuratorSource("test_source")
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(CuratorResults.WithLabelValues("test_source")) - before; got != 50 {
		t.Errorf("curator results delta = %v, want 50", got)
	}
}

func TestSetColdStartUsers(t *testing.T) {
	SetColdStartUsers(17)
	if got := testutil.ToFloat64(ColdStartUsers); got != 17 {
		t.Errorf("cold_start_users = %v, want 17", got)
	}
}

func TestOuterSurfaceCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		metric prometheus.Counter
	}{
		{
			name:   "report store",
			record: func() { RecordReportStoreOperation("test_put", "success") },
			metric: ReportStoreOperations.WithLabelValues("test_put", "success"),
		},
		{
			name:   "events",
			record: func() { RecordEventPublished("test.topic", "rejected") },
			metric: EventsPublished.WithLabelValues("test.topic", "rejected"),
		},
		{
			name:   "rate limit",
			record: func() { RecordRateLimitHit("/test") },
			metric: APIRateLimitHits.WithLabelValues("/test"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.metric)
			tt.record()
			if got := testutil.ToFloat64(tt.metric) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test/runs", "200"))
	RecordAPIRequest("GET", "/test/runs", "200", 25*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test/runs", "200")) - before; got != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", got)
	}

	h, ok := APIRequestDuration.WithLabelValues("GET", "/test/runs").(prometheus.Metric)
	if !ok {
		t.Fatal("histogram does not implement prometheus.Metric")
	}
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.GetHistogram().GetSampleCount() < 1 {
		t.Error("histogram sample count = 0, want >= 1")
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active delta = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 0 {
		t.Errorf("active delta = %v, want 0", got)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		DBRowsFetched,
		AnalysisRunsTotal,
		AnalysisRunDuration,
		AnalysisLastSuccess,
		GraphNodes,
		GraphEdges,
		CuratorResults,
		ColdStartUsers,
		ReportStoreOperations,
		EventsPublished,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		AppInfo,
	}

	for _, c := range collectors {
		err := prometheus.Register(c)
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			t.Errorf("Register() error = %v, want AlreadyRegisteredError", err)
		}
	}
}
