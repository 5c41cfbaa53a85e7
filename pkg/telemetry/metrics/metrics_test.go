package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/config"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{Enabled: true, Namespace: "test"}
}

func TestCollector_NewCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(testConfig(), registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}

	defaulted := NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	if defaulted.config.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", defaulted.config.Namespace, config.DefaultMetricsNamespace)
	}
}

func TestCollector_RecordColumn(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	values := []ast.Value{ast.NewList("a"), ast.Empty(), ast.NewList("b"), {Kind: ast.KindMapping}}
	diags := errors.NewErrorList()
	diags.AddError(errors.ErrorTypeSyntax, errors.SeverityWarning, "unterminated", ast.Location{})
	diags.AddError(errors.ErrorTypeSentinel, errors.SeverityInfo, "dropped", ast.Location{})
	diags.AddError(errors.ErrorTypeSentinel, errors.SeverityInfo, "dropped", ast.Location{})

	collector.RecordColumn("rq7", values, diags, 5*time.Millisecond)

	tests := []struct {
		kind string
		want float64
	}{
		{"list", 2},
		{"empty", 1},
		{"mapping", 1},
		{"mixed", 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(collector.parseMetrics.cellsTotal.WithLabelValues("rq7", tt.kind))
		if got != tt.want {
			t.Errorf("cells_parsed_total{kind=%q} = %v, want %v", tt.kind, got, tt.want)
		}
	}

	if got := testutil.ToFloat64(collector.parseMetrics.diagnosticsTotal.WithLabelValues("sentinel")); got != 2 {
		t.Errorf("diagnostics_total{type=sentinel} = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(collector.parseMetrics.duration); got != 1 {
		t.Errorf("parse_duration_seconds series = %d, want 1", got)
	}
}

func TestCollector_Runs(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordRunStored()
	collector.RecordRunStored()
	collector.RecordRunSkipped()
	collector.RecordRunsPruned(3)
	collector.RecordRunsPruned(0)

	if got := testutil.ToFloat64(collector.storeMetrics.stored); got != 2 {
		t.Errorf("runs_stored_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.storeMetrics.skipped); got != 1 {
		t.Errorf("runs_skipped_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.storeMetrics.pruned); got != 3 {
		t.Errorf("runs_pruned_total = %v, want 3", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	collector := NewCollector(&config.MetricsConfig{Enabled: false, Namespace: "test"}, nil)

	collector.RecordColumn("rq", []ast.Value{ast.NewList("a")}, nil, time.Millisecond)
	collector.RecordRunStored()

	if got := testutil.ToFloat64(collector.storeMetrics.stored); got != 0 {
		t.Errorf("runs_stored_total = %v, want 0 when disabled", got)
	}
	if got := testutil.CollectAndCount(collector.parseMetrics.cellsTotal); got != 0 {
		t.Errorf("cells_parsed_total series = %d, want 0 when disabled", got)
	}
}

func TestCollector_Nil(t *testing.T) {
	var collector *Collector
	collector.RecordColumn("rq", nil, nil, 0)
	collector.RecordRunStored()
	collector.RecordRunSkipped()
	collector.RecordRunsPruned(1)
}

func TestCollector_ColumnCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.cardinalityLimiter = NewCardinalityLimiter(1)

	collector.RecordColumn("rq1", []ast.Value{ast.NewList("a")}, nil, 0)
	collector.RecordColumn("rq2", []ast.Value{ast.NewList("a")}, nil, 0)

	if got := testutil.ToFloat64(collector.parseMetrics.cellsTotal.WithLabelValues(overflowColumn, "list")); got != 1 {
		t.Errorf("overflow column count = %v, want 1", got)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)
	if !cl.Allow("a") || !cl.Allow("b") || !cl.Allow("a") {
		t.Fatal("Allow() rejected values under the limit")
	}
	if cl.Allow("c") {
		t.Error("Allow(c) = true, want false over the limit")
	}
	if cl.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cl.Count())
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordRunStored()

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "test_runs_stored_total 1") {
		t.Errorf("metrics output missing counter:\n%s", body)
	}
}
