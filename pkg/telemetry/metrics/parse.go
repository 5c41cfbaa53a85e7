package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"slr-hq/atlas/pkg/config"
)

// ParseMetrics tracks annotation parsing.
//
// Metrics:
//   - atlas_cells_parsed_total: cells parsed by column and resulting kind
//   - atlas_diagnostics_total: parser diagnostics by type
//   - atlas_parse_duration_seconds: time to parse one column
type ParseMetrics struct {
	cellsTotal       *prometheus.CounterVec
	diagnosticsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		cellsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cells_parsed_total",
				Help:      "Total number of annotation cells parsed",
			},
			[]string{"column", "kind"},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of parser diagnostics",
			},
			[]string{"type"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "parse_duration_seconds",
				Help:      "Duration of parsing one column in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
			[]string{"column"},
		),
	}

	registry.MustRegister(
		pm.cellsTotal,
		pm.diagnosticsTotal,
		pm.duration,
	)

	return pm
}

// RecordCell counts one parsed cell.
func (pm *ParseMetrics) RecordCell(column, kind string) {
	pm.cellsTotal.WithLabelValues(column, kind).Inc()
}

// RecordDiagnostic counts one diagnostic.
func (pm *ParseMetrics) RecordDiagnostic(errType string) {
	pm.diagnosticsTotal.WithLabelValues(errType).Inc()
}

// RecordDuration observes the time spent on one column.
func (pm *ParseMetrics) RecordDuration(column string, d time.Duration) {
	pm.duration.WithLabelValues(column).Observe(d.Seconds())
}
