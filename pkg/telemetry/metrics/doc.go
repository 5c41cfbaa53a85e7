// Package metrics provides Prometheus metrics for Atlas.
//
// # Metrics
//
//   - atlas_cells_parsed_total{column,kind}
//   - atlas_diagnostics_total{type}
//   - atlas_parse_duration_seconds{column}
//   - atlas_runs_stored_total, atlas_runs_skipped_total, atlas_runs_pruned_total
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordColumn("rq7", values, diags, time.Since(start))
//	http.Handle("/metrics", collector.Handler())
//
// Recording is a no-op when metrics are disabled in the configuration.
package metrics
