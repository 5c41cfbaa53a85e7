// Package telemetry groups the observability packages of Atlas.
//
//   - logging: structured logging on log/slog with run and column context
//   - metrics: Prometheus counters and histograms for parsing and storage
//   - health: liveness and readiness endpoints served in watch mode
//
// Commands configure logging once in the root command; watch mode adds the
// metrics and health endpoints:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//	health.Register(mux, checker, version)
package telemetry
