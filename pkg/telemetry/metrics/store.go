package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"slr-hq/atlas/pkg/config"
)

// StoreMetrics tracks the run store.
//
// Metrics:
//   - atlas_runs_stored_total
//   - atlas_runs_skipped_total: ingests that matched an existing run
//   - atlas_runs_pruned_total
type StoreMetrics struct {
	stored  prometheus.Counter
	skipped prometheus.Counter
	pruned  prometheus.Counter
}

// NewStoreMetrics creates and registers store metrics with the provided registry.
func NewStoreMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *StoreMetrics {
	sm := &StoreMetrics{
		stored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_stored_total",
			Help:      "Total number of parse runs stored",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_skipped_total",
			Help:      "Total number of parse runs skipped as duplicates",
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_pruned_total",
			Help:      "Total number of parse runs deleted by retention",
		}),
	}

	registry.MustRegister(sm.stored, sm.skipped, sm.pruned)

	return sm
}
