package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/config"
)

// overflowColumn replaces column labels once the cardinality limit is hit.
const overflowColumn = "other"

// Collector owns every Prometheus metric Atlas records, registered on its
// own registry. A nil *Collector records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics *ParseMetrics
	storeMetrics *StoreMetrics

	// Column names come from spreadsheet headers; cap them.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector registered on registry. If registry is
// nil a fresh one is created.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		parseMetrics:       NewParseMetrics(cfg, registry),
		storeMetrics:       NewStoreMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

// RecordColumn records the outcome of parsing one column: the kind of every
// cell, every diagnostic by type and the elapsed time.
func (c *Collector) RecordColumn(column string, values []ast.Value, diags *errors.ErrorList, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}

	if !c.cardinalityLimiter.Allow(column) {
		column = overflowColumn
	}

	for _, v := range values {
		c.parseMetrics.RecordCell(column, v.Kind.String())
	}
	if diags != nil {
		for _, d := range diags.Errors {
			c.parseMetrics.RecordDiagnostic(string(d.Type))
		}
	}
	c.parseMetrics.RecordDuration(column, duration)
}

// RecordRunStored counts a run written to the store.
func (c *Collector) RecordRunStored() {
	if c == nil || !c.config.Enabled {
		return
	}
	c.storeMetrics.stored.Inc()
}

// RecordRunSkipped counts a run not written because an identical run exists.
func (c *Collector) RecordRunSkipped() {
	if c == nil || !c.config.Enabled {
		return
	}
	c.storeMetrics.skipped.Inc()
}

// RecordRunsPruned counts runs deleted by retention.
func (c *Collector) RecordRunsPruned(n int64) {
	if c == nil || !c.config.Enabled || n <= 0 {
		return
	}
	c.storeMetrics.pruned.Add(float64(n))
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter caps the number of distinct label values accepted.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter accepting at most maxCardinality
// distinct values.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether value is already tracked or still fits under the limit.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[value]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[value] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
