package retention

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"slr-hq/atlas/pkg/config"
	"slr-hq/atlas/pkg/export"
	"slr-hq/atlas/pkg/store"
	"slr-hq/atlas/pkg/telemetry/metrics"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the age in days after which runs are deleted.
	// Zero or negative keeps runs regardless of age.
	RetentionDays int

	// MaxRuns is the maximum number of runs to keep. Zero means unlimited.
	MaxRuns int64

	// Schedule is a cron expression for scheduled pruning, e.g. "0 3 * * *".
	Schedule string

	// ArchiveDir receives a JSON export of runs before deletion when set.
	ArchiveDir string
}

// FromConfig converts the store retention section.
func FromConfig(cfg config.RetentionConfig) *Config {
	return &Config{
		RetentionDays: cfg.Days,
		MaxRuns:       cfg.MaxRuns,
		Schedule:      cfg.Schedule,
		ArchiveDir:    cfg.ArchiveDir,
	}
}

// Pruner enforces retention on a run store.
type Pruner struct {
	storage   store.Storage
	config    *Config
	metrics   *metrics.Collector
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time
}

// NewPruner creates a new retention pruner.
func NewPruner(storage store.Storage, config *Config) *Pruner {
	if config == nil {
		config = &Config{}
	}

	pruner := &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "store.retention"),
		now:     time.Now,
	}
	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// WithMetrics records pruned run counts on m.
func (p *Pruner) WithMetrics(m *metrics.Collector) *Pruner {
	p.metrics = m
	return p
}

// Prune deletes runs by age, then by count. It returns the total number of
// runs deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned runs by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxRuns > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by count failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned runs by count",
			"deleted_count", deleted,
			"max_runs", p.config.MaxRuns,
		)
	}

	p.metrics.RecordRunsPruned(total)

	if total > 0 {
		p.logger.Info("run pruning completed",
			"total_deleted", total,
			"retention_days", p.config.RetentionDays,
			"max_runs", p.config.MaxRuns,
		)
	}

	return total, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)

	if p.config.ArchiveDir != "" {
		if err := p.archive(ctx, &store.Filter{Before: &cutoff}, "age"); err != nil {
			return 0, err
		}
	}

	return p.storage.DeleteBefore(ctx, cutoff)
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	if count <= p.config.MaxRuns {
		return 0, nil
	}

	p.logger.Info("run count exceeds limit, pruning oldest",
		"current_count", count,
		"max_runs", p.config.MaxRuns,
	)

	if p.config.ArchiveDir != "" {
		if err := p.archive(ctx, &store.Filter{Offset: int(p.config.MaxRuns)}, "count"); err != nil {
			return 0, err
		}
	}

	return p.storage.DeleteOldest(ctx, p.config.MaxRuns)
}

// archive writes the runs selected by filter, cells included, to a JSON
// file in ArchiveDir.
func (p *Pruner) archive(ctx context.Context, filter *store.Filter, reason string) error {
	listed, err := p.storage.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list runs for archiving: %w", err)
	}
	if len(listed) == 0 {
		return nil
	}

	runs := make([]*store.Run, 0, len(listed))
	for _, r := range listed {
		full, err := p.storage.Get(ctx, r.ID)
		if err != nil {
			return fmt.Errorf("failed to load run %s for archiving: %w", r.ID, err)
		}
		runs = append(runs, full)
	}

	if err := os.MkdirAll(p.config.ArchiveDir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := fmt.Sprintf("runs-%s-%s.json", reason, p.now().Format("2006-01-02-150405"))
	path := filepath.Join(p.config.ArchiveDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	if err := export.NewJSONExporter(true).ExportRuns(ctx, runs, f); err != nil {
		return fmt.Errorf("failed to archive runs: %w", err)
	}

	p.logger.Info("runs archived",
		"archive_file", path,
		"run_count", len(runs),
	)
	return nil
}

// Start starts scheduled pruning.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops scheduled pruning and waits for a running prune to finish.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
