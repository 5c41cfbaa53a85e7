package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/cli"
	"slr-hq/atlas/pkg/config"
	"slr-hq/atlas/pkg/dataset"
	"slr-hq/atlas/pkg/ingest"
	"slr-hq/atlas/pkg/store"
	"slr-hq/atlas/pkg/store/retention"
	"slr-hq/atlas/pkg/telemetry/health"
	"slr-hq/atlas/pkg/telemetry/metrics"
	"slr-hq/atlas/pkg/watch"
)

// shutdownTimeout bounds the graceful stop of the HTTP server.
const shutdownTimeout = 5 * time.Second

var watchFlags struct {
	listen string
}

var watchCmd = &cobra.Command{
	Use:   "watch [column...]",
	Short: "Re-ingest the dataset whenever it changes",
	Long: `Ingest the dataset, then watch it and ingest again after every change.

While watching, Atlas also:
  - reloads the configuration file when it changes
  - prunes old runs on the store.retention.schedule cron
  - serves /metrics, /health, /ready and /version when metrics are
    enabled or --listen is given

Examples:
  atlas watch
  atlas watch rq1_gates rq3_oracles --listen 127.0.0.1:9464`,
	RunE: watchDataset,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.listen, "listen", "", "serve metrics and health on this address")
}

// watchService re-ingests the dataset with the current configuration.
type watchService struct {
	storage store.Storage
	metrics *metrics.Collector
	tracker *health.IngestTracker
	columns []string
	logger  *slog.Logger
}

func newWatchService(storage store.Storage, collector *metrics.Collector, columns []string) *watchService {
	return &watchService{
		storage: storage,
		metrics: collector,
		tracker: &health.IngestTracker{},
		columns: columns,
		logger:  slog.Default().With("component", "watch"),
	}
}

// reingest loads path, or the configured dataset when path is empty, and
// ingests the watched columns. The outcome is recorded on the tracker.
func (s *watchService) reingest(ctx context.Context, path string) error {
	cfg := config.GetConfig()
	stored, err := s.ingest(ctx, cfg, path)
	s.tracker.Record(time.Now(), stored, err)
	return err
}

func (s *watchService) ingest(ctx context.Context, cfg *config.Config, path string) (int, error) {
	if path == "" {
		path = cfg.Dataset.Path
	}
	columns, err := columnNames(cfg, s.columns, cfg.Watch.Columns)
	if err != nil {
		return 0, err
	}
	table, err := dataset.Load(path)
	if err != nil {
		return 0, err
	}

	results, err := ingest.NewIngester(parser.NewParserWithOptions(cfg.Parser.Options()), s.storage).
		WithMetrics(s.metrics).
		Ingest(ctx, table, columns, cfg.Dataset.Columns)
	if err != nil {
		return 0, err
	}

	stored := 0
	for _, res := range results {
		if !res.Skipped {
			stored++
		}
	}
	s.logger.Info("dataset ingested", "path", path, "columns", len(results), "stored", stored)
	return stored, nil
}

func watchDataset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	storage, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	listen := cfg.Telemetry.Metrics.ListenAddress
	if watchFlags.listen != "" {
		listen = watchFlags.listen
	}
	serve := cfg.Telemetry.Metrics.Enabled || watchFlags.listen != ""

	var collector *metrics.Collector
	if serve {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	svc := newWatchService(storage, collector, args)
	if err := svc.reingest(ctx, ""); err != nil {
		return cli.NewCommandError("watch", err)
	}

	pruner := retention.NewPruner(storage, retention.FromConfig(cfg.Store.Retention)).WithMetrics(collector)
	if err := pruner.Start(ctx); err != nil {
		return cli.NewConfigError("store.retention.schedule", err.Error())
	}
	defer pruner.Stop()

	g, gctx := errgroup.WithContext(ctx)
	out := cmd.OutOrStdout()

	if serve {
		srv := newServer(cfg, listen, collector, svc)
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		fmt.Fprintf(out, "✓ Metrics endpoint: http://%s%s\n", listen, cfg.Telemetry.Metrics.Path)
		fmt.Fprintf(out, "✓ Health endpoint: http://%s/health\n", listen)
	}

	datasetWatcher, err := watch.NewFileWatcher(&watch.Config{
		Path:       cfg.Dataset.Path,
		Debounce:   cfg.Watch.Debounce,
		Extensions: []string{".csv"},
		SkipHidden: true,
	}, slog.Default())
	if err != nil {
		return err
	}
	g.Go(func() error {
		return datasetWatcher.Watch(gctx, func(path string) error {
			return svc.reingest(gctx, path)
		})
	})

	if path := configPath(); path != "" {
		configWatcher, err := watch.NewFileWatcher(&watch.Config{
			Path:       path,
			Debounce:   cfg.Watch.Debounce,
			Extensions: []string{".yaml", ".yml"},
			SkipHidden: true,
		}, slog.Default())
		if err != nil {
			return err
		}
		g.Go(func() error {
			return configWatcher.Watch(gctx, func(string) error {
				if err := config.ReloadConfig(path); err != nil {
					return err
				}
				slog.Info("configuration reloaded", "path", path)
				return svc.reingest(gctx, "")
			})
		})
	}

	if next := pruner.NextPruning(); next != nil {
		fmt.Fprintf(out, "✓ Next pruning: %s\n", next.Format(time.RFC3339))
	}
	fmt.Fprintf(out, "✓ Watching %s\n", cfg.Dataset.Path)
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	return g.Wait()
}

// newServer exposes metrics and health checks.
func newServer(cfg *config.Config, listen string, collector *metrics.Collector, svc *watchService) *http.Server {
	checker := health.New(2 * time.Second)
	checker.RegisterCheck("dataset", health.FileCheck(cfg.Dataset.Path))
	checker.RegisterCheck("store", health.StoreCheck(svc.storage))
	checker.RegisterCheck("ingest", svc.tracker.Check)

	mux := http.NewServeMux()
	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
	health.Register(mux, checker, Version)

	return &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
