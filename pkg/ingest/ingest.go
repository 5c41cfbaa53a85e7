package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"slr-hq/atlas/pkg/annotation/ast"
	annerrors "slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/dataset"
	"slr-hq/atlas/pkg/store"
	"slr-hq/atlas/pkg/telemetry/logging"
	"slr-hq/atlas/pkg/telemetry/metrics"
)

// DefaultConcurrency bounds how many columns are parsed at once.
const DefaultConcurrency = 4

// Result describes the outcome for one column.
type Result struct {
	Column string
	Header string

	// Run is the stored run, or the existing run when Skipped.
	Run *store.Run

	// Skipped is true when an identical run already existed.
	Skipped bool

	Duration time.Duration
}

// Ingester parses columns and stores them.
type Ingester struct {
	parser      *parser.Parser
	storage     store.Storage
	metrics     *metrics.Collector
	logger      *logging.Logger
	concurrency int
	force       bool
	progress    func(done, total int)

	now   func() time.Time
	newID func() string
}

// NewIngester creates an ingester.
func NewIngester(p *parser.Parser, storage store.Storage) *Ingester {
	return &Ingester{
		parser:      p,
		storage:     storage,
		logger:      logging.FromSlog(slog.Default().With("component", "ingest")),
		concurrency: DefaultConcurrency,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// WithMetrics records parse and store metrics on m.
func (i *Ingester) WithMetrics(m *metrics.Collector) *Ingester {
	i.metrics = m
	return i
}

// WithLogger replaces the logger.
func (i *Ingester) WithLogger(l *logging.Logger) *Ingester {
	i.logger = l
	return i
}

// WithConcurrency bounds column concurrency. Values below one mean one.
func (i *Ingester) WithConcurrency(n int) *Ingester {
	if n < 1 {
		n = 1
	}
	i.concurrency = n
	return i
}

// WithForce stores runs even when an identical run exists.
func (i *Ingester) WithForce(force bool) *Ingester {
	i.force = force
	return i
}

// WithProgress calls fn after each column finishes.
func (i *Ingester) WithProgress(fn func(done, total int)) *Ingester {
	i.progress = fn
	return i
}

// Ingest parses and stores the named columns of table. Names are aliases
// from aliases or raw headers. All names are resolved before any parsing
// starts; results are in the order of columns.
func (i *Ingester) Ingest(ctx context.Context, table *dataset.Table, columns []string, aliases map[string]string) ([]Result, error) {
	if len(columns) == 0 {
		return nil, errors.New("no columns to ingest")
	}

	cells := make([][]string, len(columns))
	headers := make([]string, len(columns))
	for n, name := range columns {
		header, err := dataset.ResolveHeader(name, aliases, table.Headers())
		if err != nil {
			var ce *dataset.ColumnError
			if errors.As(err, &ce) {
				ce.Table = table.Name
			}
			return nil, err
		}
		headers[n] = header
		if cells[n], err = table.Column(header); err != nil {
			return nil, err
		}
	}

	ctx = logging.WithSource(ctx, table.Name)
	results := make([]Result, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	var done atomic.Int64

	for n := range columns {
		g.Go(func() error {
			res, err := i.ingestColumn(gctx, table.Name, columns[n], headers[n], cells[n])
			if err != nil {
				return fmt.Errorf("column %q: %w", columns[n], err)
			}
			results[n] = res
			if i.progress != nil {
				i.progress(int(done.Add(1)), len(columns))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (i *Ingester) ingestColumn(ctx context.Context, source, column, header string, raw []string) (Result, error) {
	ctx = logging.WithColumn(ctx, column)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	inspected := i.parser.InspectColumn(column, raw)
	duration := time.Since(start)

	values := make([]ast.Value, len(inspected))
	diags := annerrors.NewErrorList()
	for n, res := range inspected {
		values[n] = res.Value
		diags.Merge(res.Diagnostics)
	}
	i.metrics.RecordColumn(column, values, diags, duration)

	opts := i.parser.Options()
	checksum := store.Checksum(raw)
	result := Result{Column: column, Header: header, Duration: duration}

	if !i.force {
		existing, err := i.storage.FindByChecksum(ctx, source, column, checksum, opts)
		switch {
		case err == nil:
			i.metrics.RecordRunSkipped()
			i.logger.InfoContext(logging.WithRunID(ctx, existing.ID), "column unchanged, run not stored")
			result.Run = existing
			result.Skipped = true
			return result, nil
		case !errors.Is(err, store.ErrNotFound):
			return Result{}, err
		}
	}

	run := &store.Run{
		ID:        i.newID(),
		Source:    source,
		Column:    column,
		Header:    header,
		Options:   opts,
		Checksum:  checksum,
		CreatedAt: i.now(),
		Cells:     store.CellsFrom(raw, inspected),
	}
	if err := i.storage.Save(ctx, run); err != nil {
		return Result{}, err
	}
	i.metrics.RecordRunStored()

	i.logger.InfoContext(logging.WithRunID(ctx, run.ID), "run stored",
		"cells", run.CellCount,
		"diagnostics", run.DiagnosticCount,
		"duration", duration,
	)

	result.Run = run
	return result, nil
}
