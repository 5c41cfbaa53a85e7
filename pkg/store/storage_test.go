package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/config"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type backend struct {
	name string
	open func(t *testing.T) Storage
}

func backends() []backend {
	return []backend{
		{name: "memory", open: func(t *testing.T) Storage { return NewMemoryStorage() }},
		{name: "sqlite", open: func(t *testing.T) Storage { return openSQLite(t, DriverModernc) }},
		{name: "sqlite3", open: func(t *testing.T) Storage { return openSQLite(t, DriverMattn) }},
	}
}

func openSQLite(t *testing.T, driver string) Storage {
	t.Helper()
	s, err := NewSQLiteStorage(&SQLiteConfig{
		Driver:       driver,
		Path:         filepath.Join(t.TempDir(), "runs", "atlas.db"),
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  time.Second,
	})
	if err != nil && driver == DriverMattn && strings.Contains(err.Error(), "CGO_ENABLED") {
		t.Skipf("cgo driver unavailable: %v", err)
	}
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id, column string, created time.Time) *Run {
	return &Run{
		ID:        id,
		Source:    "review.csv",
		Column:    column,
		Header:    "RQ " + column,
		Options:   parser.DefaultOptions(),
		Checksum:  Checksum([]string{id}),
		CreatedAt: created,
		Cells: []Cell{
			{
				Row:   1,
				Raw:   "[Shots: 200, 300]",
				Value: ast.Value{Kind: ast.KindMapping, Entries: []ast.Entry{{Key: "Shots", Values: []string{"200", "300"}}}},
			},
			{
				Row:   2,
				Raw:   "[a], [b",
				Value: ast.NewList("a"),
				Diagnostics: []Diagnostic{
					{Type: "syntax", Severity: "warning", Message: "unterminated block", Offset: 5, Suggestion: "add ]"},
				},
			},
			{Row: 3, Raw: "", Value: ast.Empty()},
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Storage)) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t))
		})
	}
}

func TestStorage_SaveAndGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		run := sampleRun("run-1", "rq1", base)
		run.Options.Mixed = parser.MixedPreserve

		require.NoError(t, s.Save(ctx, run))
		assert.Equal(t, 3, run.CellCount)
		assert.Equal(t, 1, run.DiagnosticCount)

		got, err := s.Get(ctx, "run-1")
		require.NoError(t, err)

		assert.Equal(t, run.ID, got.ID)
		assert.Equal(t, run.Header, got.Header)
		assert.Equal(t, run.Checksum, got.Checksum)
		assert.Equal(t, parser.MixedPreserve, got.Options.Mixed)
		assert.True(t, got.CreatedAt.Equal(base), "CreatedAt = %v, want %v", got.CreatedAt, base)
		assert.Equal(t, 3, got.CellCount)
		assert.Equal(t, 1, got.DiagnosticCount)

		require.Len(t, got.Cells, 3)
		for i, cell := range got.Cells {
			assert.Equal(t, run.Cells[i].Row, cell.Row)
			assert.Equal(t, run.Cells[i].Raw, cell.Raw)
			assert.True(t, run.Cells[i].Value.Equal(cell.Value), "cell %d value = %+v, want %+v", i, cell.Value, run.Cells[i].Value)
		}
		assert.Equal(t, run.Cells[1].Diagnostics, got.Cells[1].Diagnostics)
		assert.Empty(t, got.Cells[0].Diagnostics)
	})
}

func TestStorage_SaveDuplicate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		require.NoError(t, s.Save(ctx, sampleRun("dup", "rq1", base)))

		err := s.Save(ctx, sampleRun("dup", "rq1", base))
		require.Error(t, err)

		var storageErr *StorageError
		assert.True(t, errors.As(err, &storageErr), "error %T is not a *StorageError", err)
	})
}

func TestStorage_GetNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		_, err := s.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_ListAndCount(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			column := "rq1"
			if i%2 == 1 {
				column = "rq2"
			}
			run := sampleRun(fmt.Sprintf("run-%d", i), column, base.Add(time.Duration(i)*time.Hour))
			require.NoError(t, s.Save(ctx, run))
		}

		all, err := s.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, 5)
		assert.Equal(t, "run-4", all[0].ID, "newest first")
		assert.Equal(t, "run-0", all[4].ID)
		assert.Nil(t, all[0].Cells, "List does not load cells")
		assert.Equal(t, 3, all[0].CellCount)

		rq2, err := s.List(ctx, &Filter{Column: "rq2"})
		require.NoError(t, err)
		require.Len(t, rq2, 2)
		assert.Equal(t, "run-3", rq2[0].ID)

		page, err := s.List(ctx, &Filter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "run-3", page[0].ID)
		assert.Equal(t, "run-2", page[1].ID)

		tail, err := s.List(ctx, &Filter{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, tail, 2)

		before := base.Add(2 * time.Hour)
		older, err := s.List(ctx, &Filter{Before: &before})
		require.NoError(t, err)
		assert.Len(t, older, 2)

		after := base.Add(2 * time.Hour)
		n, err := s.Count(ctx, &Filter{After: &after})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = s.Count(ctx, &Filter{Column: "rq1", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}

func TestStorage_FindByChecksum(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		run := sampleRun("run-1", "rq1", base)
		run.Options.Workers = 2
		require.NoError(t, s.Save(ctx, run))

		opts := parser.DefaultOptions()
		opts.Workers = 8
		got, err := s.FindByChecksum(ctx, "review.csv", "rq1", run.Checksum, opts)
		require.NoError(t, err)
		assert.Equal(t, "run-1", got.ID)

		keepKeys := opts
		keepKeys.SkipInvalidKey = false
		_, err = s.FindByChecksum(ctx, "review.csv", "rq1", run.Checksum, keepKeys)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.FindByChecksum(ctx, "review.csv", "rq2", run.Checksum, opts)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.FindByChecksum(ctx, "review.csv", "rq1", "other", opts)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_DeleteBefore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		for i := 0; i < 4; i++ {
			require.NoError(t, s.Save(ctx, sampleRun(fmt.Sprintf("run-%d", i), "rq1", base.AddDate(0, 0, i))))
		}

		deleted, err := s.DeleteBefore(ctx, base.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		n, err := s.Count(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		_, err = s.Get(ctx, "run-0")
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := s.Get(ctx, "run-3")
		require.NoError(t, err)
		assert.Len(t, got.Cells, 3)
	})
}

func TestStorage_DeleteOldest(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			require.NoError(t, s.Save(ctx, sampleRun(fmt.Sprintf("run-%d", i), "rq1", base.Add(time.Duration(i)*time.Minute))))
		}

		deleted, err := s.DeleteOldest(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		runs, err := s.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "run-4", runs[0].ID)
		assert.Equal(t, "run-3", runs[1].ID)

		deleted, err = s.DeleteOldest(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})
}

func TestStorage_ConcurrentSave(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Storage) {
		ctx := context.Background()
		var wg sync.WaitGroup
		errs := make(chan error, 20)

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.Save(ctx, sampleRun(fmt.Sprintf("run-%02d", i), "rq1", base.Add(time.Duration(i)*time.Second)))
			}(i)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}

		n, err := s.Count(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(20), n)
	})
}

func TestChecksum(t *testing.T) {
	a := Checksum([]string{"ab", "c"})
	b := Checksum([]string{"a", "bc"})
	assert.NotEqual(t, a, b, "cell boundaries are part of the checksum")
	assert.Equal(t, a, Checksum([]string{"ab", "c"}))
	assert.Len(t, a, 64)
}

func TestPolicyKey_IgnoresWorkers(t *testing.T) {
	a := parser.DefaultOptions()
	b := a
	b.Workers = 16
	assert.Equal(t, PolicyKey(a), PolicyKey(b))

	b.SkipInvalidValue = false
	assert.NotEqual(t, PolicyKey(a), PolicyKey(b))
}

func TestNewSQLiteStorage_InvalidConfig(t *testing.T) {
	_, err := NewSQLiteStorage(&SQLiteConfig{Driver: "postgres", Path: "x.db"})
	assert.Error(t, err)

	_, err = NewSQLiteStorage(&SQLiteConfig{Driver: DriverModernc})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	s, err := New(config.StoreConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	cfg := config.DefaultConfig().Store
	cfg.Path = filepath.Join(t.TempDir(), "atlas.db")
	s, err = New(cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStorage{}, s)

	_, err = New(config.StoreConfig{Backend: "postgres"})
	assert.Error(t, err)
}
