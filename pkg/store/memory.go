package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"slr-hq/atlas/pkg/annotation/parser"
)

// MemoryStorage implements the Storage interface using an in-memory map.
type MemoryStorage struct {
	runs map[string]*Run
	mu   sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		runs: make(map[string]*Run),
	}
}

// Save stores a copy of run.
func (s *MemoryStorage) Save(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return NewStorageError("memory", "save", fmt.Errorf("run %s already exists", run.ID))
	}

	c := copyRun(run, true)
	c.Summarize()
	run.CellCount, run.DiagnosticCount = c.CellCount, c.DiagnosticCount
	s.runs[run.ID] = c

	return nil
}

// Get returns a copy of the run with its cells.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRun(run, true), nil
}

// List returns matching runs, newest first, without cells.
func (s *MemoryStorage) List(ctx context.Context, filter *Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter == nil {
		filter = &Filter{}
	}

	results := []*Run{}
	for _, run := range s.sorted() {
		if matchesFilter(run, filter) {
			results = append(results, copyRun(run, false))
		}
	}

	// Apply pagination
	start := filter.Offset
	if start > len(results) {
		return []*Run{}, nil
	}
	results = results[start:]
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}

	return results, nil
}

// FindByChecksum returns the newest run with identical inputs.
func (s *MemoryStorage) FindByChecksum(ctx context.Context, source, column, checksum string, opts parser.Options) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := PolicyKey(opts)
	for _, run := range s.sorted() {
		if run.Source == source && run.Column == column && run.Checksum == checksum && PolicyKey(run.Options) == key {
			return copyRun(run, false), nil
		}
	}
	return nil, ErrNotFound
}

// Count returns the number of matching runs.
func (s *MemoryStorage) Count(ctx context.Context, filter *Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter == nil {
		filter = &Filter{}
	}

	var count int64
	for _, run := range s.runs {
		if matchesFilter(run, filter) {
			count++
		}
	}
	return count, nil
}

// DeleteBefore removes runs created before cutoff.
func (s *MemoryStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, run := range s.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(s.runs, id)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteOldest removes the oldest runs beyond keep.
func (s *MemoryStorage) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := s.sorted()
	if int64(len(runs)) <= keep {
		return 0, nil
	}

	var deleted int64
	for _, run := range runs[keep:] {
		delete(s.runs, run.ID)
		deleted++
	}
	return deleted, nil
}

// Close drops every run.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]*Run)
	return nil
}

// Size returns the number of stored runs.
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.runs)
}

// sorted returns the runs newest first, ties broken by ID. Callers hold the lock.
func (s *MemoryStorage) sorted() []*Run {
	runs := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	return runs
}

func matchesFilter(run *Run, filter *Filter) bool {
	if filter.Source != "" && run.Source != filter.Source {
		return false
	}
	if filter.Column != "" && run.Column != filter.Column {
		return false
	}
	if filter.Before != nil && !run.CreatedAt.Before(*filter.Before) {
		return false
	}
	if filter.After != nil && !run.CreatedAt.After(*filter.After) {
		return false
	}
	return true
}

func copyRun(run *Run, withCells bool) *Run {
	c := *run
	c.Cells = nil
	if withCells && run.Cells != nil {
		c.Cells = append([]Cell(nil), run.Cells...)
	}
	return &c
}
