package health

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"slr-hq/atlas/pkg/store"
)

// FileCheck fails when path cannot be read.
func FileCheck(path string) CheckFunc {
	return func(ctx context.Context) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		return f.Close()
	}
}

// StoreCheck fails when the run store cannot be queried.
func StoreCheck(s store.Storage) CheckFunc {
	return func(ctx context.Context) error {
		_, err := s.Count(ctx, nil)
		return err
	}
}

// IngestTracker remembers the outcome of the most recent ingest.
type IngestTracker struct {
	mu   sync.RWMutex
	at   time.Time
	err  error
	runs int
}

// Record stores the outcome of an ingest.
func (t *IngestTracker) Record(at time.Time, runs int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.at, t.runs, t.err = at, runs, err
}

// Last returns the time, stored run count and error of the last ingest.
func (t *IngestTracker) Last() (time.Time, int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.at, t.runs, t.err
}

// Check is a CheckFunc failing while the last ingest failed. Before the
// first ingest it passes.
func (t *IngestTracker) Check(ctx context.Context) error {
	at, _, err := t.Last()
	if err != nil {
		return fmt.Errorf("last ingest at %s failed: %w", at.Format(time.RFC3339), err)
	}
	return nil
}
