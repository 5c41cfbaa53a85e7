package retention

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/config"
	"slr-hq/atlas/pkg/store"
	"slr-hq/atlas/pkg/telemetry/metrics"
)

var now = time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC)

// seed stores one run per age in days.
func seed(t *testing.T, s store.Storage, ages ...int) {
	t.Helper()
	for i, age := range ages {
		run := &store.Run{
			ID:        fmt.Sprintf("run-%d", i),
			Source:    "review.csv",
			Column:    "rq1",
			CreatedAt: now.AddDate(0, 0, -age),
			Cells:     []store.Cell{{Row: 1, Raw: "[a]", Value: ast.NewList("a")}},
		}
		require.NoError(t, s.Save(context.Background(), run))
	}
}

func newTestPruner(s store.Storage, cfg *Config) *Pruner {
	p := NewPruner(s, cfg)
	p.now = func() time.Time { return now }
	return p
}

func TestPruner_Prune(t *testing.T) {
	tests := []struct {
		name        string
		ages        []int
		config      Config
		wantDeleted int64
		wantLeft    int64
	}{
		{
			name:        "age only",
			ages:        []int{1, 10, 40, 100},
			config:      Config{RetentionDays: 30},
			wantDeleted: 2,
			wantLeft:    2,
		},
		{
			name:        "count only",
			ages:        []int{1, 2, 3, 4, 5},
			config:      Config{MaxRuns: 3},
			wantDeleted: 2,
			wantLeft:    3,
		},
		{
			name:        "age then count",
			ages:        []int{1, 2, 3, 50, 60},
			config:      Config{RetentionDays: 30, MaxRuns: 2},
			wantDeleted: 3,
			wantLeft:    2,
		},
		{
			name:        "keep forever",
			ages:        []int{1, 400},
			config:      Config{RetentionDays: -1},
			wantDeleted: 0,
			wantLeft:    2,
		},
		{
			name:        "count within limit",
			ages:        []int{1, 2},
			config:      Config{MaxRuns: 5},
			wantDeleted: 0,
			wantLeft:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStorage()
			seed(t, s, tt.ages...)

			cfg := tt.config
			deleted, err := newTestPruner(s, &cfg).Prune(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
			assert.Equal(t, int(tt.wantLeft), s.Size())
		})
	}
}

func TestPruner_CountKeepsNewest(t *testing.T) {
	s := store.NewMemoryStorage()
	seed(t, s, 5, 1, 3)

	_, err := newTestPruner(s, &Config{MaxRuns: 1}).Prune(context.Background())
	require.NoError(t, err)

	runs, err := s.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}

func TestPruner_Archive(t *testing.T) {
	s := store.NewMemoryStorage()
	seed(t, s, 1, 45, 90)
	dir := filepath.Join(t.TempDir(), "archive")

	deleted, err := newTestPruner(s, &Config{RetentionDays: 30, ArchiveDir: dir}).Prune(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), "runs-age-"), files[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)

	var archived []struct {
		ID    string            `json:"id"`
		Cells []json.RawMessage `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(data, &archived))
	require.Len(t, archived, 2)
	assert.Equal(t, "run-1", archived[0].ID)
	assert.Equal(t, "run-2", archived[1].ID)
	assert.Len(t, archived[0].Cells, 1)
}

func TestPruner_ArchiveNothing(t *testing.T) {
	s := store.NewMemoryStorage()
	seed(t, s, 1)
	dir := filepath.Join(t.TempDir(), "archive")

	_, err := newTestPruner(s, &Config{RetentionDays: 30, ArchiveDir: dir}).Prune(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "archive directory created with nothing to archive")
}

func TestPruner_Metrics(t *testing.T) {
	s := store.NewMemoryStorage()
	seed(t, s, 1, 2, 3)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "test"}, registry)

	_, err := newTestPruner(s, &Config{MaxRuns: 1}).WithMetrics(collector).Prune(context.Background())
	require.NoError(t, err)

	expected := `
# HELP test_runs_pruned_total Total number of parse runs deleted by retention
# TYPE test_runs_pruned_total counter
test_runs_pruned_total 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_runs_pruned_total"))
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.RetentionConfig{Days: 7, MaxRuns: 9, Schedule: "@daily", ArchiveDir: "a"})
	assert.Equal(t, &Config{RetentionDays: 7, MaxRuns: 9, Schedule: "@daily", ArchiveDir: "a"}, cfg)
}
