package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"slr-hq/atlas/pkg/store"
)

func TestNew(t *testing.T) {
	if got := New(0).checkTimeout; got != 5*time.Second {
		t.Errorf("default timeout = %v, want 5s", got)
	}
	if got := New(time.Second).checkTimeout; got != time.Second {
		t.Errorf("timeout = %v, want 1s", got)
	}
}

func TestChecker_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus string
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: "ready",
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"a": func(context.Context) error { return nil },
				"b": func(context.Context) error { return nil },
			},
			wantStatus: "ready",
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"a": func(context.Context) error { return nil },
				"b": func(context.Context) error { return errors.New("down") },
			},
			wantStatus: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(time.Second)
			for name, check := range tt.checks {
				checker.RegisterCheck(name, check)
			}

			status := checker.CheckReadiness(context.Background())
			if status.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", status.Status, tt.wantStatus)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("len(Checks) = %d, want %d", len(status.Checks), len(tt.checks))
			}
		})
	}
}

func TestChecker_Timeout(t *testing.T) {
	checker := New(20 * time.Millisecond)
	checker.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	status := checker.CheckReadiness(context.Background())
	result := status.Checks["slow"]
	if result.Status != "unhealthy" || result.Message != "health check timeout" {
		t.Errorf("slow check = %+v, want timeout", result)
	}
}

func TestChecker_ListChecks(t *testing.T) {
	checker := New(0)
	checker.RegisterCheck("store", nil)
	checker.RegisterCheck("dataset", nil)
	checker.RegisterCheck("store", nil)

	got := checker.ListChecks()
	if len(got) != 2 || got[0] != "dataset" || got[1] != "store" {
		t.Errorf("ListChecks() = %v, want [dataset store]", got)
	}
}

func TestFileCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "review.csv")
	if err := os.WriteFile(file, []byte("ID\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := FileCheck(file)(ctx); err != nil {
		t.Errorf("FileCheck(existing) = %v", err)
	}
	if err := FileCheck(dir)(ctx); err != nil {
		t.Errorf("FileCheck(dir) = %v", err)
	}
	if err := FileCheck(filepath.Join(dir, "missing.csv"))(ctx); err == nil {
		t.Error("FileCheck(missing) = nil, want error")
	}
}

func TestStoreCheck(t *testing.T) {
	s := store.NewMemoryStorage()
	if err := StoreCheck(s)(context.Background()); err != nil {
		t.Errorf("StoreCheck() = %v", err)
	}
}

func TestIngestTracker(t *testing.T) {
	var tracker IngestTracker
	ctx := context.Background()

	if err := tracker.Check(ctx); err != nil {
		t.Errorf("Check() before any ingest = %v, want nil", err)
	}

	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	tracker.Record(at, 0, errors.New("column not found"))
	if err := tracker.Check(ctx); err == nil {
		t.Error("Check() after failed ingest = nil, want error")
	}

	tracker.Record(at.Add(time.Minute), 3, nil)
	if err := tracker.Check(ctx); err != nil {
		t.Errorf("Check() after successful ingest = %v", err)
	}
	if _, runs, _ := tracker.Last(); runs != 3 {
		t.Errorf("Last() runs = %d, want 3", runs)
	}
}

func TestHandlers(t *testing.T) {
	checker := New(time.Second)
	failing := false
	checker.RegisterCheck("store", func(context.Context) error {
		if failing {
			return errors.New("locked")
		}
		return nil
	})

	mux := http.NewServeMux()
	Register(mux, checker, "1.2.3")

	tests := []struct {
		name     string
		method   string
		path     string
		failing  bool
		wantCode int
	}{
		{"liveness", http.MethodGet, "/health", false, http.StatusOK},
		{"ready", http.MethodGet, "/ready", false, http.StatusOK},
		{"not ready", http.MethodGet, "/ready", true, http.StatusServiceUnavailable},
		{"version", http.MethodGet, "/version", false, http.StatusOK},
		{"head", http.MethodHead, "/health", false, http.StatusOK},
		{"post rejected", http.MethodPost, "/health", false, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failing = tt.failing
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantCode)
			}
			if tt.method == http.MethodHead && rec.Body.Len() != 0 {
				t.Errorf("HEAD body = %q, want empty", rec.Body.String())
			}
		})
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info VersionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", info.Version)
	}
}
