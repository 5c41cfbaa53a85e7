// Package health serves liveness and readiness endpoints for watch mode.
//
// A Checker runs named CheckFuncs concurrently with a per-check timeout.
// Watch mode registers checks for the dataset file, the run store and the
// outcome of the most recent re-ingest:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("dataset", health.FileCheck(cfg.Dataset.Path))
//	checker.RegisterCheck("store", health.StoreCheck(storage))
//	checker.RegisterCheck("ingest", tracker.Check)
//	health.Register(mux, checker, version)
//
// Endpoints:
//   - /health: liveness, always 200 while the process runs
//   - /ready: 200 when every check passes, 503 otherwise
//   - /version: build information
package health
