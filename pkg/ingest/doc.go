// Package ingest parses dataset columns and records them as runs.
//
// An Ingester resolves each requested column (alias or header), parses its
// cells with the configured policy, records metrics and saves the result
// as a store.Run. Columns are parsed concurrently. A column whose raw
// cells, source and policy match an existing run is not stored again.
package ingest
