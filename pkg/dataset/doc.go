// Package dataset loads the review spreadsheet.
//
// The spreadsheet is exported to CSV with one header row and one row per
// primary study. Annotation columns are addressed either by their header or
// by an alias from the configuration:
//
//	table, err := dataset.Load("data/review.csv")
//	cells, err := table.Resolve("rq7_oracles", cfg.Dataset.Columns)
//
// The package also carries the small cell helpers used by the statistics
// commands: Clean strips bracket notation and BooleanCounts tallies [Y]/[N]
// screening marks.
package dataset
