// Package aggregate turns parsed annotation columns into the counts that
// feed review tables and figures.
//
// Accumulation is explicit: a Collector gathers the values of selected
// keys across cells, Frequencies and BucketRare count them, Index maps each
// value to the papers that mention it and Overlap computes UpSet-style
// combinations across columns.
package aggregate
