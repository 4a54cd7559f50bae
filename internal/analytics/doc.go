// Package analytics implements the filtering and aggregation layer of the
// booking dashboard.
//
// Every function in this package is a pure reduction over an immutable row
// set: inputs are never mutated, results are fresh values, and repeated
// calls with the same input produce identical output (including tie-break
// order in rankings). That makes the package safe to share across
// concurrent dashboard sessions without locking.
//
// # Components
//
//   - filter.go: date-range and vehicle-type membership filtering
//   - aggregate.go: grouped counts, dense domain grids, top-N rankings,
//     completion-rate series, numeric summaries, and cross-tabulations
//
// # Dense grids
//
// Aggregations over known domains (24 hours, 7 weekdays, 12 months, 4
// time-range buckets) always return every domain value, zero-filled where
// no observations exist, so chart axes stay stable across filter changes.
// A group with zero rows yields a defined zero-valued result, never an
// error and never NaN.
package analytics
