// Package dataprocessing loads and normalizes the booking snapshot.
// It consolidates CSV ingestion, schema normalization, and field derivation
// into a cohesive package that turns raw tabular rows into the Booking
// records every aggregation consumes.
//
// # Architecture
//
// The package is organized into two stages:
//
//  1. Parser: reads the snapshot CSV, resolves columns by name, and
//     normalizes date/time text into structured calendar values
//  2. Deriver: adds calendar fields (day name, month name, hour, time-range
//     bucket) and the completion flag
//
// # Usage
//
// Basic loading example:
//
//	bookings, err := dataprocessing.ParseFile("bookings.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bookings = dataprocessing.Derive(bookings)
//	completed := dataprocessing.Completed(bookings)
//
// # Error Handling
//
// Only an unreadable or structurally broken snapshot is fatal. Row-level
// parse failures (bad date or time text) null the affected field and keep
// the row, so totals stay consistent across every downstream view.
package dataprocessing
