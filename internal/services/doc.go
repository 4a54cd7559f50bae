// Package services implements the business logic layer of the dashboard.
// It provides a clean separation between HTTP handlers and data access,
// ensuring that business rules are centralized and testable.
//
// # Available Services
//
// The package provides these core services:
//
//	- Loader: caches the parsed bookings snapshot and reloads it only
//	  when the source file changes
//	- DashboardService: assembles the aggregate views behind the
//	  dashboard API (overview, temporal, locations, quality, financial)
//	- HealthService: provides system health checks
//
// # Error Handling
//
// Services return domain-specific errors that handlers can transform:
//
//	- ErrSnapshotNotFound when the source file is missing
//	- analytics.ErrInvalidRange (wrapped) for inverted date filters
//	- Internal errors for unexpected failures
package services
