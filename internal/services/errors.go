package services

import "errors"

// Dashboard service errors
var (
	// Snapshot errors
	ErrSnapshotNotFound  = errors.New("snapshot file not found")
	ErrSnapshotNotLoaded = errors.New("snapshot not loaded")
	ErrSnapshotEmpty     = errors.New("snapshot contains no rows")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
