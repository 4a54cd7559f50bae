package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	loader    *Loader
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Snapshot  *SnapshotHealth        `json:"snapshot,omitempty"`
}

// SnapshotHealth reports the state of the cached bookings snapshot.
type SnapshotHealth struct {
	Status   string     `json:"status"`
	Rows     int        `json:"rows,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Message  string     `json:"message,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version string, loader *Loader, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		loader:    loader,
		startTime: time.Now(),
		logger:    logger.With("component", "health_service"),
	}
}

// Check returns the overall service health. The snapshot is loaded lazily,
// so a check on a fresh process also verifies the source file is readable.
func (hs *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
		},
	}

	snap, err := hs.loader.Snapshot(ctx)
	if err != nil {
		hs.logger.WarnContext(ctx, "health check: snapshot unavailable",
			slog.String("error", err.Error()))
		status.Status = "degraded"
		status.Snapshot = &SnapshotHealth{
			Status:  "unavailable",
			Message: err.Error(),
		}
		return status
	}

	status.Snapshot = &SnapshotHealth{
		Status:   "loaded",
		Rows:     len(snap.Rows),
		LoadedAt: &snap.LoadedAt,
	}
	return status
}
