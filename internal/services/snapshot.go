package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"ridepulse/internal/dataprocessing"
	"ridepulse/internal/infrastructure"
)

// Snapshot is a fully parsed and derived copy of the bookings file. It is
// immutable after load: callers share the row slice read-only.
type Snapshot struct {
	ID       string
	Path     string
	Size     int64
	ModTime  time.Time
	LoadedAt time.Time
	Rows     []dataprocessing.Booking
}

// Loader caches the current snapshot and reloads it only when the source
// file's identity (size + mtime) changes.
type Loader struct {
	path    string
	logger  *slog.Logger
	metrics *infrastructure.Metrics

	mu      sync.RWMutex
	current *Snapshot
}

// NewLoader creates a snapshot loader for the given CSV path. metrics may
// be nil when observability is not wired (tests, one-shot CLI runs).
func NewLoader(path string, logger *slog.Logger, metrics *infrastructure.Metrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		path:    path,
		logger:  logger.With("component", "snapshot_loader"),
		metrics: metrics,
	}
}

// Snapshot returns the current snapshot, loading or reloading the source
// file if its size or mtime changed since the last load.
func (l *Loader) Snapshot(ctx context.Context) (*Snapshot, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, l.path)
		}
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	l.mu.RLock()
	snap := l.current
	l.mu.RUnlock()
	if snap != nil && snap.Size == info.Size() && snap.ModTime.Equal(info.ModTime()) {
		return snap, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another goroutine may have loaded while we waited for the lock.
	if l.current != nil && l.current.Size == info.Size() && l.current.ModTime.Equal(info.ModTime()) {
		return l.current, nil
	}

	start := time.Now()
	rows, err := dataprocessing.ParseFile(l.path)
	if err != nil {
		l.recordLoad(ctx, "error", 0)
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	rows = dataprocessing.Derive(rows)

	snap = &Snapshot{
		ID:       uuid.New().String(),
		Path:     l.path,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		LoadedAt: time.Now(),
		Rows:     rows,
	}
	l.current = snap

	l.logger.InfoContext(ctx, "snapshot loaded",
		slog.String("snapshot_id", snap.ID),
		slog.String("path", snap.Path),
		slog.Int("rows", len(snap.Rows)),
		slog.Duration("duration", time.Since(start)))
	l.recordLoad(ctx, "ok", len(rows))

	return snap, nil
}

// Loaded reports whether a snapshot is currently cached.
func (l *Loader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current != nil
}

func (l *Loader) recordLoad(ctx context.Context, result string, rows int) {
	if l.metrics == nil {
		return
	}
	l.metrics.SnapshotLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	if result == "ok" {
		l.metrics.SnapshotRows.Record(ctx, int64(rows))
	}
}
