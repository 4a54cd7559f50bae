package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridepulse/internal/shared/testutil"
)

func TestHealthCheckHealthy(t *testing.T) {
	path := writeFixture(t,
		`"CNR100",2024-03-01,06:15:00,Completed,Auto,A,B,4.5,4.0,120.50,3.2,UPI,Not Applicable,Not Applicable`,
	)
	hs := NewHealthService("1.0.0", NewLoader(path, testutil.Logger(t), nil), testutil.Logger(t))

	status := hs.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	require.NotNil(t, status.Snapshot)
	assert.Equal(t, "loaded", status.Snapshot.Status)
	assert.Equal(t, 1, status.Snapshot.Rows)
	assert.NotNil(t, status.Snapshot.LoadedAt)
	assert.Contains(t, status.Runtime, "go_version")
}

func TestHealthCheckDegradedWhenSnapshotMissing(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), testutil.Logger(t), nil)
	hs := NewHealthService("1.0.0", loader, testutil.Logger(t))

	status := hs.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	require.NotNil(t, status.Snapshot)
	assert.Equal(t, "unavailable", status.Snapshot.Status)
	assert.NotEmpty(t, status.Snapshot.Message)
}
