package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ridepulse/internal/analytics"
	"ridepulse/internal/services"
	"ridepulse/internal/shared/testutil"
)

const fixtureHeader = "Booking ID,Date,Time,Booking Status,Vehicle Type,Pickup Location,Drop Location,Driver Ratings,Customer Rating,Booking Value,Ride Distance,Payment Method,Driver Cancellation Reason,Reason for cancelling by Customer"

func newSummary(t *testing.T) *Summary {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.csv")
	content := fixtureHeader + "\n" +
		`"CNR1",2024-03-01,06:10:00,Completed,Auto,Hub North,Hub South,4.5,4.2,100.00,2.0,UPI,Not Applicable,Not Applicable` + "\n" +
		`"CNR2",2024-03-01,20:40:00,Cancelled by Driver,Bike,Hub West,Hub East,,,,,,Customer Demand,Not Applicable` + "\n" +
		`"CNR3",2024-03-02,12:00:00,Completed,Auto,Hub South,Hub West,3.9,4.1,210.75,8.1,Cash,Not Applicable,Not Applicable` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	svc := services.NewDashboardService(
		services.NewLoader(path, testutil.Logger(t), nil), testutil.Logger(t))
	summary, err := BuildSummary(context.Background(), svc, analytics.Filter{})
	require.NoError(t, err)
	return summary
}

func TestTables(t *testing.T) {
	summary := newSummary(t)
	tables := summary.Tables()

	names := make(map[string]Table, len(tables))
	for _, tb := range tables {
		names[tb.Name] = tb
	}

	overview, ok := names["overview"]
	require.True(t, ok)
	assert.Equal(t, [][]string{
		{"total_bookings", "3"},
		{"completed_bookings", "2"},
		{"completion_rate", "66.67"},
	}, overview.Records)

	hours, ok := names["bookings_by_hour"]
	require.True(t, ok)
	assert.Len(t, hours.Records, 24, "hour table is dense")

	ranges, ok := names["bookings_by_time_range"]
	require.True(t, ok)
	assert.Len(t, ranges.Records, 4)
}

func TestWriteSummaryCSV(t *testing.T) {
	summary := newSummary(t)
	dir := t.TempDir()

	w := NewCSVWriter(dir, testutil.Logger(t))
	require.NoError(t, w.WriteSummary(summary))

	data, err := os.ReadFile(filepath.Join(dir, "overview.csv"))
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"metric", "value"}, records[0])
	assert.Equal(t, []string{"total_bookings", "3"}, records[1])

	// Every table should be a file.
	for _, table := range summary.Tables() {
		_, err := os.Stat(filepath.Join(dir, table.Name+".csv"))
		assert.NoError(t, err, table.Name)
	}
}

func TestWriteExcel(t *testing.T) {
	summary := newSummary(t)

	var buf bytes.Buffer
	require.NoError(t, summary.WriteExcel(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Overview", "Temporal", "Locations", "Quality", "Financial"},
		f.GetSheetList())

	title, err := f.GetCellValue("Overview", "A1")
	require.NoError(t, err)
	assert.Equal(t, "overview", title)
	metric, err := f.GetCellValue("Overview", "A3")
	require.NoError(t, err)
	assert.Equal(t, "total_bookings", metric)
}
