package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "Booking ID,Date,Time,Booking Status,Vehicle Type,Pickup Location,Drop Location,Driver Ratings,Customer Rating,Booking Value,Ride Distance,Payment Method,Driver Cancellation Reason,Reason for cancelling by Customer"

func TestParse(t *testing.T) {
	csvData := sampleHeader + "\n" +
		`CNR100,2024-03-18,09:15:00,Completed,Auto,Rohini,Saket,4.5,4.8,312.50,7.2,UPI,Not Applicable,Not Applicable
CNR101,2024-03-18,23:40:00,Cancelled by Driver,Bike,Dwarka,Karol Bagh,,,,,Not Applicable,Personal & Car related issue,Not Applicable
CNR102,2024-03-19,00:05:00,No Driver Found,Auto,Lajpat Nagar,Okhla,,,,,Not Applicable,Not Applicable,Not Applicable`

	bookings, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, bookings, 3)

	first := bookings[0]
	assert.Equal(t, "CNR100", first.ID)
	require.NotNil(t, first.Date)
	assert.Equal(t, "2024-03-18", first.Date.Format("2006-01-02"))
	require.NotNil(t, first.Time)
	assert.Equal(t, 9, first.Time.Hour())
	assert.Equal(t, "Completed", first.Status)
	assert.Equal(t, "Auto", first.VehicleType)
	require.NotNil(t, first.DriverRating)
	assert.InDelta(t, 4.5, *first.DriverRating, 0.001)
	require.NotNil(t, first.BookingValue)
	assert.InDelta(t, 312.50, *first.BookingValue, 0.001)
	assert.Equal(t, "UPI", first.PaymentMethod)

	cancelled := bookings[1]
	assert.Nil(t, cancelled.DriverRating)
	assert.Nil(t, cancelled.BookingValue)
	assert.Equal(t, "Personal & Car related issue", cancelled.DriverCancellationReason)
}

func TestParseMalformedDateAndTime(t *testing.T) {
	csvData := sampleHeader + "\n" +
		`CNR200,not-a-date,08:00:00,Completed,Auto,A,B,4.0,4.0,100,5,Cash,Not Applicable,Not Applicable
CNR201,2024-04-01,25:99:00,Completed,Auto,A,B,4.0,4.0,100,5,Cash,Not Applicable,Not Applicable`

	bookings, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, bookings, 2, "malformed rows must be retained, not dropped")

	assert.Nil(t, bookings[0].Date)
	assert.NotNil(t, bookings[0].Time)
	assert.NotNil(t, bookings[1].Date)
	assert.Nil(t, bookings[1].Time)
}

func TestParseAlternateDateLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"iso", "2024-03-18"},
		{"us slash", "03/18/2024"},
		{"iso slash", "2024/03/18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csvData := sampleHeader + "\n" +
				"CNR1," + tt.raw + ",10:00:00,Completed,Auto,A,B,4,4,100,5,Cash,Not Applicable,Not Applicable"
			bookings, err := Parse(strings.NewReader(csvData))
			require.NoError(t, err)
			require.Len(t, bookings, 1)
			require.NotNil(t, bookings[0].Date)
			assert.Equal(t, "2024-03-18", bookings[0].Date.Format("2006-01-02"))
		})
	}
}

func TestParseWithBOM(t *testing.T) {
	csvData := "\xEF\xBB\xBF" + sampleHeader + "\n" +
		"CNR1,2024-03-18,10:00:00,Completed,Auto,A,B,4,4,100,5,Cash,Not Applicable,Not Applicable"

	bookings, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "CNR1", bookings[0].ID)
}

func TestParseMissingRequiredColumns(t *testing.T) {
	csvData := "Booking ID,Date\nCNR1,2024-03-18"

	_, err := Parse(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required columns not found")
}

func TestParseShuffledColumns(t *testing.T) {
	csvData := "Vehicle Type,Booking ID,Booking Status,Time,Date,Pickup Location,Drop Location\n" +
		"Bike,CNR9,Completed,18:30:00,2024-05-02,X,Y"

	bookings, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "CNR9", bookings[0].ID)
	assert.Equal(t, "Bike", bookings[0].VehicleType)
	require.NotNil(t, bookings[0].Time)
	assert.Equal(t, 18, bookings[0].Time.Hour())
}

func TestParseFile(t *testing.T) {
	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})

	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bookings.csv")
		csvData := sampleHeader + "\n" +
			"CNR1,2024-03-18,10:00:00,Completed,Auto,A,B,4,4,100,5,Cash,Not Applicable,Not Applicable\n"
		require.NoError(t, os.WriteFile(path, []byte(csvData), 0644))

		bookings, err := ParseFile(path)
		require.NoError(t, err)
		assert.Len(t, bookings, 1)
	})
}
