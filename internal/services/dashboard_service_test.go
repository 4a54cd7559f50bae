package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridepulse/internal/analytics"
	"ridepulse/internal/shared/testutil"
)

// scenarioRows mirror a small but representative slice of the dataset:
// five bookings across two hours, three vehicle types, mixed outcomes.
var scenarioRows = []string{
	`"CNR1",2024-03-01,06:10:00,Completed,Auto,Hub North,Hub South,4.5,4.2,100.00,2.0,UPI,Not Applicable,Not Applicable`,
	`"CNR2",2024-03-01,06:40:00,Cancelled by Driver,Auto,Hub North,Hub East,,,,,,Customer Demand,Not Applicable`,
	`"CNR3",2024-03-02,20:05:00,Completed,Bike,Hub West,Hub South,4.0,4.8,55.25,5.5,Cash,Not Applicable,Not Applicable`,
	`"CNR4",2024-03-02,20:45:00,Cancelled by Customer,Mini,Hub East,Hub North,,,,,,Not Applicable,Driver asked to cancel`,
	`"CNR5",2024-03-03,12:00:00,Completed,Auto,Hub South,Hub West,3.9,4.1,210.75,8.1,UPI,Not Applicable,Not Applicable`,
}

func newTestService(t *testing.T, rows ...string) *DashboardService {
	t.Helper()
	path := writeFixture(t, rows...)
	return NewDashboardService(NewLoader(path, testutil.Logger(t), nil), testutil.Logger(t))
}

func TestOverview(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	view, err := svc.Overview(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 5, view.TotalBookings)
	assert.Equal(t, 3, view.CompletedBookings)
	assert.InDelta(t, 60.0, view.CompletionRate, 0.001)

	byVehicle := map[string]int{}
	for _, c := range view.TopVehicleTypes {
		byVehicle[c.Category] = c.Count
	}
	assert.Equal(t, 3, byVehicle["Auto"])

	require.Len(t, view.BookingsByTimeRange, 4)
	buckets := map[string]int{}
	for _, c := range view.BookingsByTimeRange {
		buckets[c.Category] = c.Count
	}
	assert.Equal(t, 3, buckets["Morning"], "hours 6, 6 and 12")
	assert.Equal(t, 2, buckets["Evening"])
	assert.Equal(t, 0, buckets["Late Night"])
}

func TestTemporal(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	view, err := svc.Temporal(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	require.Len(t, view.BookingsByHour, 24)
	assert.Equal(t, 2, view.BookingsByHour[6].Count)
	assert.Equal(t, 2, view.BookingsByHour[20].Count)
	assert.Equal(t, 0, view.BookingsByHour[3].Count)

	require.Len(t, view.CompletionRateByHour, 24)
	assert.InDelta(t, 50.0, view.CompletionRateByHour[6].Rate, 0.001)
	assert.InDelta(t, 50.0, view.CompletionRateByHour[20].Rate, 0.001)
	assert.InDelta(t, 0.0, view.CompletionRateByHour[3].Rate, 0.001)

	require.Len(t, view.BookingsByWeekday, 7)
	assert.Equal(t, "Monday", view.BookingsByWeekday[0].Category)
	require.Len(t, view.BookingsByMonth, 12)

	require.Len(t, view.HourStatusMatrix.Hours, 24)
}

func TestLocations(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	view, err := svc.Locations(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	require.NotEmpty(t, view.TopPickupLocations)
	assert.Equal(t, "Hub North", view.TopPickupLocations[0].Category)
	assert.Equal(t, 2, view.TopPickupLocations[0].Count)
	require.NotEmpty(t, view.TopDropLocations)
	assert.Equal(t, "Hub South", view.TopDropLocations[0].Category)
}

func TestQuality(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	view, err := svc.Quality(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 3, view.DriverRating.Count, "ratings come from completed rides only")
	assert.InDelta(t, 3.9, view.DriverRating.Min, 0.001)
	assert.InDelta(t, 4.5, view.DriverRating.Max, 0.001)

	require.Len(t, view.DriverCancellations, 1)
	assert.Equal(t, "Customer Demand", view.DriverCancellations[0].Category)
	require.Len(t, view.CustomerCancellations, 1)
	assert.Equal(t, "Driver asked to cancel", view.CustomerCancellations[0].Category)
}

func TestFinancial(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	view, err := svc.Financial(context.Background(), analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 3, view.BookingValue.Count)
	assert.InDelta(t, 55.25, view.BookingValue.Min, 0.001)
	assert.InDelta(t, 210.75, view.BookingValue.Max, 0.001)
	assert.Len(t, view.ValueDistance, 3)

	methods := map[string]int{}
	for _, c := range view.PaymentMethods {
		methods[c.Category] = c.Count
	}
	assert.Equal(t, 2, methods["UPI"])
	assert.Equal(t, 1, methods["Cash"])
}

func TestViewsWithDateFilter(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	f := analytics.Filter{
		Start: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	view, err := svc.Overview(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalBookings)
	assert.Equal(t, 1, view.CompletedBookings)
	assert.InDelta(t, 50.0, view.CompletionRate, 0.001)
}

func TestViewsWithInvalidRange(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	f := analytics.Filter{
		Start: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := svc.Overview(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, analytics.ErrInvalidRange)
}

func TestViewsWithEmptyVehicleSet(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	view, err := svc.Overview(context.Background(), analytics.Filter{VehicleTypes: []string{}})
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalBookings)
	assert.InDelta(t, 0.0, view.CompletionRate, 0.001, "zero denominator yields zero rate")
}

func TestMeta(t *testing.T) {
	svc := newTestService(t, scenarioRows...)

	meta, err := svc.Meta(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, meta.TotalBookings)
	assert.NotEmpty(t, meta.SnapshotID)
	require.NotNil(t, meta.FirstDate)
	require.NotNil(t, meta.LastDate)
	assert.Equal(t, "2024-03-01", *meta.FirstDate)
	assert.Equal(t, "2024-03-03", *meta.LastDate)
	assert.Equal(t, []string{"Auto", "Bike", "Mini"}, meta.VehicleTypes)
}

func TestMetaEmptyDataset(t *testing.T) {
	svc := newTestService(t)

	meta, err := svc.Meta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, meta.TotalBookings)
	assert.Nil(t, meta.FirstDate)
	assert.Nil(t, meta.LastDate)
	assert.Empty(t, meta.VehicleTypes)
}
