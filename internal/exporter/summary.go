package exporter

import (
	"context"
	"fmt"
	"strconv"

	"ridepulse/internal/analytics"
	"ridepulse/internal/services"
)

// Summary bundles every dashboard view for a single filter, ready to be
// rendered into CSV tables or an Excel workbook.
type Summary struct {
	Overview  *services.OverviewView
	Temporal  *services.TemporalView
	Locations *services.LocationsView
	Quality   *services.QualityView
	Financial *services.FinancialView
}

// BuildSummary computes all five views over the filtered snapshot.
func BuildSummary(ctx context.Context, svc *services.DashboardService, f analytics.Filter) (*Summary, error) {
	s := &Summary{}
	var err error
	if s.Overview, err = svc.Overview(ctx, f); err != nil {
		return nil, fmt.Errorf("build overview: %w", err)
	}
	if s.Temporal, err = svc.Temporal(ctx, f); err != nil {
		return nil, fmt.Errorf("build temporal: %w", err)
	}
	if s.Locations, err = svc.Locations(ctx, f); err != nil {
		return nil, fmt.Errorf("build locations: %w", err)
	}
	if s.Quality, err = svc.Quality(ctx, f); err != nil {
		return nil, fmt.Errorf("build quality: %w", err)
	}
	if s.Financial, err = svc.Financial(ctx, f); err != nil {
		return nil, fmt.Errorf("build financial: %w", err)
	}
	return s, nil
}

// Table is one named aggregate table with a header row.
type Table struct {
	Name    string
	Headers []string
	Records [][]string
}

// Tables flattens the summary into the headline tables, in report order.
func (s *Summary) Tables() []Table {
	return []Table{
		{
			Name:    "overview",
			Headers: []string{"metric", "value"},
			Records: [][]string{
				{"total_bookings", strconv.Itoa(s.Overview.TotalBookings)},
				{"completed_bookings", strconv.Itoa(s.Overview.CompletedBookings)},
				{"completion_rate", formatFloat(s.Overview.CompletionRate)},
			},
		},
		categoryTable("status_breakdown", s.Overview.StatusBreakdown),
		categoryTable("bookings_by_time_range", s.Overview.BookingsByTimeRange),
		hourTable("bookings_by_hour", s.Temporal.BookingsByHour),
		rateTable("completion_rate_by_hour", s.Temporal.CompletionRateByHour),
		categoryTable("bookings_by_weekday", s.Temporal.BookingsByWeekday),
		categoryTable("bookings_by_month", s.Temporal.BookingsByMonth),
		categoryTable("top_pickup_locations", s.Locations.TopPickupLocations),
		categoryTable("top_drop_locations", s.Locations.TopDropLocations),
		categoryTable("bookings_by_vehicle_type", s.Locations.BookingsByVehicleType),
		summaryTable("driver_rating", s.Quality.DriverRating),
		summaryTable("customer_rating", s.Quality.CustomerRating),
		categoryTable("driver_cancellations", s.Quality.DriverCancellations),
		categoryTable("customer_cancellations", s.Quality.CustomerCancellations),
		summaryTable("booking_value", s.Financial.BookingValue),
		summaryTable("ride_distance", s.Financial.RideDistance),
		categoryTable("payment_methods", s.Financial.PaymentMethods),
		statTable("revenue_by_vehicle_type", s.Financial.RevenueByVehicleType),
	}
}

func categoryTable(name string, counts []analytics.CategoryCount) Table {
	t := Table{Name: name, Headers: []string{"category", "count"}}
	for _, c := range counts {
		t.Records = append(t.Records, []string{c.Category, strconv.Itoa(c.Count)})
	}
	return t
}

func hourTable(name string, counts []analytics.HourCount) Table {
	t := Table{Name: name, Headers: []string{"hour", "count"}}
	for _, c := range counts {
		t.Records = append(t.Records, []string{strconv.Itoa(c.Hour), strconv.Itoa(c.Count)})
	}
	return t
}

func rateTable(name string, points []analytics.RatePoint) Table {
	t := Table{Name: name, Headers: []string{"hour", "completed", "total", "rate"}}
	for _, p := range points {
		t.Records = append(t.Records, []string{
			strconv.Itoa(p.Hour),
			strconv.Itoa(p.Completed),
			strconv.Itoa(p.Total),
			formatFloat(p.Rate),
		})
	}
	return t
}

func summaryTable(name string, s analytics.NumericSummary) Table {
	return Table{
		Name:    name,
		Headers: []string{"count", "mean", "min", "q1", "median", "q3", "max"},
		Records: [][]string{{
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Min),
			formatFloat(s.Q1),
			formatFloat(s.Median),
			formatFloat(s.Q3),
			formatFloat(s.Max),
		}},
	}
}

func statTable(name string, stats []analytics.CategoryStat) Table {
	t := Table{Name: name, Headers: []string{"category", "count", "mean", "sum"}}
	for _, s := range stats {
		t.Records = append(t.Records, []string{
			s.Category,
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Sum),
		})
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
