package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"ridepulse/internal/analytics"
	"ridepulse/internal/dataprocessing"
)

// DashboardService assembles the aggregate views served by the dashboard
// API. All views are computed on demand from the cached snapshot.
type DashboardService struct {
	loader *Loader
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service with a specific logger
func NewDashboardService(loader *Loader, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		loader: loader,
		logger: logger.With("component", "dashboard_service"),
	}
}

// OverviewView is the headline KPI panel.
type OverviewView struct {
	TotalBookings       int                       `json:"total_bookings"`
	CompletedBookings   int                       `json:"completed_bookings"`
	CompletionRate      float64                   `json:"completion_rate"`
	StatusBreakdown     []analytics.CategoryCount `json:"status_breakdown"`
	TopVehicleTypes     []analytics.CategoryCount `json:"top_vehicle_types"`
	BookingsByTimeRange []analytics.CategoryCount `json:"bookings_by_time_range"`
}

// TemporalView covers the time-based charts.
type TemporalView struct {
	BookingsByHour       []analytics.HourCount     `json:"bookings_by_hour"`
	BookingsByWeekday    []analytics.CategoryCount `json:"bookings_by_weekday"`
	BookingsByMonth      []analytics.CategoryCount `json:"bookings_by_month"`
	CompletionRateByHour []analytics.RatePoint     `json:"completion_rate_by_hour"`
	HourStatusMatrix     analytics.CrossTab        `json:"hour_status_matrix"`
}

// LocationsView covers pickup/drop hotspots.
type LocationsView struct {
	TopPickupLocations    []analytics.CategoryCount `json:"top_pickup_locations"`
	TopDropLocations      []analytics.CategoryCount `json:"top_drop_locations"`
	BookingsByVehicleType []analytics.CategoryCount `json:"bookings_by_vehicle_type"`
}

// QualityView covers ratings and cancellation reasons. Rating summaries
// are computed over completed rides only.
type QualityView struct {
	DriverRating              analytics.NumericSummary  `json:"driver_rating"`
	CustomerRating            analytics.NumericSummary  `json:"customer_rating"`
	DriverRatingByVehicleType []analytics.CategoryStat  `json:"driver_rating_by_vehicle_type"`
	DriverCancellations       []analytics.CategoryCount `json:"driver_cancellations"`
	CustomerCancellations     []analytics.CategoryCount `json:"customer_cancellations"`
}

// FinancialView covers booking value, distance and payment charts.
type FinancialView struct {
	BookingValue         analytics.NumericSummary       `json:"booking_value"`
	RideDistance         analytics.NumericSummary       `json:"ride_distance"`
	PaymentMethods       []analytics.CategoryCount      `json:"payment_methods"`
	RevenueByVehicleType []analytics.CategoryStat       `json:"revenue_by_vehicle_type"`
	ValueDistance        []analytics.ValueDistancePoint `json:"value_distance"`
}

// MetaView describes the dataset for filter widgets.
type MetaView struct {
	SnapshotID    string    `json:"snapshot_id"`
	LoadedAt      time.Time `json:"loaded_at"`
	TotalBookings int       `json:"total_bookings"`
	FirstDate     *string   `json:"first_date"`
	LastDate      *string   `json:"last_date"`
	VehicleTypes  []string  `json:"vehicle_types"`
}

const dateFormat = "2006-01-02"

// Overview builds the headline view for the filtered rows.
func (s *DashboardService) Overview(ctx context.Context, f analytics.Filter) (*OverviewView, error) {
	rows, err := s.filteredRows(ctx, f)
	if err != nil {
		return nil, err
	}

	completed := dataprocessing.Completed(rows)
	return &OverviewView{
		TotalBookings:       len(rows),
		CompletedBookings:   len(completed),
		CompletionRate:      analytics.Rate(len(completed), len(rows)),
		StatusBreakdown:     analytics.CountBy(rows, analytics.ByStatus),
		TopVehicleTypes:     analytics.TopN(rows, analytics.ByVehicleType, 5),
		BookingsByTimeRange: analytics.CountByDomain(rows, analytics.ByTimeRange, timeRangeLabels()),
	}, nil
}

// Temporal builds the time-based view for the filtered rows.
func (s *DashboardService) Temporal(ctx context.Context, f analytics.Filter) (*TemporalView, error) {
	rows, err := s.filteredRows(ctx, f)
	if err != nil {
		return nil, err
	}

	return &TemporalView{
		BookingsByHour:       analytics.CountByHour(rows),
		BookingsByWeekday:    analytics.CountByDomain(rows, analytics.ByDayName, dataprocessing.Weekdays),
		BookingsByMonth:      analytics.CountByDomain(rows, analytics.ByMonthName, dataprocessing.Months),
		CompletionRateByHour: analytics.CompletionRateByHour(rows),
		HourStatusMatrix:     analytics.CrossTabHourStatus(rows),
	}, nil
}

// Locations builds the location view for the filtered rows.
func (s *DashboardService) Locations(ctx context.Context, f analytics.Filter) (*LocationsView, error) {
	rows, err := s.filteredRows(ctx, f)
	if err != nil {
		return nil, err
	}

	return &LocationsView{
		TopPickupLocations:    analytics.TopN(rows, analytics.ByPickupLocation, 10),
		TopDropLocations:      analytics.TopN(rows, analytics.ByDropLocation, 10),
		BookingsByVehicleType: analytics.CountBy(rows, analytics.ByVehicleType),
	}, nil
}

// Quality builds the ratings and cancellations view for the filtered rows.
func (s *DashboardService) Quality(ctx context.Context, f analytics.Filter) (*QualityView, error) {
	rows, err := s.filteredRows(ctx, f)
	if err != nil {
		return nil, err
	}

	completed := dataprocessing.Completed(rows)
	return &QualityView{
		DriverRating:              analytics.Summarize(completed, analytics.DriverRatingValue),
		CustomerRating:            analytics.Summarize(completed, analytics.CustomerRatingValue),
		DriverRatingByVehicleType: analytics.GroupNumeric(completed, analytics.ByVehicleType, analytics.DriverRatingValue),
		DriverCancellations:       analytics.CountBy(rows, analytics.ByDriverCancellation),
		CustomerCancellations:     analytics.CountBy(rows, analytics.ByCustomerCancellation),
	}, nil
}

// Financial builds the revenue and distance view for the filtered rows.
func (s *DashboardService) Financial(ctx context.Context, f analytics.Filter) (*FinancialView, error) {
	rows, err := s.filteredRows(ctx, f)
	if err != nil {
		return nil, err
	}

	return &FinancialView{
		BookingValue:         analytics.Summarize(rows, analytics.BookingValueValue),
		RideDistance:         analytics.Summarize(rows, analytics.RideDistanceValue),
		PaymentMethods:       analytics.CountBy(rows, analytics.ByPaymentMethod),
		RevenueByVehicleType: analytics.GroupNumeric(rows, analytics.ByVehicleType, analytics.BookingValueValue),
		ValueDistance:        analytics.ValueDistancePoints(rows),
	}, nil
}

// Meta describes the unfiltered dataset: date bounds, the distinct vehicle
// types, and snapshot identity.
func (s *DashboardService) Meta(ctx context.Context) (*MetaView, error) {
	snap, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	meta := &MetaView{
		SnapshotID:    snap.ID,
		LoadedAt:      snap.LoadedAt,
		TotalBookings: len(snap.Rows),
	}

	var first, last *time.Time
	seen := make(map[string]struct{})
	for i := range snap.Rows {
		b := &snap.Rows[i]
		if b.Date != nil {
			if first == nil || b.Date.Before(*first) {
				first = b.Date
			}
			if last == nil || b.Date.After(*last) {
				last = b.Date
			}
		}
		if b.VehicleType != "" {
			if _, ok := seen[b.VehicleType]; !ok {
				seen[b.VehicleType] = struct{}{}
				meta.VehicleTypes = append(meta.VehicleTypes, b.VehicleType)
			}
		}
	}
	sort.Strings(meta.VehicleTypes)
	if first != nil {
		v := first.Format(dateFormat)
		meta.FirstDate = &v
	}
	if last != nil {
		v := last.Format(dateFormat)
		meta.LastDate = &v
	}
	return meta, nil
}

// filteredRows loads the snapshot and applies the filter.
func (s *DashboardService) filteredRows(ctx context.Context, f analytics.Filter) ([]dataprocessing.Booking, error) {
	snap, err := s.loader.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := analytics.Apply(snap.Rows, f)
	if err != nil {
		return nil, fmt.Errorf("apply filter: %w", err)
	}
	return rows, nil
}

func timeRangeLabels() []string {
	labels := make([]string, len(dataprocessing.TimeRanges))
	for i, tr := range dataprocessing.TimeRanges {
		labels[i] = string(tr)
	}
	return labels
}
