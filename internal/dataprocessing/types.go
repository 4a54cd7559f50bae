package dataprocessing

import (
	"time"
)

// NotApplicable is the sentinel the source uses for fields that carry no
// value on a given row (payment method and cancellation reasons).
const NotApplicable = "Not Applicable"

// StatusCompleted is the booking status that marks a ride as completed.
// The status column is an open string set; this is the only value the
// pipeline gives special meaning to.
const StatusCompleted = "Completed"

// TimeRange is a bucket of the 24-hour clock. The four buckets partition
// [0,23] with no gap and no overlap.
type TimeRange string

const (
	Morning   TimeRange = "Morning"   // hours 5-12
	Afternoon TimeRange = "Afternoon" // hours 13-17
	Evening   TimeRange = "Evening"   // hours 18-23
	LateNight TimeRange = "Late Night" // hours 0-4
)

// TimeRanges lists the buckets in clock order starting from the morning.
// Aggregations use this as the fixed domain for dense grids.
var TimeRanges = []TimeRange{Morning, Afternoon, Evening, LateNight}

// TimeRangeOf maps an hour (0-23) to its bucket.
func TimeRangeOf(hour int) TimeRange {
	switch {
	case hour >= 5 && hour <= 12:
		return Morning
	case hour >= 13 && hour <= 17:
		return Afternoon
	case hour >= 18 && hour <= 23:
		return Evening
	default:
		return LateNight
	}
}

// Booking represents a single ride request from the source snapshot.
// Pointer fields are nil when the source value was absent or unparseable;
// ratings and booking value are only populated on completed rides.
type Booking struct {
	ID             string     `json:"booking_id"`
	Date           *time.Time `json:"date"`
	Time           *time.Time `json:"time"`
	Status         string     `json:"booking_status"`
	VehicleType    string     `json:"vehicle_type"`
	PickupLocation string     `json:"pickup_location"`
	DropLocation   string     `json:"drop_location"`
	DriverRating   *float64   `json:"driver_rating"`
	CustomerRating *float64   `json:"customer_rating"`
	BookingValue   *float64   `json:"booking_value"`
	RideDistance   *float64   `json:"ride_distance"`
	PaymentMethod  string     `json:"payment_method"`

	DriverCancellationReason   string `json:"driver_cancellation_reason"`
	CustomerCancellationReason string `json:"customer_cancellation_reason"`

	// Derived fields, populated by Derive. Nil inputs propagate as nil.
	DayName   *string   `json:"day_name"`
	MonthName *string   `json:"month_name"`
	Hour      *int      `json:"hour"`
	TimeRange TimeRange `json:"time_range,omitempty"`

	IsCompleted bool `json:"is_completed"`
}

// HasDate reports whether the row carries a parseable date.
func (b Booking) HasDate() bool {
	return b.Date != nil
}

// Weekdays lists day names in calendar order. Grouped counts over weekdays
// follow this order, not count order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Months lists month names in calendar order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
