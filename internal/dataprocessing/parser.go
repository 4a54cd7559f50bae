package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing the Date column. The snapshot
// is expected to use ISO dates; the slash forms cover re-exports from
// spreadsheet tools.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// timeLayout matches the HH:MM:SS Time column.
const timeLayout = "15:04:05"

// ParseFile reads a booking snapshot CSV and returns the normalized rows.
// Malformed date/time cells are nulled, never dropped: every data row in the
// file yields exactly one Booking so counts stay consistent downstream.
// An unreadable file is the only fatal condition.
func ParseFile(filePath string) ([]Booking, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	bookings, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", filePath, err)
	}
	return bookings, nil
}

// Parse reads booking rows from CSV content. The header row is required;
// column order is resolved by name so re-exported files with shuffled
// columns still load.
func Parse(r io.Reader) ([]Booking, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	// Strip UTF-8 BOM left behind by spreadsheet exports
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("snapshot has no header row")
	}

	columns, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	bookings := make([]Booking, 0, len(records)-1)
	badDates, badTimes := 0, 0

	for _, record := range records[1:] {
		b := parseRow(record, columns)
		if b.ID == "" {
			continue
		}
		if b.Date == nil {
			badDates++
		}
		if b.Time == nil {
			badTimes++
		}
		bookings = append(bookings, b)
	}

	slog.Info("snapshot parsed",
		slog.Int("rows", len(bookings)),
		slog.Int("null_dates", badDates),
		slog.Int("null_times", badTimes))

	return bookings, nil
}

// columnIndices holds the resolved position of each source column, -1 when
// the column is absent.
type columnIndices struct {
	id             int
	date           int
	clock          int
	status         int
	vehicleType    int
	pickup         int
	drop           int
	driverRating   int
	customerRating int
	bookingValue   int
	rideDistance   int
	paymentMethod  int
	driverReason   int
	customerReason int
}

// resolveColumns maps header names to indices. The canonical names are
// matched first, then a lowercase fallback for files that went through a
// tool that re-cased the header.
func resolveColumns(header []string) (columnIndices, error) {
	cols := columnIndices{
		id: -1, date: -1, clock: -1, status: -1, vehicleType: -1,
		pickup: -1, drop: -1, driverRating: -1, customerRating: -1,
		bookingValue: -1, rideDistance: -1, paymentMethod: -1,
		driverReason: -1, customerReason: -1,
	}

	for i, col := range header {
		clean := strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF"))
		switch clean {
		case "Booking ID":
			cols.id = i
		case "Date":
			cols.date = i
		case "Time":
			cols.clock = i
		case "Booking Status":
			cols.status = i
		case "Vehicle Type":
			cols.vehicleType = i
		case "Pickup Location":
			cols.pickup = i
		case "Drop Location":
			cols.drop = i
		case "Driver Ratings":
			cols.driverRating = i
		case "Customer Rating":
			cols.customerRating = i
		case "Booking Value":
			cols.bookingValue = i
		case "Ride Distance":
			cols.rideDistance = i
		case "Payment Method":
			cols.paymentMethod = i
		case "Driver Cancellation Reason":
			cols.driverReason = i
		case "Reason for cancelling by Customer":
			cols.customerReason = i
		default:
			switch strings.ToLower(clean) {
			case "booking id", "booking_id":
				cols.id = i
			case "date":
				cols.date = i
			case "time":
				cols.clock = i
			case "booking status", "booking_status":
				cols.status = i
			case "vehicle type", "vehicle_type":
				cols.vehicleType = i
			case "pickup location", "pickup_location":
				cols.pickup = i
			case "drop location", "drop_location":
				cols.drop = i
			case "driver ratings", "driver_ratings", "driver rating":
				cols.driverRating = i
			case "customer rating", "customer_rating":
				cols.customerRating = i
			case "booking value", "booking_value":
				cols.bookingValue = i
			case "ride distance", "ride_distance":
				cols.rideDistance = i
			case "payment method", "payment_method":
				cols.paymentMethod = i
			}
		}
	}

	missing := []string{}
	if cols.id == -1 {
		missing = append(missing, "Booking ID")
	}
	if cols.date == -1 {
		missing = append(missing, "Date")
	}
	if cols.clock == -1 {
		missing = append(missing, "Time")
	}
	if cols.status == -1 {
		missing = append(missing, "Booking Status")
	}
	if cols.vehicleType == -1 {
		missing = append(missing, "Vehicle Type")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("required columns not found: %v. Header: %v", missing, header)
	}

	return cols, nil
}

// parseRow normalizes one CSV record. Bad date/time text degrades to nil
// fields; the row itself always survives.
func parseRow(record []string, cols columnIndices) Booking {
	get := func(idx int) string {
		if idx >= 0 && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	b := Booking{
		ID:             get(cols.id),
		Status:         get(cols.status),
		VehicleType:    get(cols.vehicleType),
		PickupLocation: get(cols.pickup),
		DropLocation:   get(cols.drop),
		PaymentMethod:  get(cols.paymentMethod),

		DriverCancellationReason:   get(cols.driverReason),
		CustomerCancellationReason: get(cols.customerReason),
	}

	if raw := get(cols.date); raw != "" {
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, raw); err == nil {
				b.Date = &d
				break
			}
		}
	}

	if raw := get(cols.clock); raw != "" {
		if t, err := time.Parse(timeLayout, raw); err == nil {
			b.Time = &t
		}
	}

	b.DriverRating = parseOptionalFloat(get(cols.driverRating))
	b.CustomerRating = parseOptionalFloat(get(cols.customerRating))
	b.BookingValue = parseOptionalFloat(get(cols.bookingValue))
	b.RideDistance = parseOptionalFloat(get(cols.rideDistance))

	return b
}

// parseOptionalFloat parses a numeric cell, returning nil for empty text,
// the Not Applicable sentinel, or anything non-numeric.
func parseOptionalFloat(raw string) *float64 {
	if raw == "" || raw == NotApplicable {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
