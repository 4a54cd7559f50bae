package analytics

import (
	"math"
	"sort"

	"ridepulse/internal/dataprocessing"
)

// CategoryCount is one (category, count) pair of a grouped count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// KeyFunc extracts the grouping key from a booking. The boolean is false
// when the row carries no value for the key (nil-derived fields) and the
// row is skipped.
type KeyFunc func(dataprocessing.Booking) (string, bool)

// Common grouping keys.
var (
	ByStatus        KeyFunc = func(b dataprocessing.Booking) (string, bool) { return b.Status, b.Status != "" }
	ByVehicleType   KeyFunc = func(b dataprocessing.Booking) (string, bool) { return b.VehicleType, b.VehicleType != "" }
	ByPaymentMethod KeyFunc = func(b dataprocessing.Booking) (string, bool) {
		return b.PaymentMethod, b.PaymentMethod != "" && b.PaymentMethod != dataprocessing.NotApplicable
	}
	ByPickupLocation KeyFunc = func(b dataprocessing.Booking) (string, bool) { return b.PickupLocation, b.PickupLocation != "" }
	ByDropLocation   KeyFunc = func(b dataprocessing.Booking) (string, bool) { return b.DropLocation, b.DropLocation != "" }
	ByDayName        KeyFunc = func(b dataprocessing.Booking) (string, bool) {
		if b.DayName == nil {
			return "", false
		}
		return *b.DayName, true
	}
	ByMonthName KeyFunc = func(b dataprocessing.Booking) (string, bool) {
		if b.MonthName == nil {
			return "", false
		}
		return *b.MonthName, true
	}
	ByTimeRange KeyFunc = func(b dataprocessing.Booking) (string, bool) {
		return string(b.TimeRange), b.TimeRange != ""
	}
	ByDriverCancellation KeyFunc = func(b dataprocessing.Booking) (string, bool) {
		r := b.DriverCancellationReason
		return r, r != "" && r != dataprocessing.NotApplicable
	}
	ByCustomerCancellation KeyFunc = func(b dataprocessing.Booking) (string, bool) {
		r := b.CustomerCancellationReason
		return r, r != "" && r != dataprocessing.NotApplicable
	}
)

// CountBy groups rows by the key and returns (category, count) pairs in
// stable first-occurrence order.
func CountBy(rows []dataprocessing.Booking, key KeyFunc) []CategoryCount {
	counts := make(map[string]int)
	order := []string{}
	for _, b := range rows {
		k, ok := key(b)
		if !ok {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, k := range order {
		out = append(out, CategoryCount{Category: k, Count: counts[k]})
	}
	return out
}

// CountByDomain groups rows by the key over a fixed domain. Every domain
// value appears in the result, zero-filled when unobserved, in domain
// order. Keys outside the domain are ignored.
func CountByDomain(rows []dataprocessing.Booking, key KeyFunc, domain []string) []CategoryCount {
	counts := make(map[string]int, len(domain))
	for _, d := range domain {
		counts[d] = 0
	}
	for _, b := range rows {
		k, ok := key(b)
		if !ok {
			continue
		}
		if _, inDomain := counts[k]; inDomain {
			counts[k]++
		}
	}

	out := make([]CategoryCount, 0, len(domain))
	for _, d := range domain {
		out = append(out, CategoryCount{Category: d, Count: counts[d]})
	}
	return out
}

// TopN ranks categories by descending count and truncates to n. Ties are
// broken by ascending category label so repeated calls are deterministic.
func TopN(rows []dataprocessing.Booking, key KeyFunc, n int) []CategoryCount {
	counts := CountBy(rows, key)
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// HourCount is one hour's booking count.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// CountByHour returns a dense 24-element series of bookings per hour.
// Rows with a nil hour are skipped.
func CountByHour(rows []dataprocessing.Booking) []HourCount {
	var counts [24]int
	for _, b := range rows {
		if b.Hour != nil {
			counts[*b.Hour]++
		}
	}
	out := make([]HourCount, 24)
	for h := 0; h < 24; h++ {
		out[h] = HourCount{Hour: h, Count: counts[h]}
	}
	return out
}

// RatePoint is one bucket of a completion-rate series.
type RatePoint struct {
	Hour      int     `json:"hour"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
}

// CompletionRateByHour returns a dense 24-bucket series of completion
// rates. Rate is completed/total in percent; a bucket with zero rows has
// rate 0, never NaN. Low-traffic hours (3 AM) routinely hit the zero
// denominator.
func CompletionRateByHour(rows []dataprocessing.Booking) []RatePoint {
	var completed, total [24]int
	for _, b := range rows {
		if b.Hour == nil {
			continue
		}
		total[*b.Hour]++
		if b.IsCompleted {
			completed[*b.Hour]++
		}
	}

	out := make([]RatePoint, 24)
	for h := 0; h < 24; h++ {
		out[h] = RatePoint{
			Hour:      h,
			Completed: completed[h],
			Total:     total[h],
			Rate:      Rate(completed[h], total[h]),
		}
	}
	return out
}

// Rate computes part/total as a percentage, defined as 0 when total is 0.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ValueFunc extracts a numeric field from a booking, reporting false when
// the field is nil on that row.
type ValueFunc func(dataprocessing.Booking) (float64, bool)

// Common numeric fields.
var (
	DriverRatingValue ValueFunc = func(b dataprocessing.Booking) (float64, bool) {
		if b.DriverRating == nil {
			return 0, false
		}
		return *b.DriverRating, true
	}
	CustomerRatingValue ValueFunc = func(b dataprocessing.Booking) (float64, bool) {
		if b.CustomerRating == nil {
			return 0, false
		}
		return *b.CustomerRating, true
	}
	BookingValueValue ValueFunc = func(b dataprocessing.Booking) (float64, bool) {
		if b.BookingValue == nil {
			return 0, false
		}
		return *b.BookingValue, true
	}
	RideDistanceValue ValueFunc = func(b dataprocessing.Booking) (float64, bool) {
		if b.RideDistance == nil {
			return 0, false
		}
		return *b.RideDistance, true
	}
)

// NumericSummary describes the distribution of a numeric field over the
// rows where the field is non-nil.
type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summarize computes mean and quartile statistics over the field's non-nil
// values. An empty selection yields the zero summary.
func Summarize(rows []dataprocessing.Booking, value ValueFunc) NumericSummary {
	values := []float64{}
	sum := 0.0
	for _, b := range rows {
		if v, ok := value(b); ok {
			values = append(values, v)
			sum += v
		}
	}
	if len(values) == 0 {
		return NumericSummary{}
	}

	sort.Float64s(values)
	return NumericSummary{
		Count:  len(values),
		Mean:   sum / float64(len(values)),
		Min:    values[0],
		Q1:     quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q3:     quantile(values, 0.75),
		Max:    values[len(values)-1],
	}
}

// quantile interpolates the p-th quantile of sorted values.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// CategoryStat is a per-category count with the mean and sum of a numeric
// field over that category's non-nil values.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Sum      float64 `json:"sum"`
}

// GroupNumeric groups rows by key and folds the numeric field per group, in
// stable first-occurrence order. Rows where the field is nil contribute to
// neither count nor sum.
func GroupNumeric(rows []dataprocessing.Booking, key KeyFunc, value ValueFunc) []CategoryStat {
	type acc struct {
		count int
		sum   float64
	}
	groups := make(map[string]*acc)
	order := []string{}

	for _, b := range rows {
		k, ok := key(b)
		if !ok {
			continue
		}
		v, ok := value(b)
		if !ok {
			continue
		}
		g, seen := groups[k]
		if !seen {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		g.count++
		g.sum += v
	}

	out := make([]CategoryStat, 0, len(order))
	for _, k := range order {
		g := groups[k]
		mean := 0.0
		if g.count > 0 {
			mean = g.sum / float64(g.count)
		}
		out = append(out, CategoryStat{Category: k, Count: g.count, Mean: mean, Sum: g.sum})
	}
	return out
}

// CrossTab is a dense hour-by-status grid. Rows always covers all 24
// hours; Counts[i][j] is the number of bookings at Hours[i] with
// Statuses[j], zero-filled for unobserved combinations so a chart axis
// never loses hours between filter changes.
type CrossTab struct {
	Statuses []string `json:"statuses"`
	Hours    []int    `json:"hours"`
	Counts   [][]int  `json:"counts"`
}

// CrossTabHourStatus cross-tabulates hour against booking status. Statuses
// appear in first-occurrence order.
func CrossTabHourStatus(rows []dataprocessing.Booking) CrossTab {
	statusIdx := make(map[string]int)
	statuses := []string{}
	cells := make(map[[2]int]int)

	for _, b := range rows {
		if b.Hour == nil || b.Status == "" {
			continue
		}
		idx, seen := statusIdx[b.Status]
		if !seen {
			idx = len(statuses)
			statusIdx[b.Status] = idx
			statuses = append(statuses, b.Status)
		}
		cells[[2]int{*b.Hour, idx}]++
	}

	ct := CrossTab{
		Statuses: statuses,
		Hours:    make([]int, 24),
		Counts:   make([][]int, 24),
	}
	for h := 0; h < 24; h++ {
		ct.Hours[h] = h
		row := make([]int, len(statuses))
		for j := range statuses {
			row[j] = cells[[2]int{h, j}]
		}
		ct.Counts[h] = row
	}
	return ct
}

// ValueDistancePoint pairs booking value with ride distance for one
// completed ride, for the financial scatter view.
type ValueDistancePoint struct {
	BookingID string  `json:"booking_id"`
	Value     float64 `json:"value"`
	Distance  float64 `json:"distance"`
}

// ValueDistancePoints collects (value, distance) pairs from rows carrying
// both fields.
func ValueDistancePoints(rows []dataprocessing.Booking) []ValueDistancePoint {
	out := []ValueDistancePoint{}
	for _, b := range rows {
		if b.BookingValue == nil || b.RideDistance == nil {
			continue
		}
		out = append(out, ValueDistancePoint{
			BookingID: b.ID,
			Value:     *b.BookingValue,
			Distance:  *b.RideDistance,
		})
	}
	return out
}
