package dataprocessing

// Derive populates the derived fields on every row: day name, month name,
// hour, time-range bucket, and the completion flag. It is pure in the sense
// that it never errors and nil inputs yield nil outputs; the slice is
// modified in place and returned for chaining.
func Derive(bookings []Booking) []Booking {
	for i := range bookings {
		deriveRow(&bookings[i])
	}
	return bookings
}

func deriveRow(b *Booking) {
	b.IsCompleted = b.Status == StatusCompleted

	if b.Date != nil {
		day := b.Date.Weekday().String()
		month := b.Date.Month().String()
		b.DayName = &day
		b.MonthName = &month
	} else {
		b.DayName = nil
		b.MonthName = nil
	}

	if b.Time != nil {
		hour := b.Time.Hour()
		b.Hour = &hour
		b.TimeRange = TimeRangeOf(hour)
	} else {
		b.Hour = nil
		b.TimeRange = ""
	}
}

// Completed returns the completed subset as a fresh slice. The subset is a
// read-only derivation; callers never mutate it back into the base set.
func Completed(bookings []Booking) []Booking {
	subset := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsCompleted {
			subset = append(subset, b)
		}
	}
	return subset
}
