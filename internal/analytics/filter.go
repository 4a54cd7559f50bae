package analytics

import (
	"errors"
	"time"

	"ridepulse/internal/dataprocessing"
)

// ErrInvalidRange is returned when a filter's start date falls after its
// end date. Bounds are never silently swapped.
var ErrInvalidRange = errors.New("invalid date range: start after end")

// Filter selects a subset of the booking rows. The zero value selects
// everything.
//
// VehicleTypes is set membership: nil means no vehicle filtering, while an
// explicitly empty (non-nil) set selects nothing. The HTTP layer maps an
// absent query parameter to nil and an empty selection to the empty set,
// so "nothing selected" in a dashboard widget really shows nothing.
type Filter struct {
	Start time.Time
	End   time.Time

	VehicleTypes []string
}

// dateFiltered reports whether any date bound is set.
func (f Filter) dateFiltered() bool {
	return !f.Start.IsZero() || !f.End.IsZero()
}

// Validate checks the filter bounds.
func (f Filter) Validate() error {
	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
		return ErrInvalidRange
	}
	return nil
}

// Apply returns the rows matching the filter as a fresh slice. The date
// range is inclusive on both bounds; rows with a nil date are excluded from
// any date-filtered view. The input is never mutated.
func Apply(rows []dataprocessing.Booking, f Filter) ([]dataprocessing.Booking, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var accept map[string]bool
	if f.VehicleTypes != nil {
		accept = make(map[string]bool, len(f.VehicleTypes))
		for _, vt := range f.VehicleTypes {
			accept[vt] = true
		}
	}

	out := make([]dataprocessing.Booking, 0, len(rows))
	for _, b := range rows {
		if f.dateFiltered() {
			if b.Date == nil {
				continue
			}
			if !f.Start.IsZero() && b.Date.Before(f.Start) {
				continue
			}
			if !f.End.IsZero() && b.Date.After(f.End) {
				continue
			}
		}
		if accept != nil && !accept[b.VehicleType] {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
