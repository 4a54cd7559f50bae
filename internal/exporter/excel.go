package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// sheetLayout maps a workbook sheet to the tables stacked on it.
type sheetLayout struct {
	sheet  string
	tables []string
}

var workbookLayout = []sheetLayout{
	{"Overview", []string{"overview", "status_breakdown", "bookings_by_time_range"}},
	{"Temporal", []string{"bookings_by_hour", "completion_rate_by_hour", "bookings_by_weekday", "bookings_by_month"}},
	{"Locations", []string{"top_pickup_locations", "top_drop_locations", "bookings_by_vehicle_type"}},
	{"Quality", []string{"driver_rating", "customer_rating", "driver_cancellations", "customer_cancellations"}},
	{"Financial", []string{"booking_value", "ride_distance", "payment_methods", "revenue_by_vehicle_type"}},
}

// WriteExcel renders the summary as a workbook with one sheet per view.
// Tables are stacked vertically with their name as a title row.
func (s *Summary) WriteExcel(w io.Writer) error {
	byName := make(map[string]Table)
	for _, t := range s.Tables() {
		byName[t.Name] = t
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, layout := range workbookLayout {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", layout.sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(layout.sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", layout.sheet, err)
			}
		}

		row := 1
		for _, name := range layout.tables {
			table, ok := byName[name]
			if !ok {
				continue
			}
			if err := writeTable(f, layout.sheet, &row, table); err != nil {
				return fmt.Errorf("write table %s: %w", name, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, row *int, table Table) error {
	if err := setRow(f, sheet, *row, []string{table.Name}); err != nil {
		return err
	}
	*row++
	if err := setRow(f, sheet, *row, table.Headers); err != nil {
		return err
	}
	*row++
	for _, record := range table.Records {
		if err := setRow(f, sheet, *row, record); err != nil {
			return err
		}
		*row++
	}
	// Blank separator row between tables.
	*row++
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
