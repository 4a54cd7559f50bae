package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridepulse/internal/dataprocessing"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestApplyDateRange(t *testing.T) {
	rows := []dataprocessing.Booking{
		{ID: "before", Date: day(2024, 3, 9)},
		{ID: "start-edge", Date: day(2024, 3, 10)},
		{ID: "inside", Date: day(2024, 3, 15)},
		{ID: "end-edge", Date: day(2024, 3, 20)},
		{ID: "after", Date: day(2024, 3, 21)},
		{ID: "no-date", Date: nil},
	}

	filtered, err := Apply(rows, Filter{
		Start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(filtered))
	for _, b := range filtered {
		ids = append(ids, b.ID)
	}
	// both edges inclusive, nil dates excluded
	assert.Equal(t, []string{"start-edge", "inside", "end-edge"}, ids)
}

func TestApplyVehicleTypes(t *testing.T) {
	rows := []dataprocessing.Booking{
		{ID: "a", VehicleType: "Auto"},
		{ID: "b", VehicleType: "Bike"},
		{ID: "c", VehicleType: "Auto"},
	}

	t.Run("membership", func(t *testing.T) {
		filtered, err := Apply(rows, Filter{VehicleTypes: []string{"Auto"}})
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, "a", filtered[0].ID)
		assert.Equal(t, "c", filtered[1].ID)
	})

	t.Run("nil set accepts all", func(t *testing.T) {
		filtered, err := Apply(rows, Filter{})
		require.NoError(t, err)
		assert.Len(t, filtered, 3)
	})

	t.Run("empty set selects nothing", func(t *testing.T) {
		filtered, err := Apply(rows, Filter{VehicleTypes: []string{}})
		require.NoError(t, err)
		assert.Empty(t, filtered)
	})
}

func TestApplyInvalidRange(t *testing.T) {
	_, err := Apply(nil, Filter{
		Start: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rows := []dataprocessing.Booking{
		{ID: "a", VehicleType: "Auto", Date: day(2024, 3, 10)},
		{ID: "b", VehicleType: "Bike", Date: day(2024, 3, 11)},
	}

	filtered, err := Apply(rows, Filter{VehicleTypes: []string{"Auto"}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	filtered[0].ID = "mutated"
	assert.Equal(t, "a", rows[0].ID)
	assert.Len(t, rows, 2)
}

func TestFilterValidate(t *testing.T) {
	valid := Filter{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate(), "single-day range is valid")

	assert.NoError(t, Filter{}.Validate(), "zero filter is valid")
}
