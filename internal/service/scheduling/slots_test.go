package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/careops-api/internal/model"
)

// 2026-03-01 is a Sunday (day_of_week 0).
var sunday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)

func window(day int, start, end string) *model.AvailabilitySlot {
	return &model.AvailabilitySlot{
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 1, hour, min, 0, 0, time.Local)
}

func TestGenerateSlots(t *testing.T) {
	t.Run("walks window in duration steps, last slot ends at boundary", func(t *testing.T) {
		slots, err := GenerateSlots(sunday, 30, []*model.AvailabilitySlot{
			window(0, "09:00:00", "10:00:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(9, 0), at(9, 30)}, slots)
	})

	t.Run("slot exceeding window end is excluded", func(t *testing.T) {
		slots, err := GenerateSlots(sunday, 45, []*model.AvailabilitySlot{
			window(0, "09:00:00", "10:00:00"),
		})
		require.NoError(t, err)
		// 09:45+45 would end 10:30, past the window.
		assert.Equal(t, []time.Time{at(9, 0)}, slots)
	})

	t.Run("no window for weekday yields empty result", func(t *testing.T) {
		slots, err := GenerateSlots(sunday, 30, []*model.AvailabilitySlot{
			window(1, "09:00:00", "10:00:00"),
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("multiple windows are merged and sorted", func(t *testing.T) {
		slots, err := GenerateSlots(sunday, 30, []*model.AvailabilitySlot{
			window(0, "14:00:00", "15:00:00"),
			window(0, "09:00:00", "10:00:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(9, 0), at(9, 30), at(14, 0), at(14, 30)}, slots)
	})

	t.Run("overlapping windows deduplicate identical starts", func(t *testing.T) {
		slots, err := GenerateSlots(sunday, 30, []*model.AvailabilitySlot{
			window(0, "09:00:00", "10:00:00"),
			window(0, "09:00:00", "10:30:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(9, 0), at(9, 30), at(10, 0)}, slots)
	})

	t.Run("window shorter than duration yields nothing", func(t *testing.T) {
		slots, err := GenerateSlots(sunday, 60, []*model.AvailabilitySlot{
			window(0, "09:00:00", "09:30:00"),
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("accepts HH:MM times", func(t *testing.T) {
		slots, err := GenerateSlots(sunday, 30, []*model.AvailabilitySlot{
			window(0, "09:00", "10:00"),
		})
		require.NoError(t, err)
		assert.Len(t, slots, 2)
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		_, err := GenerateSlots(sunday, 30, []*model.AvailabilitySlot{
			window(0, "9am", "10:00:00"),
		})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := GenerateSlots(sunday, 0, nil)
		assert.Error(t, err)
	})
}

func booked(ts time.Time, status model.BookingStatus) *model.Booking {
	return &model.Booking{ScheduledAt: ts, Status: status}
}

func TestFilterConflicts(t *testing.T) {
	candidates := []time.Time{at(9, 0), at(9, 30)}

	t.Run("exact start match is removed", func(t *testing.T) {
		got := FilterConflicts(candidates, []*model.Booking{
			booked(at(9, 0), model.BookingStatusPending),
		}, 30, PolicyExactStart)
		assert.Equal(t, []time.Time{at(9, 30)}, got)
	})

	t.Run("partial overlap is not a conflict under exact-start policy", func(t *testing.T) {
		// A 60-minute booking at 09:00 runs through 09:30 but only the
		// exact 09:00 candidate is removed.
		got := FilterConflicts(candidates, []*model.Booking{
			booked(at(9, 0), model.BookingStatusConfirmed),
		}, 60, PolicyExactStart)
		assert.Equal(t, []time.Time{at(9, 30)}, got)
	})

	t.Run("interval policy removes overlapping candidates", func(t *testing.T) {
		got := FilterConflicts(candidates, []*model.Booking{
			booked(at(8, 45), model.BookingStatusConfirmed),
		}, 30, PolicyIntervalOverlap)
		// 08:45-09:15 overlaps 09:00-09:30 but not 09:30-10:00.
		assert.Equal(t, []time.Time{at(9, 30)}, got)
	})

	t.Run("cancelled bookings never block", func(t *testing.T) {
		got := FilterConflicts(candidates, []*model.Booking{
			booked(at(9, 0), model.BookingStatusCancelled),
		}, 30, PolicyExactStart)
		assert.Equal(t, candidates, got)
	})

	t.Run("no bookings returns candidates unchanged", func(t *testing.T) {
		got := FilterConflicts(candidates, nil, 30, PolicyExactStart)
		assert.Equal(t, candidates, got)
	})

	t.Run("order is preserved", func(t *testing.T) {
		many := []time.Time{at(9, 0), at(9, 30), at(10, 0), at(10, 30)}
		got := FilterConflicts(many, []*model.Booking{
			booked(at(9, 30), model.BookingStatusPending),
			booked(at(10, 30), model.BookingStatusPending),
		}, 30, PolicyExactStart)
		assert.Equal(t, []time.Time{at(9, 0), at(10, 0)}, got)
	})
}
