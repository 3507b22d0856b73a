package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/careops/careops-api/internal/model"
)

// ConflictPolicy selects how candidate slots are matched against existing
// bookings.
type ConflictPolicy int

const (
	// PolicyExactStart drops a candidate only when its time of day exactly
	// equals an existing booking's time of day. A longer booking that merely
	// extends into a candidate is not a conflict under this policy.
	PolicyExactStart ConflictPolicy = iota
	// PolicyIntervalOverlap drops a candidate when its interval overlaps any
	// existing non-cancelled booking's interval, both sized by the service
	// duration.
	PolicyIntervalOverlap
)

const slotTimeLayout = "15:04:05"

// parseSlotTime accepts HH:MM:SS and falls back to HH:MM.
func parseSlotTime(s string) (time.Time, error) {
	t, err := time.Parse(slotTimeLayout, s)
	if err == nil {
		return t, nil
	}
	t, err2 := time.Parse("15:04", s)
	if err2 != nil {
		return time.Time{}, fmt.Errorf("invalid slot time %q: %w", s, err)
	}
	return t, nil
}

// GenerateSlots walks each weekly window that matches the target date's
// weekday in steps of the service duration and returns the candidate start
// times on that date, sorted with duplicates removed. Windows store
// day_of_week as 0=Sunday, which matches time.Weekday directly. A date with
// no matching window yields an empty result, not an error.
func GenerateSlots(date time.Time, durationMinutes int, templates []*model.AvailabilitySlot) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}

	day := int(date.Weekday())
	duration := time.Duration(durationMinutes) * time.Minute

	var candidates []time.Time
	for _, tpl := range templates {
		if tpl.DayOfWeek != day {
			continue
		}

		start, err := parseSlotTime(tpl.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := parseSlotTime(tpl.EndTime)
		if err != nil {
			return nil, err
		}

		cur := time.Date(date.Year(), date.Month(), date.Day(),
			start.Hour(), start.Minute(), start.Second(), 0, date.Location())
		windowEnd := time.Date(date.Year(), date.Month(), date.Day(),
			end.Hour(), end.Minute(), end.Second(), 0, date.Location())

		// The last slot may end exactly at the window boundary.
		for !cur.Add(duration).After(windowEnd) {
			candidates = append(candidates, cur)
			cur = cur.Add(duration)
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })

	// Overlapping windows may produce identical start times.
	deduped := candidates[:0]
	for i, c := range candidates {
		if i > 0 && c.Equal(candidates[i-1]) {
			continue
		}
		deduped = append(deduped, c)
	}
	return deduped, nil
}

// FilterConflicts removes candidates colliding with existing bookings,
// preserving order. Cancelled bookings never block a slot.
func FilterConflicts(candidates []time.Time, bookings []*model.Booking, durationMinutes int, policy ConflictPolicy) []time.Time {
	if len(bookings) == 0 {
		return candidates
	}

	duration := time.Duration(durationMinutes) * time.Minute

	available := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if !conflicts(c, bookings, duration, policy) {
			available = append(available, c)
		}
	}
	return available
}

func conflicts(candidate time.Time, bookings []*model.Booking, duration time.Duration, policy ConflictPolicy) bool {
	for _, b := range bookings {
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		switch policy {
		case PolicyIntervalOverlap:
			bookedEnd := b.ScheduledAt.Add(duration)
			if candidate.Before(bookedEnd) && b.ScheduledAt.Before(candidate.Add(duration)) {
				return true
			}
		default:
			if sameTimeOfDay(candidate, b.ScheduledAt) {
				return true
			}
		}
	}
	return false
}

// sameTimeOfDay compares wall-clock times only, matching the booking query
// that already scoped rows to the target date.
func sameTimeOfDay(a, b time.Time) bool {
	return a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}
