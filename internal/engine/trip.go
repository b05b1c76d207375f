package engine

import (
	"strconv"
	"strings"
	"time"
)

// TripDurationDays returns the rental length in whole days with both
// endpoints inclusive: a pickup and return on the same date is one day.
func TripDurationDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// TripHours returns the billable hours between two "HH:MM" clock times.
// A return clock earlier than the pickup clock means a next-day return and
// is normalized by adding 24 hours. Partial hours count as a full hour, and
// the result is floored at 8 — a shorter trip still bills a full base day.
func TripHours(startClock, endClock string) (int, error) {
	startMin, err := parseClock(startClock)
	if err != nil {
		return 0, err
	}
	endMin, err := parseClock(endClock)
	if err != nil {
		return 0, err
	}

	if endMin < startMin {
		endMin += 24 * 60
	}

	elapsed := endMin - startMin
	hours := elapsed / 60
	if elapsed%60 != 0 {
		hours++
	}
	if hours < includedHoursPerDay {
		hours = includedHoursPerDay
	}
	return hours, nil
}

func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}
