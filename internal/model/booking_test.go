package model

import "testing"

func TestCanTransitionBooking(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusPending, "ARCHIVED", false},
		{"", BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			if got := CanTransitionBooking(tc.from, tc.to); got != tc.want {
				t.Errorf("CanTransitionBooking(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
