package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{
			name: "reservation ending on query start conflicts",
			s1:   day(2025, 8, 3), e1: day(2025, 8, 5),
			s2: day(2025, 8, 1), e2: day(2025, 8, 3),
			want: true,
		},
		{
			name: "reservation ending the day before does not",
			s1:   day(2025, 8, 4), e1: day(2025, 8, 5),
			s2: day(2025, 8, 1), e2: day(2025, 8, 3),
			want: false,
		},
		{
			name: "reservation inside the window",
			s1:   day(2025, 8, 1), e1: day(2025, 8, 10),
			s2: day(2025, 8, 4), e2: day(2025, 8, 6),
			want: true,
		},
		{
			name: "window inside the reservation",
			s1:   day(2025, 8, 4), e1: day(2025, 8, 6),
			s2: day(2025, 8, 1), e2: day(2025, 8, 10),
			want: true,
		},
		{
			name: "fully disjoint",
			s1:   day(2025, 9, 1), e1: day(2025, 9, 3),
			s2: day(2025, 8, 1), e2: day(2025, 8, 3),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	fleet := []InventoryEntry{
		{VehicleID: "swift", TotalUnits: 3, AvailableCeiling: 2},
		{VehicleID: "innova", TotalUnits: 1, AvailableCeiling: 1},
		{VehicleID: "thar", TotalUnits: 2, AvailableCeiling: 2},
	}
	reservations := []ReservationWindow{
		{VehicleID: "swift", Start: day(2025, 8, 1), End: day(2025, 8, 3)},
		{VehicleID: "innova", Start: day(2025, 8, 1), End: day(2025, 8, 3)},
		{VehicleID: "innova", Start: day(2025, 8, 10), End: day(2025, 8, 12)},
	}

	got, err := CheckAvailability(day(2025, 8, 3), day(2025, 8, 5), fleet, reservations)
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}

	// Output order must match fleet order.
	if got[0].VehicleID != "swift" || got[1].VehicleID != "innova" || got[2].VehicleID != "thar" {
		t.Fatalf("result order does not match fleet order: %+v", got)
	}

	if !got[0].Available || got[0].AvailableUnits != 1 {
		t.Errorf("swift = %+v, want 1 unit free", got[0])
	}
	if got[1].Available || got[1].AvailableUnits != 0 {
		t.Errorf("innova = %+v, want unavailable", got[1])
	}
	// Next-available is the day after the latest reservation end across the
	// vehicle, not just the conflicting one.
	if !got[1].NextAvailable.Equal(day(2025, 8, 13)) {
		t.Errorf("innova NextAvailable = %v, want 2025-08-13", got[1].NextAvailable)
	}
	if !got[2].Available || got[2].AvailableUnits != 2 {
		t.Errorf("thar = %+v, want fully free", got[2])
	}
}

func TestCheckAvailability_NextAvailableSingleReservation(t *testing.T) {
	fleet := []InventoryEntry{{VehicleID: "innova", TotalUnits: 1, AvailableCeiling: 1}}
	reservations := []ReservationWindow{
		{VehicleID: "innova", Start: day(2025, 8, 1), End: day(2025, 8, 3)},
	}

	got, err := CheckAvailability(day(2025, 8, 2), day(2025, 8, 2), fleet, reservations)
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}
	if got[0].Available {
		t.Fatal("want unavailable")
	}
	if !got[0].NextAvailable.Equal(day(2025, 8, 4)) {
		t.Errorf("NextAvailable = %v, want 2025-08-04", got[0].NextAvailable)
	}
}

func TestCheckAvailability_NeverNegative(t *testing.T) {
	// Over-booked state: three confirmed reservations against a ceiling of 1.
	fleet := []InventoryEntry{{VehicleID: "swift", TotalUnits: 1, AvailableCeiling: 1}}
	reservations := []ReservationWindow{
		{VehicleID: "swift", Start: day(2025, 8, 1), End: day(2025, 8, 5)},
		{VehicleID: "swift", Start: day(2025, 8, 2), End: day(2025, 8, 4)},
		{VehicleID: "swift", Start: day(2025, 8, 3), End: day(2025, 8, 6)},
	}

	got, err := CheckAvailability(day(2025, 8, 3), day(2025, 8, 3), fleet, reservations)
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}
	if got[0].AvailableUnits != 0 {
		t.Errorf("AvailableUnits = %d, want 0 (never negative)", got[0].AvailableUnits)
	}
}

func TestCheckAvailability_ZeroCeilingNoReservations(t *testing.T) {
	fleet := []InventoryEntry{{VehicleID: "retired", TotalUnits: 1, AvailableCeiling: 0}}

	got, err := CheckAvailability(day(2025, 8, 1), day(2025, 8, 5), fleet, nil)
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}
	if got[0].Available {
		t.Fatal("zero ceiling must be unavailable")
	}
	// No reservations to derive a date from: echo the query end.
	if !got[0].NextAvailable.Equal(day(2025, 8, 5)) {
		t.Errorf("NextAvailable = %v, want query end", got[0].NextAvailable)
	}
}

func TestCheckAvailability_Idempotent(t *testing.T) {
	fleet := []InventoryEntry{
		{VehicleID: "swift", TotalUnits: 3, AvailableCeiling: 2},
		{VehicleID: "innova", TotalUnits: 1, AvailableCeiling: 1},
	}
	reservations := []ReservationWindow{
		{VehicleID: "swift", Start: day(2025, 8, 1), End: day(2025, 8, 3)},
		{VehicleID: "innova", Start: day(2025, 8, 2), End: day(2025, 8, 8)},
	}

	first, err := CheckAvailability(day(2025, 8, 3), day(2025, 8, 5), fleet, reservations)
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}
	second, err := CheckAvailability(day(2025, 8, 3), day(2025, 8, 5), fleet, reservations)
	if err != nil {
		t.Fatalf("CheckAvailability() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated call diverged:\n%+v\n%+v", first, second)
	}
}

func TestCheckAvailability_InvalidRange(t *testing.T) {
	_, err := CheckAvailability(day(2025, 8, 5), day(2025, 8, 1), nil, nil)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("error = %v, want ErrInvalidDateRange", err)
	}
}
