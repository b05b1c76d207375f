package service

import (
	"context"
	"fmt"

	"rentwheels/internal/engine"
	"rentwheels/internal/model"
	"rentwheels/internal/repository"
)

// --- DTOs ---

type AvailabilityQuery struct {
	StartDate   string // YYYY-MM-DD
	EndDate     string
	VehicleSlug string // optional: restrict to one vehicle
}

type AvailabilityEntry struct {
	VehicleSlug    string `json:"vehicle_slug"`
	Available      bool   `json:"available"`
	AvailableUnits int    `json:"available_units"`
	TotalUnits     int    `json:"total_units"`
	NextAvailable  string `json:"next_available,omitempty"` // YYYY-MM-DD, set when unavailable
}

// AvailabilityService loads the fleet table and confirmed bookings, then
// runs the availability engine over the snapshot. The result reflects the
// reservation table at call time; it is never cached here.
type AvailabilityService interface {
	Check(ctx context.Context, query AvailabilityQuery) ([]AvailabilityEntry, error)
}

type availabilityService struct {
	inventoryRepo repository.InventoryRepository
	bookingRepo   repository.BookingRepository
}

func NewAvailabilityService(inventoryRepo repository.InventoryRepository, bookingRepo repository.BookingRepository) AvailabilityService {
	return &availabilityService{inventoryRepo: inventoryRepo, bookingRepo: bookingRepo}
}

func (s *availabilityService) Check(ctx context.Context, query AvailabilityQuery) ([]AvailabilityEntry, error) {
	start, end, err := parseDateRange(query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := s.inventoryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fleet inventory: %w", err)
	}

	fleet := make([]engine.InventoryEntry, 0, len(entries))
	for _, e := range entries {
		if query.VehicleSlug != "" && e.VehicleSlug != query.VehicleSlug {
			continue
		}
		fleet = append(fleet, engine.InventoryEntry{
			VehicleID:        e.VehicleSlug,
			TotalUnits:       e.TotalUnits,
			AvailableCeiling: e.AvailableCeiling,
		})
	}

	confirmed, err := s.bookingRepo.ListConfirmed(ctx, query.VehicleSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed bookings: %w", err)
	}
	windows := toReservationWindows(confirmed)

	results, err := engine.CheckAvailability(start, end, fleet, windows)
	if err != nil {
		return nil, err
	}

	out := make([]AvailabilityEntry, 0, len(results))
	for _, r := range results {
		entry := AvailabilityEntry{
			VehicleSlug:    r.VehicleID,
			Available:      r.Available,
			AvailableUnits: r.AvailableUnits,
			TotalUnits:     r.TotalUnits,
		}
		if !r.Available {
			entry.NextAvailable = r.NextAvailable.Format(dateLayout)
		}
		out = append(out, entry)
	}
	return out, nil
}

func toReservationWindows(bookings []model.Booking) []engine.ReservationWindow {
	windows := make([]engine.ReservationWindow, 0, len(bookings))
	for _, b := range bookings {
		windows = append(windows, engine.ReservationWindow{
			VehicleID: b.VehicleSlug,
			Start:     b.StartDate,
			End:       b.EndDate,
		})
	}
	return windows
}
