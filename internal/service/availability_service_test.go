package service

import (
	"context"
	"testing"
	"time"

	"rentwheels/internal/model"

	"gorm.io/gorm"
)

type fakeInventoryRepo struct {
	entries []model.FleetInventory
}

func (f *fakeInventoryRepo) Upsert(ctx context.Context, entry *model.FleetInventory) error {
	return nil
}

func (f *fakeInventoryRepo) GetByVehicle(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error) {
	for i := range f.entries {
		if f.entries[i].VehicleSlug == vehicleSlug {
			return &f.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInventoryRepo) GetByVehicleForUpdate(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error) {
	return f.GetByVehicle(ctx, vehicleSlug)
}

func (f *fakeInventoryRepo) ListAll(ctx context.Context) ([]model.FleetInventory, error) {
	return f.entries, nil
}

type fakeBookingRepo struct {
	confirmed []model.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *model.Booking) error { return nil }
func (f *fakeBookingRepo) Update(ctx context.Context, booking *model.Booking) error { return nil }

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookingRepo) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookingRepo) List(ctx context.Context, status string, page, limit int) ([]model.Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeBookingRepo) ListConfirmed(ctx context.Context, vehicleSlug string) ([]model.Booking, error) {
	if vehicleSlug == "" {
		return f.confirmed, nil
	}
	var out []model.Booking
	for _, b := range f.confirmed {
		if b.VehicleSlug == vehicleSlug {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountConfirmedOverlapping(ctx context.Context, vehicleSlug string, start, end time.Time) (int64, error) {
	var n int64
	for _, b := range f.confirmed {
		if b.VehicleSlug == vehicleSlug && !b.StartDate.After(end) && !b.EndDate.Before(start) {
			n++
		}
	}
	return n, nil
}

func testDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailabilityCheck(t *testing.T) {
	inventory := &fakeInventoryRepo{entries: []model.FleetInventory{
		{VehicleSlug: "swift", TotalUnits: 3, AvailableCeiling: 3},
		{VehicleSlug: "innova", TotalUnits: 1, AvailableCeiling: 1},
	}}
	bookings := &fakeBookingRepo{confirmed: []model.Booking{
		{VehicleSlug: "innova", Status: model.BookingStatusConfirmed,
			StartDate: testDay(2025, 8, 1), EndDate: testDay(2025, 8, 5)},
	}}
	svc := NewAvailabilityService(inventory, bookings)
	ctx := context.Background()

	t.Run("reports the whole fleet in inventory order", func(t *testing.T) {
		got, err := svc.Check(ctx, AvailabilityQuery{StartDate: "2025-08-03", EndDate: "2025-08-04"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("entries = %d, want 2", len(got))
		}
		if got[0].VehicleSlug != "swift" || got[1].VehicleSlug != "innova" {
			t.Errorf("order = [%s %s], want [swift innova]", got[0].VehicleSlug, got[1].VehicleSlug)
		}
		if !got[0].Available || got[0].AvailableUnits != 3 {
			t.Errorf("swift entry = %+v, want 3 free units", got[0])
		}
		if got[1].Available {
			t.Errorf("innova should be fully booked for the window")
		}
		if got[1].NextAvailable != "2025-08-06" {
			t.Errorf("next available = %s, want 2025-08-06", got[1].NextAvailable)
		}
	})

	t.Run("single vehicle filter", func(t *testing.T) {
		got, err := svc.Check(ctx, AvailabilityQuery{
			StartDate: "2025-08-03", EndDate: "2025-08-04", VehicleSlug: "innova",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].VehicleSlug != "innova" {
			t.Fatalf("got %+v, want a single innova entry", got)
		}
	})

	t.Run("boundary day counts as overlap", func(t *testing.T) {
		got, err := svc.Check(ctx, AvailabilityQuery{
			StartDate: "2025-08-05", EndDate: "2025-08-07", VehicleSlug: "innova",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Available {
			t.Error("query starting on a booking's end date should still conflict")
		}
	})

	t.Run("clear window is available with no next date", func(t *testing.T) {
		got, err := svc.Check(ctx, AvailabilityQuery{
			StartDate: "2025-08-10", EndDate: "2025-08-12", VehicleSlug: "innova",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got[0].Available {
			t.Error("window after the booking should be free")
		}
		if got[0].NextAvailable != "" {
			t.Errorf("next available = %q, want empty on an available entry", got[0].NextAvailable)
		}
	})
}
