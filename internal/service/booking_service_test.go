package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentwheels/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stubTxManager runs the callback synchronously; the tests below exercise the
// ordering of repository calls inside the transaction, not the database.
type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type recordingAuditRepo struct {
	entries []model.AuditLog
}

func (r *recordingAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}

// lockTrackingInventoryRepo records whether capacity checks go through the
// locked getter and in what order relative to the overlap count.
type lockTrackingInventoryRepo struct {
	entry *model.FleetInventory
	calls *[]string
}

func (f *lockTrackingInventoryRepo) Upsert(ctx context.Context, entry *model.FleetInventory) error {
	return nil
}

func (f *lockTrackingInventoryRepo) GetByVehicle(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error) {
	*f.calls = append(*f.calls, "read inventory")
	return f.get(vehicleSlug)
}

func (f *lockTrackingInventoryRepo) GetByVehicleForUpdate(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error) {
	*f.calls = append(*f.calls, "lock inventory")
	return f.get(vehicleSlug)
}

func (f *lockTrackingInventoryRepo) get(vehicleSlug string) (*model.FleetInventory, error) {
	if f.entry == nil || f.entry.VehicleSlug != vehicleSlug {
		return nil, gorm.ErrRecordNotFound
	}
	return f.entry, nil
}

func (f *lockTrackingInventoryRepo) ListAll(ctx context.Context) ([]model.FleetInventory, error) {
	if f.entry == nil {
		return nil, nil
	}
	return []model.FleetInventory{*f.entry}, nil
}

type memBookingRepo struct {
	bookings  map[string]*model.Booking
	committed int64
	calls     *[]string
}

func newMemBookingRepo(calls *[]string) *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*model.Booking{}, calls: calls}
}

func (f *memBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	*f.calls = append(*f.calls, "create booking")
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.bookings[booking.ID.String()] = booking
	return nil
}

func (f *memBookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	f.bookings[booking.ID.String()] = booking
	return nil
}

func (f *memBookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *memBookingRepo) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	for _, b := range f.bookings {
		if b.Code == code {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *memBookingRepo) List(ctx context.Context, status string, page, limit int) ([]model.Booking, int64, error) {
	return nil, 0, nil
}

func (f *memBookingRepo) ListConfirmed(ctx context.Context, vehicleSlug string) ([]model.Booking, error) {
	return nil, nil
}

func (f *memBookingRepo) CountConfirmedOverlapping(ctx context.Context, vehicleSlug string, start, end time.Time) (int64, error) {
	*f.calls = append(*f.calls, "count overlaps")
	return f.committed, nil
}

type bookingFixture struct {
	svc       BookingService
	bookings  *memBookingRepo
	inventory *lockTrackingInventoryRepo
	calls     []string
}

func newBookingFixture(t *testing.T, ceiling int, committed int64) *bookingFixture {
	t.Helper()
	fx := &bookingFixture{}
	fx.inventory = &lockTrackingInventoryRepo{
		entry: &model.FleetInventory{VehicleSlug: "swift", TotalUnits: ceiling, AvailableCeiling: ceiling},
		calls: &fx.calls,
	}
	fx.bookings = newMemBookingRepo(&fx.calls)
	fx.bookings.committed = committed
	fx.svc = NewBookingService(fx.bookings, fx.inventory, &recordingAuditRepo{}, newQuoteFixture(t), stubTxManager{}, nil)
	return fx
}

func swiftBookingRequest() CreateBookingRequest {
	return CreateBookingRequest{
		VehicleSlug:   "swift",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9876543210",
		ServiceType:   model.ServiceTypeSelfDrive,
		StartDate:     "2025-08-01",
		EndDate:       "2025-08-03",
		EstimatedKm:   200,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the inventory row before counting overlaps", func(t *testing.T) {
		fx := newBookingFixture(t, 1, 0)

		booking, err := fx.svc.CreateBooking(ctx, swiftBookingRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Status != model.BookingStatusPending {
			t.Errorf("status = %q, want %q", booking.Status, model.BookingStatusPending)
		}

		// With zero confirmed bookings there are no booking rows to lock, so
		// the capacity check must serialize on the inventory row instead.
		want := []string{"lock inventory", "count overlaps", "create booking"}
		if len(fx.calls) != len(want) {
			t.Fatalf("calls = %v, want %v", fx.calls, want)
		}
		for i := range want {
			if fx.calls[i] != want[i] {
				t.Fatalf("calls = %v, want %v", fx.calls, want)
			}
		}
	})

	t.Run("rejects when confirmed bookings fill the fleet", func(t *testing.T) {
		fx := newBookingFixture(t, 1, 1)

		_, err := fx.svc.CreateBooking(ctx, swiftBookingRequest())
		if !errors.Is(err, ErrVehicleUnavailable) {
			t.Fatalf("error = %v, want ErrVehicleUnavailable", err)
		}
		for _, call := range fx.calls {
			if call == "create booking" {
				t.Error("booking was created despite the fleet being full")
			}
		}
	})

	t.Run("rejects an unknown vehicle", func(t *testing.T) {
		fx := newBookingFixture(t, 1, 0)

		req := swiftBookingRequest()
		req.VehicleSlug = "innova"
		req.ServiceType = model.ServiceTypeChauffeur
		req.ServiceArea = "within_city"
		req.PickupTime = "09:00"
		req.ReturnTime = "17:00"

		_, err := fx.svc.CreateBooking(ctx, req)
		if !errors.Is(err, ErrVehicleUnavailable) {
			t.Fatalf("error = %v, want ErrVehicleUnavailable", err)
		}
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	seedPending := func(t *testing.T, fx *bookingFixture) *model.Booking {
		t.Helper()
		booking, err := fx.svc.CreateBooking(ctx, swiftBookingRequest())
		if err != nil {
			t.Fatalf("seeding booking: %v", err)
		}
		fx.calls = fx.calls[:0]
		return booking
	}

	t.Run("confirming re-checks capacity under the inventory lock", func(t *testing.T) {
		fx := newBookingFixture(t, 1, 0)
		booking := seedPending(t, fx)

		updated, err := fx.svc.UpdateStatus(ctx, "", booking.ID.String(), UpdateBookingStatusRequest{Status: model.BookingStatusConfirmed})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != model.BookingStatusConfirmed {
			t.Errorf("status = %q, want %q", updated.Status, model.BookingStatusConfirmed)
		}

		want := []string{"lock inventory", "count overlaps"}
		if len(fx.calls) != len(want) {
			t.Fatalf("calls = %v, want %v", fx.calls, want)
		}
		for i := range want {
			if fx.calls[i] != want[i] {
				t.Fatalf("calls = %v, want %v", fx.calls, want)
			}
		}
	})

	t.Run("confirming loses once the last unit is taken", func(t *testing.T) {
		fx := newBookingFixture(t, 1, 0)
		booking := seedPending(t, fx)

		// Another booking for the same window was confirmed first.
		fx.bookings.committed = 1

		_, err := fx.svc.UpdateStatus(ctx, "", booking.ID.String(), UpdateBookingStatusRequest{Status: model.BookingStatusConfirmed})
		if !errors.Is(err, ErrVehicleUnavailable) {
			t.Fatalf("error = %v, want ErrVehicleUnavailable", err)
		}
		if got, _ := fx.bookings.GetByID(ctx, booking.ID.String()); got.Status != model.BookingStatusPending {
			t.Errorf("status = %q, want it left as %q", got.Status, model.BookingStatusPending)
		}
	})

	t.Run("cancelling skips the capacity check", func(t *testing.T) {
		fx := newBookingFixture(t, 1, 0)
		booking := seedPending(t, fx)

		updated, err := fx.svc.UpdateStatus(ctx, "", booking.ID.String(), UpdateBookingStatusRequest{Status: model.BookingStatusCancelled})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != model.BookingStatusCancelled {
			t.Errorf("status = %q, want %q", updated.Status, model.BookingStatusCancelled)
		}
		for _, call := range fx.calls {
			if call == "lock inventory" || call == "count overlaps" {
				t.Errorf("capacity check ran for a cancellation: %v", fx.calls)
			}
		}
	})

	t.Run("rejects an illegal transition", func(t *testing.T) {
		fx := newBookingFixture(t, 1, 0)
		booking := seedPending(t, fx)

		_, err := fx.svc.UpdateStatus(ctx, "", booking.ID.String(), UpdateBookingStatusRequest{Status: model.BookingStatusCompleted})
		if !errors.Is(err, ErrBadStatusChange) {
			t.Fatalf("error = %v, want ErrBadStatusChange", err)
		}
	})
}
