package repository

import (
	"context"
	"time"

	"rentwheels/internal/model"

	"gorm.io/gorm"
)

// BookingRepository defines data access for customer bookings. The
// ListConfirmed* methods feed the availability engine with reservation
// windows; everything else is admin-console plumbing.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByCode(ctx context.Context, code string) (*model.Booking, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Booking, int64, error)
	ListConfirmed(ctx context.Context, vehicleSlug string) ([]model.Booking, error)
	// CountConfirmedOverlapping counts confirmed bookings for a vehicle whose
	// closed date range intersects [start, end]. Callers must already hold
	// the vehicle's inventory row lock; locking the matched bookings instead
	// would lock nothing when the match set is empty.
	CountConfirmedOverlapping(ctx context.Context, vehicleSlug string, start, end time.Time) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return GetDB(ctx, r.db).Create(booking).Error
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return GetDB(ctx, r.db).Save(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := GetDB(ctx, r.db).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	var booking model.Booking
	if err := GetDB(ctx, r.db).First(&booking, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, status string, page, limit int) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Booking{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *bookingRepository) ListConfirmed(ctx context.Context, vehicleSlug string) ([]model.Booking, error) {
	var bookings []model.Booking
	db := GetDB(ctx, r.db).Where("status = ?", model.BookingStatusConfirmed)
	if vehicleSlug != "" {
		db = db.Where("vehicle_slug = ?", vehicleSlug)
	}
	if err := db.Order("start_date asc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountConfirmedOverlapping(ctx context.Context, vehicleSlug string, start, end time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).
		Model(&model.Booking{}).
		Where("vehicle_slug = ? AND status = ?", vehicleSlug, model.BookingStatusConfirmed).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
