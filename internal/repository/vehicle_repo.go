package repository

import (
	"context"

	"rentwheels/internal/model"

	"gorm.io/gorm"
)

// VehicleRepository defines data access for fleet vehicles and their
// inventory rows.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]model.Vehicle, int64, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Create(vehicle).Error
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, slug string) error {
	return GetDB(ctx, r.db).Where("slug = ?", slug).Delete(&model.Vehicle{}).Error
}

func (r *vehicleRepository) GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := GetDB(ctx, r.db).First(&vehicle, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, activeOnly bool, page, limit int) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Vehicle{})
	if activeOnly {
		db = db.Where("active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}
