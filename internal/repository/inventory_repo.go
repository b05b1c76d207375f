package repository

import (
	"context"

	"rentwheels/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository defines data access for the fleet unit-count table.
type InventoryRepository interface {
	Upsert(ctx context.Context, entry *model.FleetInventory) error
	GetByVehicle(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error)
	// GetByVehicleForUpdate locks the vehicle's inventory row for the
	// surrounding transaction. The row always exists for a bookable vehicle,
	// so it is the serialization point for capacity checks: a FOR UPDATE
	// over the booking rows alone locks nothing when no bookings match yet.
	GetByVehicleForUpdate(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error)
	ListAll(ctx context.Context) ([]model.FleetInventory, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Upsert(ctx context.Context, entry *model.FleetInventory) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vehicle_slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_units", "available_ceiling", "updated_at"}),
	}).Create(entry).Error
}

func (r *inventoryRepository) GetByVehicle(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error) {
	var entry model.FleetInventory
	if err := GetDB(ctx, r.db).First(&entry, "vehicle_slug = ?", vehicleSlug).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *inventoryRepository) GetByVehicleForUpdate(ctx context.Context, vehicleSlug string) (*model.FleetInventory, error) {
	var entry model.FleetInventory
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&entry, "vehicle_slug = ?", vehicleSlug).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *inventoryRepository) ListAll(ctx context.Context) ([]model.FleetInventory, error) {
	var entries []model.FleetInventory
	if err := GetDB(ctx, r.db).Order("vehicle_slug asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
