package repository

import (
	"context"

	"rentwheels/internal/model"

	"gorm.io/gorm"
)

// RateCardRepository defines data access for per-vehicle rate cards.
// FindActive is the rate-resolver lookup: callers get the single active card
// for a (vehicle, variant) or gorm.ErrRecordNotFound — never a default.
type RateCardRepository interface {
	Create(ctx context.Context, card *model.RateCard) error
	FindActive(ctx context.Context, vehicleSlug, variant string) (*model.RateCard, error)
	DeactivateActive(ctx context.Context, vehicleSlug, variant string) error
	ListByVehicle(ctx context.Context, vehicleSlug string) ([]model.RateCard, error)
}

type rateCardRepository struct {
	db *gorm.DB
}

func NewRateCardRepository(db *gorm.DB) RateCardRepository {
	return &rateCardRepository{db: db}
}

func (r *rateCardRepository) Create(ctx context.Context, card *model.RateCard) error {
	return GetDB(ctx, r.db).Create(card).Error
}

func (r *rateCardRepository) FindActive(ctx context.Context, vehicleSlug, variant string) (*model.RateCard, error) {
	var card model.RateCard
	if err := GetDB(ctx, r.db).
		Where("vehicle_slug = ? AND variant = ? AND active = ?", vehicleSlug, variant, true).
		Order("created_at DESC").
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// DeactivateActive retires the current active card so a replacement can be
// inserted without ever having two active rows for the same variant.
func (r *rateCardRepository) DeactivateActive(ctx context.Context, vehicleSlug, variant string) error {
	return GetDB(ctx, r.db).Model(&model.RateCard{}).
		Where("vehicle_slug = ? AND variant = ? AND active = ?", vehicleSlug, variant, true).
		Update("active", false).Error
}

func (r *rateCardRepository) ListByVehicle(ctx context.Context, vehicleSlug string) ([]model.RateCard, error) {
	var cards []model.RateCard
	if err := GetDB(ctx, r.db).
		Where("vehicle_slug = ?", vehicleSlug).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}
