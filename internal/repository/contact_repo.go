package repository

import (
	"context"

	"rentwheels/internal/model"

	"gorm.io/gorm"
)

// ContactRepository defines data access for storefront contact messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	List(ctx context.Context, unreadOnly bool, page, limit int) ([]model.ContactMessage, int64, error)
	MarkRead(ctx context.Context, id string) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	return GetDB(ctx, r.db).Create(msg).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	if err := GetDB(ctx, r.db).First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactRepository) List(ctx context.Context, unreadOnly bool, page, limit int) ([]model.ContactMessage, int64, error) {
	var msgs []model.ContactMessage
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ContactMessage{})
	if unreadOnly {
		db = db.Where("read = ?", false)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&msgs).Error; err != nil {
		return nil, 0, err
	}

	return msgs, total, nil
}

func (r *contactRepository) MarkRead(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("read", true).Error
}
