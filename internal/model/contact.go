package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is an inbound enquiry from the storefront contact form,
// reviewed through the admin console.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Subject   string    `gorm:"type:varchar(255)" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
