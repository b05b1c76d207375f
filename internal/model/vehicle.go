package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle categories shown to customers on the picker
const (
	CategoryHatchback = "HATCHBACK"
	CategorySedan     = "SEDAN"
	CategorySUV       = "SUV"
	CategoryTempo     = "TEMPO_TRAVELLER"
)

// Vehicle represents one model in the rental fleet. Slug is the stable
// identifier every rate card, inventory row, and booking points at.
type Vehicle struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Seats     int            `gorm:"type:int;not null" json:"seats"`
	Category  string         `gorm:"type:varchar(50);not null" json:"category"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FleetInventory holds the unit counts for one vehicle. AvailableCeiling is
// the static number of units open for general allocation, not a live
// counter decremented by bookings.
type FleetInventory struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleSlug      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"vehicle_slug"`
	TotalUnits       int       `gorm:"type:int;not null" json:"total_units"`
	AvailableCeiling int       `gorm:"type:int;not null" json:"available_ceiling"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
