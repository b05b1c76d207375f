package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateVehicle  = "CREATE_VEHICLE"
	ActionUpdateVehicle  = "UPDATE_VEHICLE"
	ActionDeleteVehicle  = "DELETE_VEHICLE"
	ActionSetInventory   = "SET_INVENTORY"
	ActionCreateRateCard = "CREATE_RATE_CARD"
	ActionRetireRateCard = "RETIRE_RATE_CARD"

	// Booking lifecycle actions
	ActionCreateBooking       = "CREATE_BOOKING"
	ActionUpdateBookingStatus = "UPDATE_BOOKING_STATUS"

	ActionMarkContactRead = "MARK_CONTACT_READ"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for storefront-originated actions
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/slug/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
