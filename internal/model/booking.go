package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus constants. Only CONFIRMED bookings consume fleet capacity.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"
)

// ServiceType enum constants
const (
	ServiceTypeSelfDrive = "SELF_DRIVE"
	ServiceTypeChauffeur = "CHAUFFEUR"
)

// AllowedBookingTransitions encodes the booking lifecycle as data.
var AllowedBookingTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionBooking reports whether a status change is legal.
func CanTransitionBooking(from, to string) bool {
	for _, next := range AllowedBookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is a customer reservation. The pricing fields are a frozen audit
// snapshot of the quote at submission time; later rate-card changes never
// rewrite an existing booking's numbers.
type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	VehicleSlug string    `gorm:"type:varchar(100);not null;index" json:"vehicle_slug"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(20);not null" json:"customer_phone"`

	ServiceType string `gorm:"type:varchar(20);not null" json:"service_type"` // SELF_DRIVE, CHAUFFEUR
	ServiceArea string `gorm:"type:varchar(20)" json:"service_area"`          // within_city, adjacent_metro, outstation

	StartDate   time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null;index" json:"end_date"`
	PickupTime  string    `gorm:"type:varchar(5)" json:"pickup_time"` // HH:MM
	ReturnTime  string    `gorm:"type:varchar(5)" json:"return_time"`
	Days        int       `gorm:"type:int;not null" json:"days"`
	Hours       int       `gorm:"type:int" json:"hours"`
	EstimatedKm int       `gorm:"type:int;not null" json:"estimated_km"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	// Price snapshot, copied from the engine breakdown at creation.
	BaseRate        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_rate"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DriverAllowance decimal.Decimal `gorm:"type:decimal(12,2)" json:"driver_allowance"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	BilledKm        int             `gorm:"type:int" json:"billed_km"`
	Outstation      bool            `gorm:"default:false" json:"outstation"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
