package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateVariant enum constants
const (
	RateVariantSelfDrive = "SELF_DRIVE"
	RateVariantChauffeur = "CHAUFFEUR"
)

// RateCard stores the per-vehicle pricing for one service variant. At most
// one active row exists per (vehicle_slug, variant); swapping a rate
// deactivates the old row rather than editing it, so historical bookings
// keep pointing at the card they were priced against.
//
// Self-drive rows use the km-tier day rates, deposit, and monthly fields;
// chauffeur rows use the 8hr/80km base, outstation rate, and driver
// allowance. Unused columns stay at zero for the other variant.
type RateCard struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VehicleSlug string    `gorm:"type:varchar(100);not null;index" json:"vehicle_slug"`
	Variant     string    `gorm:"type:varchar(20);not null;index" json:"variant"` // SELF_DRIVE, CHAUFFEUR
	Active      bool      `gorm:"default:true;index" json:"active"`

	// Self-drive: flat per-day rates by estimated-distance tier.
	Km150Rate          decimal.Decimal `gorm:"type:decimal(12,2)" json:"km150_rate"`
	Km250Rate          decimal.Decimal `gorm:"type:decimal(12,2)" json:"km250_rate"`
	Km600Rate          decimal.Decimal `gorm:"type:decimal(12,2)" json:"km600_rate"`
	Deposit            decimal.Decimal `gorm:"type:decimal(12,2)" json:"deposit"`
	MonthlyRate        decimal.Decimal `gorm:"type:decimal(12,2)" json:"monthly_rate"`
	MonthlyKmAllowance int             `gorm:"type:int" json:"monthly_km_allowance"`
	MonthlyDeposit     decimal.Decimal `gorm:"type:decimal(12,2)" json:"monthly_deposit"`

	// Chauffeur: base package and outstation pricing.
	Base8Hr80Km      decimal.Decimal `gorm:"type:decimal(12,2)" json:"base_8hr_80km"`
	OutstationKmRate decimal.Decimal `gorm:"type:decimal(12,2)" json:"outstation_km_rate"`
	DriverAllowance  decimal.Decimal `gorm:"type:decimal(12,2)" json:"driver_allowance"`

	// Shared overage rates, settled at vehicle return.
	ExtraKmRate decimal.Decimal `gorm:"type:decimal(12,2)" json:"extra_km_rate"`
	ExtraHrRate decimal.Decimal `gorm:"type:decimal(12,2)" json:"extra_hr_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
