package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceArea is a closed enum: exactly one of the three areas applies to a
// chauffeur trip. The zero value is invalid.
type ServiceArea int

const (
	AreaUnknown ServiceArea = iota
	AreaWithinCity
	AreaAdjacentMetro
	AreaOutstation
)

func (a ServiceArea) String() string {
	switch a {
	case AreaWithinCity:
		return "within_city"
	case AreaAdjacentMetro:
		return "adjacent_metro"
	case AreaOutstation:
		return "outstation"
	default:
		return "unknown"
	}
}

// ParseServiceArea maps the wire value to a ServiceArea. Anything else is
// ErrInvalidServiceArea — there is no default area.
func ParseServiceArea(s string) (ServiceArea, error) {
	switch s {
	case "within_city":
		return AreaWithinCity, nil
	case "adjacent_metro":
		return AreaAdjacentMetro, nil
	case "outstation":
		return AreaOutstation, nil
	default:
		return AreaUnknown, ErrInvalidServiceArea
	}
}

// SelfDriveRate is the active self-drive rate card for one vehicle.
// The three day rates are flat per-day prices selected by distance tier;
// there is no interpolation between tiers.
type SelfDriveRate struct {
	Km150Rate          decimal.Decimal // per day, estimated distance <= 150 km
	Km250Rate          decimal.Decimal // per day, 150 < distance <= 250 km
	Km600Rate          decimal.Decimal // per day, distance > 250 km (flat long-distance rate)
	Deposit            decimal.Decimal
	MonthlyRate        decimal.Decimal
	MonthlyKmAllowance int
	MonthlyDeposit     decimal.Decimal
	ExtraKmRate        decimal.Decimal // settled at return, never pre-billed
	ExtraHrRate        decimal.Decimal
}

// ChauffeurRate is the active chauffeur rate card for one vehicle. The base
// price covers 8 hours and 80 km per day.
type ChauffeurRate struct {
	Base8Hr80Km      decimal.Decimal
	ExtraKmRate      decimal.Decimal
	ExtraHrRate      decimal.Decimal
	OutstationKmRate decimal.Decimal
	DriverAllowance  decimal.Decimal // flat per-day DA on outstation trips
}

// Breakdown is the priced quote for a trip. It is a pure value: the same
// inputs against the same rate card always produce the identical breakdown.
// No rounding happens here; display rounding belongs to the caller.
type Breakdown struct {
	BaseRate        decimal.Decimal `json:"base_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DriverAllowance decimal.Decimal `json:"driver_allowance"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	ExtraKmRate     decimal.Decimal `json:"extra_km_rate"`
	ExtraHrRate     decimal.Decimal `json:"extra_hr_rate"`
	Outstation      bool            `json:"outstation"`
	Days            int             `json:"days"`
	Hours           int             `json:"hours,omitempty"`
	BilledKm        int             `json:"billed_km"`
}

// InventoryEntry is one row of the fleet table: how many units of a vehicle
// type exist and how many may be allocated. The ceiling is a static limit,
// not a live counter.
type InventoryEntry struct {
	VehicleID        string
	TotalUnits       int
	AvailableCeiling int
}

// ReservationWindow is a confirmed booking's date range as seen by the
// availability engine. Both endpoints are inclusive calendar dates.
type ReservationWindow struct {
	VehicleID string
	Start     time.Time
	End       time.Time
}

// AvailabilityResult reports one vehicle's capacity for a query window.
type AvailabilityResult struct {
	VehicleID      string    `json:"vehicle_id"`
	Available      bool      `json:"available"`
	AvailableUnits int       `json:"available_units"`
	TotalUnits     int       `json:"total_units"`
	NextAvailable  time.Time `json:"next_available,omitempty"`
}
