package engine

import "github.com/shopspring/decimal"

// taxRate is the flat 12% surcharge applied to every quote.
var taxRate = decimal.NewFromFloat(0.12)

// outstationMinKmPerDay is the minimum billable distance per outstation day.
const outstationMinKmPerDay = 300

const (
	includedHoursPerDay = 8
	includedKmPerDay    = 80
)

// PriceSelfDrive quotes a self-drive rental. The day rate is the flat rate of
// the matched distance tier (<=150, <=250, >250 km); the engine always
// charges the full tier rate, never an interpolated one. Extra-km and
// extra-hr rates are echoed for display but settled at vehicle return, so
// they are not part of the total.
func PriceSelfDrive(rate SelfDriveRate, days, estimatedKm int) (Breakdown, error) {
	if days < 1 {
		return Breakdown{}, ErrInvalidDays
	}
	if estimatedKm < 0 {
		return Breakdown{}, ErrInvalidDistance
	}

	var base decimal.Decimal
	switch {
	case estimatedKm <= 150:
		base = rate.Km150Rate
	case estimatedKm <= 250:
		base = rate.Km250Rate
	default:
		base = rate.Km600Rate
	}

	subtotal := base.Mul(decimal.NewFromInt(int64(days)))
	tax := subtotal.Mul(taxRate)

	return Breakdown{
		BaseRate:    base,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal.Add(tax),
		ExtraKmRate: rate.ExtraKmRate,
		ExtraHrRate: rate.ExtraHrRate,
		Days:        days,
		BilledKm:    estimatedKm,
	}, nil
}

// PriceChauffeur quotes a chauffeur-driven trip. Within-city and
// adjacent-metro trips use the local 8hr/80km package with per-unit overages;
// outstation trips are billed per km against a 300 km/day floor plus a flat
// daily driver allowance. hours must already be normalized and floored to 8
// by TripHours — the engine rejects smaller values instead of re-clamping.
func PriceChauffeur(rate ChauffeurRate, days, hours, estimatedKm int, area ServiceArea) (Breakdown, error) {
	if days < 1 {
		return Breakdown{}, ErrInvalidDays
	}
	if estimatedKm < 0 {
		return Breakdown{}, ErrInvalidDistance
	}
	if hours < includedHoursPerDay {
		return Breakdown{}, ErrInvalidHours
	}

	switch area {
	case AreaWithinCity, AreaAdjacentMetro:
		return priceChauffeurLocal(rate, days, hours, estimatedKm)
	case AreaOutstation:
		return priceChauffeurOutstation(rate, days, estimatedKm, hours)
	default:
		return Breakdown{}, ErrInvalidServiceArea
	}
}

func priceChauffeurLocal(rate ChauffeurRate, days, hours, estimatedKm int) (Breakdown, error) {
	daily := rate.Base8Hr80Km
	if hours > includedHoursPerDay {
		extra := decimal.NewFromInt(int64(hours - includedHoursPerDay))
		daily = daily.Add(extra.Mul(rate.ExtraHrRate))
	}
	if estimatedKm > includedKmPerDay {
		extra := decimal.NewFromInt(int64(estimatedKm - includedKmPerDay))
		daily = daily.Add(extra.Mul(rate.ExtraKmRate))
	}

	subtotal := daily.Mul(decimal.NewFromInt(int64(days)))
	tax := subtotal.Mul(taxRate)

	return Breakdown{
		BaseRate:    daily,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal.Add(tax),
		ExtraKmRate: rate.ExtraKmRate,
		ExtraHrRate: rate.ExtraHrRate,
		Days:        days,
		Hours:       hours,
		BilledKm:    estimatedKm,
	}, nil
}

func priceChauffeurOutstation(rate ChauffeurRate, days, estimatedKm, hours int) (Breakdown, error) {
	billedKm := estimatedKm
	if min := outstationMinKmPerDay * days; billedKm < min {
		billedKm = min
	}

	subtotal := decimal.NewFromInt(int64(billedKm)).Mul(rate.OutstationKmRate)
	da := rate.DriverAllowance.Mul(decimal.NewFromInt(int64(days)))
	preTax := subtotal.Add(da)
	tax := preTax.Mul(taxRate)

	return Breakdown{
		BaseRate:        rate.OutstationKmRate,
		Subtotal:        subtotal,
		DriverAllowance: da,
		Tax:             tax,
		Total:           preTax.Add(tax),
		ExtraKmRate:     rate.ExtraKmRate,
		ExtraHrRate:     rate.ExtraHrRate,
		Outstation:      true,
		Days:            days,
		Hours:           hours,
		BilledKm:        billedKm,
	}, nil
}
