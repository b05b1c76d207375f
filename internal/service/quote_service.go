package service

import (
	"context"
	"errors"
	"fmt"

	"rentwheels/internal/engine"
	"rentwheels/internal/model"
	"rentwheels/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type SelfDriveQuoteRequest struct {
	VehicleSlug string `json:"vehicle_slug" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string `json:"end_date" binding:"required"`
	EstimatedKm int    `json:"estimated_km" binding:"min=0"`
}

type ChauffeurQuoteRequest struct {
	VehicleSlug string `json:"vehicle_slug" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	PickupTime  string `json:"pickup_time" binding:"required"` // HH:MM
	ReturnTime  string `json:"return_time" binding:"required"`
	EstimatedKm int    `json:"estimated_km" binding:"min=0"`
	ServiceArea string `json:"service_area" binding:"required,oneof=within_city adjacent_metro outstation"`
}

type QuoteResponse struct {
	VehicleSlug string           `json:"vehicle_slug"`
	ServiceType string           `json:"service_type"`
	Days        int              `json:"days"`
	Breakdown   engine.Breakdown `json:"breakdown"`
	Deposit     decimal.Decimal  `json:"deposit,omitempty"`
}

// ErrRateNotFound surfaces "pricing unavailable" to the handler layer. It
// must never be papered over with a zero-priced quote.
var ErrRateNotFound = engine.ErrRateNotFound

// QuoteService resolves the active rate card for a vehicle and runs the
// pricing engine over it.
type QuoteService interface {
	QuoteSelfDrive(ctx context.Context, req SelfDriveQuoteRequest) (*QuoteResponse, error)
	QuoteChauffeur(ctx context.Context, req ChauffeurQuoteRequest) (*QuoteResponse, error)
}

type quoteService struct {
	rateRepo repository.RateCardRepository
}

func NewQuoteService(rateRepo repository.RateCardRepository) QuoteService {
	return &quoteService{rateRepo: rateRepo}
}

func (s *quoteService) QuoteSelfDrive(ctx context.Context, req SelfDriveQuoteRequest) (*QuoteResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	days, err := engine.TripDurationDays(start, end)
	if err != nil {
		return nil, err
	}

	card, err := s.resolve(ctx, req.VehicleSlug, model.RateVariantSelfDrive)
	if err != nil {
		return nil, err
	}

	breakdown, err := engine.PriceSelfDrive(toSelfDriveRate(card), days, req.EstimatedKm)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		VehicleSlug: req.VehicleSlug,
		ServiceType: model.ServiceTypeSelfDrive,
		Days:        days,
		Breakdown:   breakdown,
		Deposit:     card.Deposit,
	}, nil
}

func (s *quoteService) QuoteChauffeur(ctx context.Context, req ChauffeurQuoteRequest) (*QuoteResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	days, err := engine.TripDurationDays(start, end)
	if err != nil {
		return nil, err
	}
	hours, err := engine.TripHours(req.PickupTime, req.ReturnTime)
	if err != nil {
		return nil, err
	}
	area, err := engine.ParseServiceArea(req.ServiceArea)
	if err != nil {
		return nil, err
	}

	card, err := s.resolve(ctx, req.VehicleSlug, model.RateVariantChauffeur)
	if err != nil {
		return nil, err
	}

	breakdown, err := engine.PriceChauffeur(toChauffeurRate(card), days, hours, req.EstimatedKm, area)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		VehicleSlug: req.VehicleSlug,
		ServiceType: model.ServiceTypeChauffeur,
		Days:        days,
		Breakdown:   breakdown,
	}, nil
}

func (s *quoteService) resolve(ctx context.Context, vehicleSlug, variant string) (*model.RateCard, error) {
	card, err := s.rateRepo.FindActive(ctx, vehicleSlug, variant)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, fmt.Errorf("failed to resolve rate card: %w", err)
	}
	return card, nil
}

// --- Helpers ---

func toSelfDriveRate(card *model.RateCard) engine.SelfDriveRate {
	return engine.SelfDriveRate{
		Km150Rate:          card.Km150Rate,
		Km250Rate:          card.Km250Rate,
		Km600Rate:          card.Km600Rate,
		Deposit:            card.Deposit,
		MonthlyRate:        card.MonthlyRate,
		MonthlyKmAllowance: card.MonthlyKmAllowance,
		MonthlyDeposit:     card.MonthlyDeposit,
		ExtraKmRate:        card.ExtraKmRate,
		ExtraHrRate:        card.ExtraHrRate,
	}
}

func toChauffeurRate(card *model.RateCard) engine.ChauffeurRate {
	return engine.ChauffeurRate{
		Base8Hr80Km:      card.Base8Hr80Km,
		ExtraKmRate:      card.ExtraKmRate,
		ExtraHrRate:      card.ExtraHrRate,
		OutstationKmRate: card.OutstationKmRate,
		DriverAllowance:  card.DriverAllowance,
	}
}
