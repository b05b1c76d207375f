package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rentwheels/internal/model"
	"rentwheels/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateVehicleRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Seats    int    `json:"seats" binding:"required,gt=0"`
	Category string `json:"category" binding:"required,oneof=HATCHBACK SEDAN SUV TEMPO_TRAVELLER"`
}

type UpdateVehicleRequest struct {
	Name     string `json:"name"`
	Seats    int    `json:"seats" binding:"omitempty,gt=0"`
	Category string `json:"category" binding:"omitempty,oneof=HATCHBACK SEDAN SUV TEMPO_TRAVELLER"`
	Active   *bool  `json:"active"`
}

type SetInventoryRequest struct {
	TotalUnits       int `json:"total_units" binding:"required,gte=0"`
	AvailableCeiling int `json:"available_ceiling" binding:"gte=0"`
}

// CreateRateCardRequest carries decimal amounts as strings, parsed with
// shopspring/decimal so no precision is lost on the way to the column.
type CreateRateCardRequest struct {
	Variant string `json:"variant" binding:"required,oneof=SELF_DRIVE CHAUFFEUR"`

	Km150Rate          string `json:"km150_rate"`
	Km250Rate          string `json:"km250_rate"`
	Km600Rate          string `json:"km600_rate"`
	Deposit            string `json:"deposit"`
	MonthlyRate        string `json:"monthly_rate"`
	MonthlyKmAllowance int    `json:"monthly_km_allowance" binding:"gte=0"`
	MonthlyDeposit     string `json:"monthly_deposit"`

	Base8Hr80Km      string `json:"base_8hr_80km"`
	OutstationKmRate string `json:"outstation_km_rate"`
	DriverAllowance  string `json:"driver_allowance"`

	ExtraKmRate string `json:"extra_km_rate"`
	ExtraHrRate string `json:"extra_hr_rate"`
}

var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleService is the admin console's fleet management: vehicles, their
// rate cards, and the inventory unit counts.
type VehicleService interface {
	CreateVehicle(ctx context.Context, userID string, req CreateVehicleRequest) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, userID, slug string, req UpdateVehicleRequest) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, userID, slug string) error
	GetVehicle(ctx context.Context, slug string) (*model.Vehicle, error)
	ListVehicles(ctx context.Context, activeOnly bool, page, limit int) ([]model.Vehicle, int64, error)

	SetInventory(ctx context.Context, userID, slug string, req SetInventoryRequest) (*model.FleetInventory, error)
	ListInventory(ctx context.Context) ([]model.FleetInventory, error)

	CreateRateCard(ctx context.Context, userID, slug string, req CreateRateCardRequest) (*model.RateCard, error)
	ListRateCards(ctx context.Context, slug string) ([]model.RateCard, error)
}

type vehicleService struct {
	vehicleRepo   repository.VehicleRepository
	rateRepo      repository.RateCardRepository
	inventoryRepo repository.InventoryRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	rateRepo repository.RateCardRepository,
	inventoryRepo repository.InventoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) VehicleService {
	return &vehicleService{
		vehicleRepo:   vehicleRepo,
		rateRepo:      rateRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
	}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, userID string, req CreateVehicleRequest) (*model.Vehicle, error) {
	if _, err := s.vehicleRepo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, fmt.Errorf("vehicle slug %q already exists", req.Slug)
	}

	vehicle := &model.Vehicle{
		Slug:     req.Slug,
		Name:     req.Name,
		Seats:    req.Seats,
		Category: req.Category,
		Active:   true,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionCreateVehicle, vehicle.Slug, vehicle.Name, req)
	return vehicle, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, userID, slug string, req UpdateVehicleRequest) (*model.Vehicle, error) {
	vehicle, err := s.getVehicle(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		vehicle.Name = req.Name
	}
	if req.Seats > 0 {
		vehicle.Seats = req.Seats
	}
	if req.Category != "" {
		vehicle.Category = req.Category
	}
	if req.Active != nil {
		vehicle.Active = *req.Active
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionUpdateVehicle, vehicle.Slug, vehicle.Name, req)
	return vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, userID, slug string) error {
	vehicle, err := s.getVehicle(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.Delete(ctx, slug); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionDeleteVehicle, slug, vehicle.Name, map[string]string{"deleted_slug": slug})
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, slug string) (*model.Vehicle, error) {
	return s.getVehicle(ctx, slug)
}

func (s *vehicleService) ListVehicles(ctx context.Context, activeOnly bool, page, limit int) ([]model.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, activeOnly, page, limit)
}

func (s *vehicleService) SetInventory(ctx context.Context, userID, slug string, req SetInventoryRequest) (*model.FleetInventory, error) {
	if req.AvailableCeiling > req.TotalUnits {
		return nil, fmt.Errorf("available ceiling (%d) cannot exceed total units (%d)", req.AvailableCeiling, req.TotalUnits)
	}
	if _, err := s.getVehicle(ctx, slug); err != nil {
		return nil, err
	}

	entry := &model.FleetInventory{
		VehicleSlug:      slug,
		TotalUnits:       req.TotalUnits,
		AvailableCeiling: req.AvailableCeiling,
	}
	if err := s.inventoryRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to set inventory: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionSetInventory, slug, "", req)
	return entry, nil
}

func (s *vehicleService) ListInventory(ctx context.Context) ([]model.FleetInventory, error) {
	return s.inventoryRepo.ListAll(ctx)
}

// CreateRateCard retires the current active card of the same variant and
// inserts the replacement in one transaction, keeping the one-active-card
// invariant even with concurrent admins.
func (s *vehicleService) CreateRateCard(ctx context.Context, userID, slug string, req CreateRateCardRequest) (*model.RateCard, error) {
	if _, err := s.getVehicle(ctx, slug); err != nil {
		return nil, err
	}

	card, err := buildRateCard(slug, req)
	if err != nil {
		return nil, err
	}

	var retired *model.RateCard
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if prev, err := s.rateRepo.FindActive(txCtx, slug, req.Variant); err == nil {
			retired = prev
		}
		if err := s.rateRepo.DeactivateActive(txCtx, slug, req.Variant); err != nil {
			return fmt.Errorf("failed to retire previous rate card: %w", err)
		}
		return s.rateRepo.Create(txCtx, card)
	})
	if err != nil {
		return nil, err
	}

	if retired != nil {
		s.writeAuditLog(ctx, userID, model.ActionRetireRateCard, retired.ID.String(), slug+" "+req.Variant,
			map[string]string{"replaced_by": card.ID.String()})
	}
	s.writeAuditLog(ctx, userID, model.ActionCreateRateCard, card.ID.String(), slug+" "+req.Variant, req)
	return card, nil
}

func (s *vehicleService) ListRateCards(ctx context.Context, slug string) ([]model.RateCard, error) {
	return s.rateRepo.ListByVehicle(ctx, slug)
}

// --- Helpers ---

func (s *vehicleService) getVehicle(ctx context.Context, slug string) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	return vehicle, nil
}

func buildRateCard(slug string, req CreateRateCardRequest) (*model.RateCard, error) {
	card := &model.RateCard{
		VehicleSlug:        slug,
		Variant:            req.Variant,
		Active:             true,
		MonthlyKmAllowance: req.MonthlyKmAllowance,
	}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"km150_rate", req.Km150Rate, &card.Km150Rate},
		{"km250_rate", req.Km250Rate, &card.Km250Rate},
		{"km600_rate", req.Km600Rate, &card.Km600Rate},
		{"deposit", req.Deposit, &card.Deposit},
		{"monthly_rate", req.MonthlyRate, &card.MonthlyRate},
		{"monthly_deposit", req.MonthlyDeposit, &card.MonthlyDeposit},
		{"base_8hr_80km", req.Base8Hr80Km, &card.Base8Hr80Km},
		{"outstation_km_rate", req.OutstationKmRate, &card.OutstationKmRate},
		{"driver_allowance", req.DriverAllowance, &card.DriverAllowance},
		{"extra_km_rate", req.ExtraKmRate, &card.ExtraKmRate},
		{"extra_hr_rate", req.ExtraHrRate, &card.ExtraHrRate},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", f.name, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("%s must not be negative", f.name)
		}
		*f.dst = d
	}

	switch req.Variant {
	case model.RateVariantSelfDrive:
		if card.Km150Rate.IsZero() || card.Km250Rate.IsZero() || card.Km600Rate.IsZero() {
			return nil, errors.New("self-drive rate card requires all three distance-tier rates")
		}
	case model.RateVariantChauffeur:
		if card.Base8Hr80Km.IsZero() || card.OutstationKmRate.IsZero() {
			return nil, errors.New("chauffeur rate card requires base and outstation rates")
		}
	}

	return card, nil
}

func (s *vehicleService) writeAuditLog(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}
	_ = s.auditRepo.Log(ctx, &entry)
}
