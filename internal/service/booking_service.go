package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rentwheels/internal/engine"
	"rentwheels/internal/model"
	"rentwheels/internal/repository"
	ws "rentwheels/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateBookingRequest struct {
	VehicleSlug   string `json:"vehicle_slug" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	ServiceType   string `json:"service_type" binding:"required,oneof=SELF_DRIVE CHAUFFEUR"`
	ServiceArea   string `json:"service_area" binding:"omitempty,oneof=within_city adjacent_metro outstation"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	PickupTime    string `json:"pickup_time"` // HH:MM, required for chauffeur trips
	ReturnTime    string `json:"return_time"`
	EstimatedKm   int    `json:"estimated_km" binding:"min=0"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED COMPLETED CANCELLED"`
}

type BookingEvent struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

var (
	ErrVehicleUnavailable = errors.New("vehicle has no free units for the requested dates")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBadStatusChange    = errors.New("status change not allowed")
)

// BookingService records customer bookings with a frozen price snapshot and
// drives the admin-side booking lifecycle.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*model.Booking, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	GetBookingByCode(ctx context.Context, code string) (*model.Booking, error)
	ListBookings(ctx context.Context, status string, page, limit int) ([]model.Booking, int64, error)
	UpdateStatus(ctx context.Context, userID, id string, req UpdateBookingStatusRequest) (*model.Booking, error)
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	inventoryRepo repository.InventoryRepository
	auditRepo     repository.AuditRepository
	quotes        QuoteService
	txManager     repository.TransactionManager
	hub           *ws.Hub
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	inventoryRepo repository.InventoryRepository,
	auditRepo repository.AuditRepository,
	quotes QuoteService,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
		quotes:        quotes,
		txManager:     txManager,
		hub:           hub,
	}
}

// CreateBooking prices the trip, then inserts the booking inside a
// transaction that re-checks capacity while holding the vehicle's inventory
// row lock. Availability previews are only advisory; this re-check is what
// actually prevents two customers from both taking the last unit.
func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	days, err := engine.TripDurationDays(start, end)
	if err != nil {
		return nil, err
	}

	var breakdown engine.Breakdown
	hours := 0
	switch req.ServiceType {
	case model.ServiceTypeSelfDrive:
		quote, err := s.quotes.QuoteSelfDrive(ctx, SelfDriveQuoteRequest{
			VehicleSlug: req.VehicleSlug,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			EstimatedKm: req.EstimatedKm,
		})
		if err != nil {
			return nil, err
		}
		breakdown = quote.Breakdown
	case model.ServiceTypeChauffeur:
		if req.PickupTime == "" || req.ReturnTime == "" {
			return nil, engine.ErrInvalidClock
		}
		if req.ServiceArea == "" {
			return nil, engine.ErrInvalidServiceArea
		}
		quote, err := s.quotes.QuoteChauffeur(ctx, ChauffeurQuoteRequest{
			VehicleSlug: req.VehicleSlug,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			PickupTime:  req.PickupTime,
			ReturnTime:  req.ReturnTime,
			EstimatedKm: req.EstimatedKm,
			ServiceArea: req.ServiceArea,
		})
		if err != nil {
			return nil, err
		}
		breakdown = quote.Breakdown
		hours = breakdown.Hours
	default:
		return nil, fmt.Errorf("unknown service type %q", req.ServiceType)
	}

	booking := &model.Booking{
		Code:          newBookingCode(),
		VehicleSlug:   req.VehicleSlug,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ServiceType:   req.ServiceType,
		ServiceArea:   req.ServiceArea,
		StartDate:     start,
		EndDate:       end,
		PickupTime:    req.PickupTime,
		ReturnTime:    req.ReturnTime,
		Days:          days,
		Hours:         hours,
		EstimatedKm:   req.EstimatedKm,
		Status:        model.BookingStatusPending,

		BaseRate:        breakdown.BaseRate,
		Subtotal:        breakdown.Subtotal,
		DriverAllowance: breakdown.DriverAllowance,
		Tax:             breakdown.Tax,
		Total:           breakdown.Total,
		BilledKm:        breakdown.BilledKm,
		Outstation:      breakdown.Outstation,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// The inventory row is the serialization point: locking it blocks
		// concurrent confirms even when no bookings exist yet to lock.
		inv, err := s.inventoryRepo.GetByVehicleForUpdate(txCtx, req.VehicleSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleUnavailable
			}
			return fmt.Errorf("failed to load inventory: %w", err)
		}

		committed, err := s.bookingRepo.CountConfirmedOverlapping(txCtx, req.VehicleSlug, start, end)
		if err != nil {
			return fmt.Errorf("failed to count overlapping bookings: %w", err)
		}
		if int64(inv.AvailableCeiling)-committed <= 0 {
			return ErrVehicleUnavailable
		}

		return s.bookingRepo.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(ctx, "", model.ActionCreateBooking, booking.Code, req.CustomerName, req)
	s.broadcast("booking.created", map[string]any{
		"code":         booking.Code,
		"vehicle_slug": booking.VehicleSlug,
		"start_date":   booking.StartDate.Format(dateLayout),
		"end_date":     booking.EndDate.Format(dateLayout),
		"total":        booking.Total,
	})

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return booking, nil
}

// GetBookingByCode backs the storefront "track my booking" lookup.
func (s *bookingService) GetBookingByCode(ctx context.Context, code string) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, status string, page, limit int) ([]model.Booking, int64, error) {
	return s.bookingRepo.List(ctx, status, page, limit)
}

// UpdateStatus moves a booking through the lifecycle. Confirming re-checks
// capacity under the same transaction discipline as creation, since the
// booking only starts consuming a unit once it is CONFIRMED.
func (s *bookingService) UpdateStatus(ctx context.Context, userID, id string, req UpdateBookingStatusRequest) (*model.Booking, error) {
	var booking *model.Booking

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to fetch booking: %w", err)
		}

		if !model.CanTransitionBooking(b.Status, req.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrBadStatusChange, b.Status, req.Status)
		}

		if req.Status == model.BookingStatusConfirmed {
			inv, err := s.inventoryRepo.GetByVehicleForUpdate(txCtx, b.VehicleSlug)
			if err != nil {
				return fmt.Errorf("failed to load inventory: %w", err)
			}
			committed, err := s.bookingRepo.CountConfirmedOverlapping(txCtx, b.VehicleSlug, b.StartDate, b.EndDate)
			if err != nil {
				return fmt.Errorf("failed to count overlapping bookings: %w", err)
			}
			if int64(inv.AvailableCeiling)-committed <= 0 {
				return ErrVehicleUnavailable
			}
		}

		b.Status = req.Status
		if err := s.bookingRepo.Update(txCtx, b); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(ctx, userID, model.ActionUpdateBookingStatus, booking.Code, booking.CustomerName, req)
	s.broadcast("booking.status_changed", map[string]any{
		"code":   booking.Code,
		"status": booking.Status,
	})

	return booking, nil
}

// --- Helpers ---

func newBookingCode() string {
	return "RW-" + strings.ToUpper(uuid.New().String()[:8])
}

func (s *bookingService) broadcast(event string, data map[string]any) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(BookingEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	s.hub.Broadcast <- payload
}

func (s *bookingService) writeAuditLog(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
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

	// Best-effort: a failed audit write never fails the booking.
	_ = s.auditRepo.Log(ctx, &entry)
}
