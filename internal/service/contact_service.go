package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rentwheels/internal/model"
	"rentwheels/internal/repository"
	ws "rentwheels/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

var ErrContactNotFound = errors.New("contact message not found")

// ContactService takes storefront enquiries and exposes them to the admin
// inbox.
type ContactService interface {
	CreateMessage(ctx context.Context, req CreateContactRequest) (*model.ContactMessage, error)
	ListMessages(ctx context.Context, unreadOnly bool, page, limit int) ([]model.ContactMessage, int64, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type contactService struct {
	contactRepo repository.ContactRepository
	auditRepo   repository.AuditRepository
	hub         *ws.Hub
}

func NewContactService(contactRepo repository.ContactRepository, auditRepo repository.AuditRepository, hub *ws.Hub) ContactService {
	return &contactService{contactRepo: contactRepo, auditRepo: auditRepo, hub: hub}
}

func (s *contactService) CreateMessage(ctx context.Context, req CreateContactRequest) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	if s.hub != nil {
		payload, err := json.Marshal(BookingEvent{
			Event: "contact.received",
			Data:  map[string]any{"name": msg.Name, "subject": msg.Subject},
		})
		if err == nil {
			s.hub.Broadcast <- payload
		}
	}

	return msg, nil
}

func (s *contactService) ListMessages(ctx context.Context, unreadOnly bool, page, limit int) ([]model.ContactMessage, int64, error) {
	return s.contactRepo.List(ctx, unreadOnly, page, limit)
}

func (s *contactService) MarkRead(ctx context.Context, userID, id string) error {
	msg, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to fetch contact message: %w", err)
	}

	if err := s.contactRepo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}

	entry := model.AuditLog{
		Action:     model.ActionMarkContactRead,
		EntityID:   id,
		EntityName: msg.Name,
	}
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}
	_ = s.auditRepo.Log(ctx, &entry)

	return nil
}
