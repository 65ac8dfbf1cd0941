package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/internal/service/audit"
	"github.com/bookline/booking-api/pkg/errors"
)

// Service manages the bookable offerings of a business.
type Service struct {
	repo    repository.ServiceRepository
	outbox  repository.OutboxRepository
	auditor *audit.Service
}

func NewService(repo repository.ServiceRepository, outbox repository.OutboxRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, outbox: outbox, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actorID, businessID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	if req.DepositRequired && req.DepositAmountPence <= 0 {
		return nil, errors.BadRequest("deposit amount is required when deposit is enabled", nil)
	}

	svc := &model.Service{
		Base:               model.Base{ID: uuid.New()},
		BusinessID:         businessID,
		Name:               req.Name,
		Description:        req.Description,
		DurationMinutes:    req.DurationMinutes,
		PricePence:         req.PricePence,
		DepositRequired:    req.DepositRequired,
		DepositAmountPence: req.DepositAmountPence,
		Status:             model.ServiceStatusActive,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.emitChange(ctx, svc, "created")
	s.auditor.Log(ctx, actorID, businessID, "create", "service", svc.ID, &audit.LogOptions{Changes: svc})
	return svc, nil
}

func (s *Service) Get(ctx context.Context, businessID, id uuid.UUID) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("service", err)
	}
	if svc.BusinessID != businessID {
		return nil, errors.NotFound("service", nil)
	}
	return svc, nil
}

func (s *Service) Update(ctx context.Context, actorID, businessID, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.PricePence != nil {
		svc.PricePence = *req.PricePence
	}
	if req.DepositRequired != nil {
		svc.DepositRequired = *req.DepositRequired
	}
	if req.DepositAmountPence != nil {
		svc.DepositAmountPence = *req.DepositAmountPence
	}
	if req.Status != nil {
		svc.Status = model.ServiceStatus(*req.Status)
	}

	if svc.DepositRequired && svc.DepositAmountPence <= 0 {
		return nil, errors.BadRequest("deposit amount is required when deposit is enabled", nil)
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.emitChange(ctx, svc, "updated")
	s.auditor.Log(ctx, actorID, businessID, "update", "service", id, &audit.LogOptions{Changes: req})
	return svc, nil
}

// Delete soft-deletes; existing bookings keep their line details.
func (s *Service) Delete(ctx context.Context, actorID, businessID, id uuid.UUID) error {
	svc, err := s.Get(ctx, businessID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.emitChange(ctx, svc, "deleted")
	s.auditor.Log(ctx, actorID, businessID, "delete", "service", id, nil)
	return nil
}

func (s *Service) List(ctx context.Context, businessID uuid.UUID, includeArchived bool) ([]*model.Service, error) {
	return s.repo.List(ctx, businessID, includeArchived)
}

func (s *Service) ListByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]*model.Service, error) {
	return s.repo.ListByIDs(ctx, businessID, ids)
}

func (s *Service) emitChange(ctx context.Context, svc *model.Service, change string) {
	payload, err := json.Marshal(map[string]interface{}{
		"service_id":  svc.ID,
		"business_id": svc.BusinessID,
		"change":      change,
	})
	if err != nil {
		return
	}
	s.outbox.Create(ctx, &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: model.EventServiceChanged,
		Payload:   payload,
	})
}
