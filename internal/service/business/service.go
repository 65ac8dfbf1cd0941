package business

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/internal/schedule"
	"github.com/bookline/booking-api/internal/service/audit"
	"github.com/bookline/booking-api/pkg/errors"
)

type Service struct {
	repo    repository.BusinessRepository
	auditor *audit.Service
}

func NewService(repo repository.BusinessRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("business", err)
	}
	return business, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*model.Business, error) {
	business, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NotFound("business", err)
	}
	return business, nil
}

func (s *Service) Update(ctx context.Context, actorID, id uuid.UUID, req *model.UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("business", err)
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Description != nil {
		business.Description = *req.Description
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}
	if req.Timezone != nil {
		business.Timezone = *req.Timezone
	}
	if req.Currency != nil {
		business.Currency = *req.Currency
	}

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}

	s.auditor.Log(ctx, actorID, id, "update", "business", id, &audit.LogOptions{Changes: req})
	return business, nil
}

func (s *Service) GetAvailability(ctx context.Context, businessID uuid.UUID) (*model.AvailabilityResponse, error) {
	rules, err := s.repo.GetAvailability(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return &model.AvailabilityResponse{BusinessID: businessID, Rules: rules}, nil
}

// UpdateAvailability replaces the weekly table. Enabled rules must carry a
// valid window; weekdays may appear at most once.
func (s *Service) UpdateAvailability(ctx context.Context, actorID, businessID uuid.UUID, req *model.UpdateAvailabilityRequest) (*model.AvailabilityResponse, error) {
	seen := make(map[int]bool, 7)
	for _, rule := range req.Slots {
		if seen[rule.Day] {
			return nil, errors.BadRequest(fmt.Sprintf("duplicate rule for day %d", rule.Day), nil)
		}
		seen[rule.Day] = true

		enabled := rule.Enabled == nil || *rule.Enabled
		if enabled && (rule.StartMin >= rule.EndMin || rule.EndMin > schedule.MinutesPerDay) {
			return nil, errors.BadRequest(
				fmt.Sprintf("invalid window for day %d: start %d, end %d", rule.Day, rule.StartMin, rule.EndMin), nil)
		}
	}

	rules := req.ToRules(businessID)
	if err := s.repo.ReplaceAvailability(ctx, businessID, rules); err != nil {
		return nil, fmt.Errorf("failed to replace availability: %w", err)
	}

	s.auditor.Log(ctx, actorID, businessID, "update", "availability", businessID, &audit.LogOptions{Changes: req})
	return &model.AvailabilityResponse{BusinessID: businessID, Rules: rules}, nil
}
