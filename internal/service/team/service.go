package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/internal/service/audit"
	"github.com/bookline/booking-api/pkg/errors"
)

type Service struct {
	repo    repository.TeamMemberRepository
	auditor *audit.Service
}

func NewService(repo repository.TeamMemberRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actorID, businessID uuid.UUID, req *model.CreateTeamMemberRequest) (*model.TeamMember, error) {
	member := &model.TeamMember{
		Base:       model.Base{ID: uuid.New()},
		BusinessID: businessID,
		Name:       req.Name,
		Email:      req.Email,
		ColorTag:   req.ColorTag,
		Role:       req.Role,
		Status:     model.TeamMemberStatusActive,
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	s.auditor.Log(ctx, actorID, businessID, "create", "team_member", member.ID, &audit.LogOptions{Changes: member})
	return member, nil
}

func (s *Service) Get(ctx context.Context, businessID, id uuid.UUID) (*model.TeamMember, error) {
	member, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("team member", err)
	}
	if member.BusinessID != businessID {
		return nil, errors.NotFound("team member", nil)
	}
	return member, nil
}

func (s *Service) Update(ctx context.Context, actorID, businessID, id uuid.UUID, req *model.UpdateTeamMemberRequest) (*model.TeamMember, error) {
	member, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.ColorTag != nil {
		member.ColorTag = *req.ColorTag
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.Status != nil {
		member.Status = model.TeamMemberStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}

	s.auditor.Log(ctx, actorID, businessID, "update", "team_member", id, &audit.LogOptions{Changes: req})
	return member, nil
}

// Delete soft-deletes; past bookings keep their assignment.
func (s *Service) Delete(ctx context.Context, actorID, businessID, id uuid.UUID) error {
	if _, err := s.Get(ctx, businessID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	s.auditor.Log(ctx, actorID, businessID, "delete", "team_member", id, nil)
	return nil
}

func (s *Service) List(ctx context.Context, businessID uuid.UUID) ([]*model.TeamMember, error) {
	return s.repo.List(ctx, businessID)
}
