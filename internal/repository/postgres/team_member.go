package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
)

func (r *teamMemberRepository) Create(ctx context.Context, member *model.TeamMember) error {
	query := `
		INSERT INTO team_members (
			id, business_id, name, email, color_tag, role, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		member.ID,
		member.BusinessID,
		member.Name,
		member.Email,
		member.ColorTag,
		member.Role,
		member.Status,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}
	return nil
}

func (r *teamMemberRepository) Get(ctx context.Context, id uuid.UUID) (*model.TeamMember, error) {
	query := `
		SELECT id, business_id, name, email, color_tag, role, status, created_at, updated_at
		FROM team_members
		WHERE id = $1 AND deleted_at IS NULL
	`
	var member model.TeamMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return &member, nil
}

func (r *teamMemberRepository) Update(ctx context.Context, member *model.TeamMember) error {
	query := `
		UPDATE team_members
		SET name = $1, email = $2, color_tag = $3, role = $4, status = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`
	member.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		member.Name,
		member.Email,
		member.ColorTag,
		member.Role,
		member.Status,
		member.UpdatedAt,
		member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("team member not found")
	}
	return nil
}

func (r *teamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE team_members
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("team member not found")
	}
	return nil
}

func (r *teamMemberRepository) List(ctx context.Context, businessID uuid.UUID) ([]*model.TeamMember, error) {
	query := `
		SELECT id, business_id, name, email, color_tag, role, status, created_at, updated_at
		FROM team_members
		WHERE business_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`
	var members []*model.TeamMember
	if err := r.db.SelectContext(ctx, &members, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}
