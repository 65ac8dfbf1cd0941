package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookline/booking-api/internal/model"
)

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			id, business_id, name, description, duration_minutes, price_pence,
			deposit_required, deposit_amount_pence, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		service.ID,
		service.BusinessID,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.PricePence,
		service.DepositRequired,
		service.DepositAmountPence,
		service.Status,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, business_id, name, description, duration_minutes, price_pence,
			   deposit_required, deposit_amount_pence, status, created_at, updated_at
		FROM services
		WHERE id = $1 AND deleted_at IS NULL
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3, price_pence = $4,
			deposit_required = $5, deposit_amount_pence = $6, status = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL
	`
	service.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.PricePence,
		service.DepositRequired,
		service.DepositAmountPence,
		service.Status,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}
	return nil
}

// Delete soft-deletes so historical bookings keep their service reference.
func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE services
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}
	return nil
}

func (r *serviceRepository) List(ctx context.Context, businessID uuid.UUID, includeArchived bool) ([]*model.Service, error) {
	query := `
		SELECT id, business_id, name, description, duration_minutes, price_pence,
			   deposit_required, deposit_amount_pence, status, created_at, updated_at
		FROM services
		WHERE business_id = $1 AND deleted_at IS NULL
	`
	if !includeArchived {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY name ASC`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) ListByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]*model.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, business_id, name, description, duration_minutes, price_pence,
			   deposit_required, deposit_amount_pence, status, created_at, updated_at
		FROM services
		WHERE business_id = ? AND id IN (?) AND deleted_at IS NULL
	`, businessID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list services by ids: %w", err)
	}
	return services, nil
}
