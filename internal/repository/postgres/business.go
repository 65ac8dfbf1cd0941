package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookline/booking-api/internal/model"
)

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	query := `
		INSERT INTO businesses (
			id, owner_id, name, slug, description, phone,
			timezone, currency, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		business.ID,
		business.OwnerID,
		business.Name,
		business.Slug,
		business.Description,
		business.Phone,
		business.Timezone,
		business.Currency,
		business.Status,
		business.CreatedAt,
		business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, owner_id, name, slug, description, phone,
			   timezone, currency, status, created_at, updated_at
		FROM businesses
		WHERE id = $1 AND deleted_at IS NULL
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) GetBySlug(ctx context.Context, slug string) (*model.Business, error) {
	query := `
		SELECT id, owner_id, name, slug, description, phone,
			   timezone, currency, status, created_at, updated_at
		FROM businesses
		WHERE slug = $1 AND deleted_at IS NULL
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, slug); err != nil {
		return nil, fmt.Errorf("failed to get business by slug: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	query := `
		UPDATE businesses
		SET name = $1, description = $2, phone = $3, timezone = $4,
			currency = $5, status = $6, updated_at = $7
		WHERE id = $8
	`
	business.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		business.Name,
		business.Description,
		business.Phone,
		business.Timezone,
		business.Currency,
		business.Status,
		business.UpdatedAt,
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("business not found")
	}
	return nil
}

func (r *businessRepository) GetAvailability(ctx context.Context, businessID uuid.UUID) ([]*model.AvailabilityRule, error) {
	query := `
		SELECT business_id, weekday, enabled, start_min, end_min
		FROM availability_rules
		WHERE business_id = $1
		ORDER BY weekday ASC
	`
	var rules []*model.AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return rules, nil
}

// ReplaceAvailability swaps the whole weekly table in one transaction so
// readers never see a partial week.
func (r *businessRepository) ReplaceAvailability(ctx context.Context, businessID uuid.UUID, rules []*model.AvailabilityRule) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM availability_rules WHERE business_id = $1`, businessID); err != nil {
			return fmt.Errorf("failed to clear availability: %w", err)
		}

		query := `
			INSERT INTO availability_rules (business_id, weekday, enabled, start_min, end_min)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, rule := range rules {
			if _, err := tx.ExecContext(ctx, query,
				businessID, rule.Weekday, rule.Enabled, rule.StartMin, rule.EndMin); err != nil {
				return fmt.Errorf("failed to insert availability rule: %w", err)
			}
		}
		return nil
	})
}
