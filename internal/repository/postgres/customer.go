package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
)

// UpsertByEmail inserts the customer or, when the email already exists for
// the business, refreshes name/phone and the last-booking timestamp. The
// caller gets the stored row's ID back on the passed struct either way.
func (r *customerRepository) UpsertByEmail(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (
			id, business_id, name, email, phone, last_booking_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (business_id, email) DO UPDATE
		SET name = EXCLUDED.name,
			phone = COALESCE(EXCLUDED.phone, customers.phone),
			last_booking_at = EXCLUDED.last_booking_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	row := r.db.QueryRowxContext(ctx, query,
		customer.ID,
		customer.BusinessID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.LastBooking,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err := row.Scan(&customer.ID, &customer.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, business_id, name, email, phone, last_booking_at, created_at, updated_at
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
	`
	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, businessID uuid.UUID, filters *model.CustomerFilters) ([]*model.Customer, error) {
	query := `
		SELECT id, business_id, name, email, phone, last_booking_at, created_at, updated_at
		FROM customers
		WHERE business_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{businessID}
	argCount := 2

	if filters != nil && filters.SearchTerm != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+filters.SearchTerm+"%")
		argCount++
	}

	query += " ORDER BY name ASC"

	if filters != nil && filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, filters.PageSize, (page-1)*filters.PageSize)
	}

	var customers []*model.Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}
