package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
)

func (r *analyticsRepository) CountByStatus(ctx context.Context, businessID uuid.UUID, from, to time.Time) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM bookings
		WHERE business_id = $1
		AND start_time >= $2 AND start_time < $3
		AND deleted_at IS NULL
		GROUP BY status
	`
	rows, err := r.db.QueryxContext(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// Revenue counts confirmed and completed bookings only; pending and
// cancelled carry no money.
func (r *analyticsRepository) Revenue(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(price_pence), 0)
		FROM bookings
		WHERE business_id = $1
		AND start_time >= $2 AND start_time < $3
		AND status IN ('confirmed', 'completed')
		AND deleted_at IS NULL
	`
	var revenue int64
	if err := r.db.GetContext(ctx, &revenue, query, businessID, from, to); err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return revenue, nil
}

func (r *analyticsRepository) TopServices(ctx context.Context, businessID uuid.UUID, from, to time.Time, limit int) ([]model.ServiceBreakdown, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `
		SELECT b.service_id, s.name AS service_name,
			   COUNT(*) AS bookings,
			   COALESCE(SUM(b.price_pence) FILTER (WHERE b.status IN ('confirmed', 'completed')), 0) AS revenue_pence
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.business_id = $1
		AND b.start_time >= $2 AND b.start_time < $3
		AND b.deleted_at IS NULL
		GROUP BY b.service_id, s.name
		ORDER BY bookings DESC, revenue_pence DESC
		LIMIT $4
	`
	var breakdown []model.ServiceBreakdown
	if err := r.db.SelectContext(ctx, &breakdown, query, businessID, from, to, limit); err != nil {
		return nil, fmt.Errorf("failed to get top services: %w", err)
	}
	return breakdown, nil
}

func (r *analyticsRepository) CountNewCustomers(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM customers
		WHERE business_id = $1
		AND created_at >= $2 AND created_at < $3
		AND deleted_at IS NULL
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, businessID, from, to); err != nil {
		return 0, fmt.Errorf("failed to count new customers: %w", err)
	}
	return count, nil
}
