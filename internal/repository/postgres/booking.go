package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookline/booking-api/internal/model"
)

const bookingColumns = `
	id, business_id, service_id, team_member_id, customer_id,
	client_name, client_email, client_phone, start_time, duration_minutes,
	status, price_pence, notes, cancel_reason, created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	if err := insertBooking(ctx, r.db, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// CreateBatch inserts a cart's bookings in one transaction, all-or-nothing.
// Every line is conflict-checked against committed rows before any insert
// happens; cart lines sharing a start time never collide with each other.
func (r *bookingRepository) CreateBatch(ctx context.Context, bookings []*model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, booking := range bookings {
			conflict, err := checkConflict(ctx, tx, booking.BusinessID, booking.TeamMemberID,
				booking.StartTime, booking.EndTime(), nil)
			if err != nil {
				return err
			}
			if conflict {
				return fmt.Errorf("booking at %s conflicts with an existing booking: %w",
					booking.StartTime.Format(time.RFC3339), model.ErrBookingConflict)
			}
		}

		for _, booking := range bookings {
			booking.CreatedAt = time.Now()
			booking.UpdatedAt = time.Now()
			if err := insertBooking(ctx, tx, booking); err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}
		}
		return nil
	})
}

func insertBooking(ctx context.Context, e sqlx.ExtContext, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := e.ExecContext(ctx, query,
		booking.ID,
		booking.BusinessID,
		booking.ServiceID,
		booking.TeamMemberID,
		booking.CustomerID,
		booking.ClientName,
		booking.ClientEmail,
		booking.ClientPhone,
		booking.StartTime,
		booking.DurationMinutes,
		booking.Status,
		booking.PricePence,
		booking.Notes,
		booking.CancelReason,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	return err
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET team_member_id = $1, start_time = $2, duration_minutes = $3,
			status = $4, notes = $5, cancel_reason = $6, updated_at = $7
		WHERE id = $8 AND deleted_at IS NULL
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.TeamMemberID,
		booking.StartTime,
		booking.DurationMinutes,
		booking.Status,
		booking.Notes,
		booking.CancelReason,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bookings
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, businessID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE business_id = $1 AND deleted_at IS NULL`
	args := []interface{}{businessID}
	argCount := 2

	if filters != nil {
		if filters.TeamMemberID != nil {
			query += fmt.Sprintf(" AND team_member_id = $%d", argCount)
			args = append(args, *filters.TeamMemberID)
			argCount++
		}
		if filters.ServiceID != nil {
			query += fmt.Sprintf(" AND service_id = $%d", argCount)
			args = append(args, *filters.ServiceID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if !filters.From.IsZero() {
			query += fmt.Sprintf(" AND start_time >= $%d", argCount)
			args = append(args, filters.From)
			argCount++
		}
		if !filters.To.IsZero() {
			query += fmt.Sprintf(" AND start_time < $%d", argCount)
			args = append(args, filters.To)
			argCount++
		}
	}

	query += " ORDER BY start_time ASC"

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListBetween(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE business_id = $1
		AND start_time >= $2 AND start_time < $3
		AND deleted_at IS NULL
		ORDER BY start_time ASC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, businessID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list bookings between: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) BusyIntervals(ctx context.Context, businessID uuid.UUID, teamMemberID *uuid.UUID, from, to time.Time) ([]model.BusyInterval, error) {
	query := `
		SELECT start_time, start_time + (duration_minutes || ' minutes')::interval AS end_time
		FROM bookings
		WHERE business_id = $1
		AND status NOT IN ('cancelled', 'completed')
		AND start_time < $3
		AND start_time + (duration_minutes || ' minutes')::interval > $2
		AND deleted_at IS NULL
	`
	args := []interface{}{businessID, from, to}
	if teamMemberID != nil {
		query += ` AND team_member_id = $4`
		args = append(args, *teamMemberID)
	}
	query += ` ORDER BY start_time ASC`

	var intervals []model.BusyInterval
	if err := r.db.SelectContext(ctx, &intervals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get busy intervals: %w", err)
	}
	return intervals, nil
}

func (r *bookingRepository) CheckConflict(ctx context.Context, businessID uuid.UUID, teamMemberID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	return checkConflict(ctx, r.db, businessID, teamMemberID, start, end, excludeID)
}

// checkConflict looks for a non-terminal booking overlapping [start, end)
// for the same team member. Unassigned bookings only collide with other
// unassigned ones; assigned team members are independent columns.
func checkConflict(ctx context.Context, q sqlx.QueryerContext, businessID uuid.UUID, teamMemberID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE business_id = $1
			AND status NOT IN ('cancelled', 'completed')
			AND start_time < $3
			AND start_time + (duration_minutes || ' minutes')::interval > $2
			AND deleted_at IS NULL
	`
	args := []interface{}{businessID, start, end}
	argCount := 4

	if teamMemberID != nil {
		query += fmt.Sprintf(" AND team_member_id = $%d", argCount)
		args = append(args, *teamMemberID)
		argCount++
	} else {
		query += " AND team_member_id IS NULL"
	}

	if excludeID != nil {
		query += fmt.Sprintf(" AND id != $%d", argCount)
		args = append(args, *excludeID)
	}

	query += ")"

	var hasConflict bool
	if err := sqlx.GetContext(ctx, q, &hasConflict, query, args...); err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}

func (r *bookingRepository) ListStartingBetween(ctx context.Context, from, to time.Time, status model.BookingStatus) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE start_time >= $1 AND start_time < $2
		AND status = $3
		AND deleted_at IS NULL
		ORDER BY start_time ASC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, from, to, status); err != nil {
		return nil, fmt.Errorf("failed to list bookings starting between: %w", err)
	}
	return bookings, nil
}
