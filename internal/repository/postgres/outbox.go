package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
)

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, event_type, payload, status, retry_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $5)
	`
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	if event.Status == "" {
		event.Status = string(model.OutboxStatusPending)
	}

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.EventType, event.Payload, event.Status, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

// GetPendingEvents locks a batch of due events so concurrent workers never
// pick up the same rows.
func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	query := `
		SELECT id, event_type, payload, status, error_message, retry_count,
			   retry_at, created_at, processed_at, updated_at
		FROM outbox_events
		WHERE status = $1
		AND (retry_at IS NULL OR retry_at <= $2)
		ORDER BY created_at ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	`
	var events []*model.OutboxEvent
	if err := r.db.SelectContext(ctx, &events, query, model.OutboxStatusPending, time.Now(), limit); err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, errMsg *string) error {
	now := time.Now()

	var query string
	var args []interface{}
	switch model.OutboxStatus(status) {
	case model.OutboxStatusProcessed:
		query = `
			UPDATE outbox_events
			SET status = $1, processed_at = $2, updated_at = $2, error_message = NULL
			WHERE id = $3
		`
		args = []interface{}{status, now, id}
	case model.OutboxStatusPending:
		// Re-queued after a transient failure with linear backoff.
		query = `
			UPDATE outbox_events
			SET status = $1, error_message = $2, retry_count = retry_count + 1,
				retry_at = $3, updated_at = $4
			WHERE id = $5
		`
		args = []interface{}{status, errMsg, now.Add(time.Duration(30) * time.Second), now, id}
	default:
		query = `
			UPDATE outbox_events
			SET status = $1, error_message = $2, updated_at = $3
			WHERE id = $4
		`
		args = []interface{}{status, errMsg, now, id}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update outbox event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("outbox event not found")
	}
	return nil
}
