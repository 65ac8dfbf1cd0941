package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
)

const notificationColumns = `
	id, business_id, channel, subject, content, recipient, status,
	read_at, retry_count, last_error, next_retry_at, sent_at, created_at, updated_at
`

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.BusinessID,
		notification.Channel,
		notification.Subject,
		notification.Content,
		notification.Recipient,
		notification.Status,
		notification.ReadAt,
		notification.RetryCount,
		notification.LastError,
		notification.NextRetryAt,
		notification.SentAt,
		notification.CreatedAt,
		notification.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *model.Notification) error {
	query := `
		UPDATE notifications
		SET status = $1, retry_count = $2, last_error = $3,
			next_retry_at = $4, sent_at = $5, updated_at = $6
		WHERE id = $7
	`
	notification.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		notification.Status,
		notification.RetryCount,
		notification.LastError,
		notification.NextRetryAt,
		notification.SentAt,
		notification.UpdatedAt,
		notification.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	var notification model.Notification
	if err := r.db.GetContext(ctx, &notification, query, id); err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &notification, nil
}

// ListFeed returns the in-app feed, newest first.
func (r *notificationRepository) ListFeed(ctx context.Context, businessID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE business_id = $1 AND channel = 'in_app'
	`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	if limit <= 0 {
		limit = 50
	}

	var notifications []*model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, businessID, limit); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, businessID, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read_at = $1, updated_at = $1
		WHERE id = $2 AND business_id = $3 AND read_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id, businessID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, businessID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read_at = $1, updated_at = $1
		WHERE business_id = $2 AND channel = 'in_app' AND read_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), businessID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
