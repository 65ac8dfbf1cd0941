package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "pending"
	NotificationStatusSent     NotificationStatus = "sent"
	NotificationStatusFailed   NotificationStatus = "failed"
	NotificationStatusRetrying NotificationStatus = "retrying"
)

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelInApp NotificationChannel = "in_app"
)

type NotificationChannel string

// Notification covers both the in-app feed (channel in_app, surfaced by
// GET /notifications) and outbound email.
type Notification struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	BusinessID  uuid.UUID           `db:"business_id" json:"business_id"`
	Channel     NotificationChannel `db:"channel" json:"channel"`
	Subject     string              `db:"subject" json:"subject"`
	Content     string              `db:"content" json:"content"`
	Recipient   string              `db:"recipient" json:"recipient,omitempty"`
	Status      NotificationStatus  `db:"status" json:"status"`
	ReadAt      *time.Time          `db:"read_at" json:"read_at,omitempty"`
	RetryCount  int                 `db:"retry_count" json:"-"`
	LastError   *string             `db:"last_error" json:"-"`
	NextRetryAt *time.Time          `db:"next_retry_at" json:"-"`
	SentAt      *time.Time          `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at" json:"updated_at"`
}

type NotificationEvent struct {
	ID             uuid.UUID `json:"id"`
	NotificationID uuid.UUID `json:"notification_id"`
	BusinessID     uuid.UUID `json:"business_id"`
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
