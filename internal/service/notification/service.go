package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/email"
	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/pkg/logger"
	"github.com/bookline/booking-api/pkg/messaging"
)

const (
	maxRetries = 3
	retryDelay = 5 * time.Second
)

type Service interface {
	Send(ctx context.Context, notification *model.Notification) error
	Feed(ctx context.Context, businessID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, businessID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, businessID uuid.UUID) error
}

type service struct {
	repo     repository.NotificationRepository
	emailSvc email.Service
	broker   messaging.Broker
	logger   *logger.Logger
}

func NewService(repo repository.NotificationRepository, emailSvc email.Service, broker messaging.Broker, logger *logger.Logger) Service {
	return &service{
		repo:     repo,
		emailSvc: emailSvc,
		broker:   broker,
		logger:   logger,
	}
}

// Send persists the notification and delivers it asynchronously. In-app
// notifications land in the feed immediately; email goes through the SMTP
// sender with retries.
func (s *service) Send(ctx context.Context, notification *model.Notification) error {
	if err := s.validate(notification); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	notification.ID = uuid.New()
	notification.Status = model.NotificationStatusPending

	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	go s.deliver(context.Background(), notification)

	return nil
}

func (s *service) validate(n *model.Notification) error {
	if n.BusinessID == uuid.Nil {
		return fmt.Errorf("business ID is required")
	}
	switch n.Channel {
	case model.NotificationChannelEmail:
		if n.Recipient == "" {
			return fmt.Errorf("email notifications require a recipient")
		}
	case model.NotificationChannelInApp:
	default:
		return fmt.Errorf("unsupported channel: %s", n.Channel)
	}
	if n.Content == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

func (s *service) deliver(ctx context.Context, n *model.Notification) {
	var err error
	switch n.Channel {
	case model.NotificationChannelEmail:
		err = s.sendEmail(ctx, n)
	case model.NotificationChannelInApp:
		err = s.publishInApp(ctx, n)
	}

	now := time.Now()
	if err != nil {
		s.logger.Error(err, "notification delivery failed", "notification_id", n.ID.String())
		n.Status = model.NotificationStatusFailed
		errStr := err.Error()
		n.LastError = &errStr
	} else {
		n.Status = model.NotificationStatusSent
		n.SentAt = &now
	}

	if updateErr := s.repo.Update(ctx, n); updateErr != nil {
		s.logger.Error(updateErr, "failed to update notification status", "notification_id", n.ID.String())
	}
}

func (s *service) sendEmail(ctx context.Context, n *model.Notification) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = s.emailSvc.SendCustom(ctx, n.Recipient, n.Subject, n.Content); err == nil {
			return nil
		}
		if attempt < maxRetries-1 {
			n.Status = model.NotificationStatusRetrying
			n.RetryCount++
			next := time.Now().Add(retryDelay)
			n.NextRetryAt = &next
			if updateErr := s.repo.Update(ctx, n); updateErr != nil {
				s.logger.Error(updateErr, "failed to record retry state")
			}
			time.Sleep(retryDelay)
		}
	}
	return err
}

func (s *service) publishInApp(ctx context.Context, n *model.Notification) error {
	event := model.NotificationEvent{
		ID:             uuid.New(),
		NotificationID: n.ID,
		BusinessID:     n.BusinessID,
		Type:           "notification",
		Content:        n.Content,
		CreatedAt:      time.Now(),
	}
	return s.broker.Publish(ctx, fmt.Sprintf("notifications:%s", n.BusinessID), event)
}

func (s *service) Feed(ctx context.Context, businessID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error) {
	return s.repo.ListFeed(ctx, businessID, unreadOnly, limit)
}

func (s *service) MarkRead(ctx context.Context, businessID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, businessID, id)
}

func (s *service) MarkAllRead(ctx context.Context, businessID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, businessID)
}
