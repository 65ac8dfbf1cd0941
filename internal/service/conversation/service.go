package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/pkg/errors"
	"github.com/bookline/booking-api/pkg/logger"
)

type Service struct {
	repo      repository.ConversationRepository
	customers repository.CustomerRepository
	outbox    repository.OutboxRepository
	logger    *logger.Logger
}

func NewService(repo repository.ConversationRepository, customers repository.CustomerRepository, outbox repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, customers: customers, outbox: outbox, logger: logger}
}

func (s *Service) List(ctx context.Context, businessID uuid.UUID) ([]*model.Conversation, error) {
	return s.repo.List(ctx, businessID)
}

func (s *Service) Get(ctx context.Context, businessID, id uuid.UUID) (*model.Conversation, error) {
	conv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("conversation", err)
	}
	if conv.BusinessID != businessID {
		return nil, errors.NotFound("conversation", nil)
	}
	return conv, nil
}

// Messages returns the thread, optionally only messages after `since` for
// incremental polling. Opening the thread from the business side marks
// customer messages read.
func (s *Service) Messages(ctx context.Context, businessID, id uuid.UUID, since *time.Time, markRead bool) ([]*model.Message, error) {
	if _, err := s.Get(ctx, businessID, id); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(ctx, id, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	if markRead {
		if err := s.repo.MarkRead(ctx, id, model.MessageSenderCustomer); err != nil {
			return nil, fmt.Errorf("failed to mark messages read: %w", err)
		}
	}
	return messages, nil
}

func (s *Service) Post(ctx context.Context, businessID, id uuid.UUID, sender model.MessageSender, req *model.PostMessageRequest) (*model.Message, error) {
	if _, err := s.Get(ctx, businessID, id); err != nil {
		return nil, err
	}

	message := &model.Message{
		ID:             uuid.New(),
		ConversationID: id,
		Sender:         sender,
		Body:           req.Body,
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	s.emitPosted(ctx, message, businessID)
	return message, nil
}

// StartForCustomer finds or opens the thread for a customer.
func (s *Service) StartForCustomer(ctx context.Context, businessID, customerID uuid.UUID) (*model.Conversation, error) {
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil || customer.BusinessID != businessID {
		return nil, errors.NotFound("customer", err)
	}
	conv, err := s.repo.FindOrCreate(ctx, businessID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation: %w", err)
	}
	return conv, nil
}

func (s *Service) emitPosted(ctx context.Context, message *model.Message, businessID uuid.UUID) {
	payload, err := json.Marshal(map[string]interface{}{
		"message_id":      message.ID,
		"conversation_id": message.ConversationID,
		"business_id":     businessID,
		"sender":          message.Sender,
	})
	if err != nil {
		s.logger.Error(err, "failed to marshal message event")
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: model.EventMessagePosted,
		Payload:   payload,
	}); err != nil {
		s.logger.Error(err, "failed to write outbox event", "event_type", model.EventMessagePosted)
	}
}
