package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookline/booking-api/internal/model"
)

// FindOrCreate returns the thread between a business and a customer,
// creating an empty one on first contact. One thread per pair.
func (r *conversationRepository) FindOrCreate(ctx context.Context, businessID, customerID uuid.UUID) (*model.Conversation, error) {
	query := `
		SELECT c.id, c.business_id, c.customer_id, cu.name AS customer_name,
			   c.last_message, c.last_message_at, c.created_at, c.updated_at,
			   (SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.sender = 'customer' AND m.read_at IS NULL) AS unread_count
		FROM conversations c
		JOIN customers cu ON cu.id = c.customer_id
		WHERE c.business_id = $1 AND c.customer_id = $2
	`
	var conv model.Conversation
	err := r.db.GetContext(ctx, &conv, query, businessID, customerID)
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	insert := `
		INSERT INTO conversations (id, business_id, customer_id, last_message, created_at, updated_at)
		VALUES ($1, $2, $3, '', $4, $4)
	`
	now := time.Now()
	id := uuid.New()
	if _, err := r.db.ExecContext(ctx, insert, id, businessID, customerID, now); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	if err := r.db.GetContext(ctx, &conv, query, businessID, customerID); err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	query := `
		SELECT c.id, c.business_id, c.customer_id, cu.name AS customer_name,
			   c.last_message, c.last_message_at, c.created_at, c.updated_at,
			   (SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.sender = 'customer' AND m.read_at IS NULL) AS unread_count
		FROM conversations c
		JOIN customers cu ON cu.id = c.customer_id
		WHERE c.id = $1
	`
	var conv model.Conversation
	if err := r.db.GetContext(ctx, &conv, query, id); err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepository) List(ctx context.Context, businessID uuid.UUID) ([]*model.Conversation, error) {
	query := `
		SELECT c.id, c.business_id, c.customer_id, cu.name AS customer_name,
			   c.last_message, c.last_message_at, c.created_at, c.updated_at,
			   (SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.sender = 'customer' AND m.read_at IS NULL) AS unread_count
		FROM conversations c
		JOIN customers cu ON cu.id = c.customer_id
		WHERE c.business_id = $1
		ORDER BY c.last_message_at DESC NULLS LAST
	`
	var convs []*model.Conversation
	if err := r.db.SelectContext(ctx, &convs, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, since *time.Time) ([]*model.Message, error) {
	query := `
		SELECT id, conversation_id, sender, body, read_at, created_at
		FROM messages
		WHERE conversation_id = $1
	`
	args := []interface{}{conversationID}
	if since != nil {
		query += ` AND created_at > $2`
		args = append(args, *since)
	}
	query += ` ORDER BY created_at ASC`

	var messages []*model.Message
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// CreateMessage appends to the thread and bumps the conversation preview
// in the same transaction.
func (r *conversationRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		message.CreatedAt = time.Now()

		insert := `
			INSERT INTO messages (id, conversation_id, sender, body, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.ExecContext(ctx, insert,
			message.ID, message.ConversationID, message.Sender, message.Body, message.CreatedAt); err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		update := `
			UPDATE conversations
			SET last_message = $1, last_message_at = $2, updated_at = $2
			WHERE id = $3
		`
		if _, err := tx.ExecContext(ctx, update,
			message.Body, message.CreatedAt, message.ConversationID); err != nil {
			return fmt.Errorf("failed to update conversation: %w", err)
		}
		return nil
	})
}

// MarkRead clears unread state for messages sent by the given side.
func (r *conversationRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, sender model.MessageSender) error {
	query := `
		UPDATE messages
		SET read_at = $1
		WHERE conversation_id = $2 AND sender = $3 AND read_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), conversationID, sender); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
