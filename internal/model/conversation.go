package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageSender string

const (
	MessageSenderBusiness MessageSender = "business"
	MessageSenderCustomer MessageSender = "customer"
)

// Conversation is one support thread between a business and a customer.
// Clients poll the list and the open thread; the server is plain REST.
type Conversation struct {
	Base
	BusinessID    uuid.UUID  `db:"business_id" json:"business_id"`
	CustomerID    uuid.UUID  `db:"customer_id" json:"customer_id"`
	CustomerName  string     `db:"customer_name" json:"customer_name"`
	LastMessage   string     `db:"last_message" json:"last_message,omitempty"`
	LastMessageAt *time.Time `db:"last_message_at" json:"last_message_at,omitempty"`
	UnreadCount   int        `db:"unread_count" json:"unread_count"`
}

type Message struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	ConversationID uuid.UUID     `db:"conversation_id" json:"conversation_id"`
	Sender         MessageSender `db:"sender" json:"sender"`
	Body           string        `db:"body" json:"body"`
	ReadAt         *time.Time    `db:"read_at" json:"read_at,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

type StartConversationRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
}
