package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}

	BusinessRepository interface {
		Create(ctx context.Context, business *model.Business) error
		Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
		GetBySlug(ctx context.Context, slug string) (*model.Business, error)
		Update(ctx context.Context, business *model.Business) error
		GetAvailability(ctx context.Context, businessID uuid.UUID) ([]*model.AvailabilityRule, error)
		ReplaceAvailability(ctx context.Context, businessID uuid.UUID, rules []*model.AvailabilityRule) error
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, businessID uuid.UUID, includeArchived bool) ([]*model.Service, error)
		ListByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]*model.Service, error)
	}

	TeamMemberRepository interface {
		Create(ctx context.Context, member *model.TeamMember) error
		Get(ctx context.Context, id uuid.UUID) (*model.TeamMember, error)
		Update(ctx context.Context, member *model.TeamMember) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, businessID uuid.UUID) ([]*model.TeamMember, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, booking *model.Booking) error
		// CreateBatch inserts all bookings in one transaction with
		// conflict checks; either every line is created or none.
		CreateBatch(ctx context.Context, bookings []*model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		Update(ctx context.Context, booking *model.Booking) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, businessID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error)
		ListBetween(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]*model.Booking, error)
		// BusyIntervals returns [start,end) spans of non-terminal bookings,
		// optionally narrowed to one team member.
		BusyIntervals(ctx context.Context, businessID uuid.UUID, teamMemberID *uuid.UUID, from, to time.Time) ([]model.BusyInterval, error)
		CheckConflict(ctx context.Context, businessID uuid.UUID, teamMemberID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
		ListStartingBetween(ctx context.Context, from, to time.Time, status model.BookingStatus) ([]*model.Booking, error)
	}

	CustomerRepository interface {
		UpsertByEmail(ctx context.Context, customer *model.Customer) error
		Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
		List(ctx context.Context, businessID uuid.UUID, filters *model.CustomerFilters) ([]*model.Customer, error)
	}

	ConversationRepository interface {
		FindOrCreate(ctx context.Context, businessID, customerID uuid.UUID) (*model.Conversation, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
		List(ctx context.Context, businessID uuid.UUID) ([]*model.Conversation, error)
		ListMessages(ctx context.Context, conversationID uuid.UUID, since *time.Time) ([]*model.Message, error)
		CreateMessage(ctx context.Context, message *model.Message) error
		MarkRead(ctx context.Context, conversationID uuid.UUID, sender model.MessageSender) error
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Update(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		ListFeed(ctx context.Context, businessID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error)
		MarkRead(ctx context.Context, businessID, id uuid.UUID) error
		MarkAllRead(ctx context.Context, businessID uuid.UUID) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status string, errMsg *string) error
	}

	AuditRepository interface {
		Create(ctx context.Context, log *model.AuditLog) error
		List(ctx context.Context, businessID uuid.UUID, limit int) ([]*model.AuditLog, error)
		Cleanup(ctx context.Context, before time.Time) (int64, error)
	}

	AnalyticsRepository interface {
		CountByStatus(ctx context.Context, businessID uuid.UUID, from, to time.Time) (map[string]int, error)
		Revenue(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int64, error)
		TopServices(ctx context.Context, businessID uuid.UUID, from, to time.Time, limit int) ([]model.ServiceBreakdown, error)
		CountNewCustomers(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int, error)
	}
)
