package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/internal/service/audit"
	"github.com/bookline/booking-api/internal/service/notification"
	"github.com/bookline/booking-api/pkg/errors"
	"github.com/bookline/booking-api/pkg/logger"
	"github.com/bookline/booking-api/pkg/metrics"
)

type Service struct {
	repo       repository.BookingRepository
	services   repository.ServiceRepository
	members    repository.TeamMemberRepository
	businesses repository.BusinessRepository
	customers  repository.CustomerRepository
	outbox     repository.OutboxRepository
	notifSvc   notification.Service
	auditor    *audit.Service
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewService(
	repo repository.BookingRepository,
	services repository.ServiceRepository,
	members repository.TeamMemberRepository,
	businesses repository.BusinessRepository,
	customers repository.CustomerRepository,
	outbox repository.OutboxRepository,
	notifSvc notification.Service,
	auditor *audit.Service,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		services:   services,
		members:    members,
		businesses: businesses,
		customers:  customers,
		outbox:     outbox,
		notifSvc:   notifSvc,
		auditor:    auditor,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create books a slot from the owner dashboard. The price and duration are
// snapshotted from the service at booking time.
func (s *Service) Create(ctx context.Context, actorID, businessID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, errors.BadRequest("invalid service ID", err)
	}

	svc, err := s.services.Get(ctx, serviceID)
	if err != nil || svc.BusinessID != businessID {
		return nil, errors.NotFound("service", err)
	}

	var teamMemberID *uuid.UUID
	if req.TeamMemberID != "" {
		id, err := uuid.Parse(req.TeamMemberID)
		if err != nil {
			return nil, errors.BadRequest("invalid team member ID", err)
		}
		member, err := s.members.Get(ctx, id)
		if err != nil || member.BusinessID != businessID {
			return nil, errors.NotFound("team member", err)
		}
		teamMemberID = &id
	}

	booking := &model.Booking{
		Base:            model.Base{ID: uuid.New()},
		BusinessID:      businessID,
		ServiceID:       serviceID,
		TeamMemberID:    teamMemberID,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		StartTime:       req.StartTime,
		DurationMinutes: svc.DurationMinutes,
		Status:          model.BookingStatusPending,
		PricePence:      svc.PricePence,
		Notes:           req.Notes,
	}
	if req.ClientPhone != "" {
		booking.ClientPhone = &req.ClientPhone
	}
	if req.Confirmed {
		booking.Status = model.BookingStatusConfirmed
	}

	conflict, err := s.repo.CheckConflict(ctx, businessID, teamMemberID, booking.StartTime, booking.EndTime(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if conflict {
		s.metrics.BookingConflicts.Inc()
		return nil, errors.Conflict("the requested time overlaps an existing booking", model.ErrBookingConflict)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.BookingsCreated.WithLabelValues("dashboard").Inc()
	s.emitEvent(ctx, model.EventBookingCreated, booking)
	s.notifyClient(ctx, booking, svc.Name, "confirmation")
	s.auditor.Log(ctx, actorID, businessID, "create", "booking", booking.ID, &audit.LogOptions{Changes: booking})

	return booking, nil
}

func (s *Service) Get(ctx context.Context, businessID, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("booking", err)
	}
	if booking.BusinessID != businessID {
		return nil, errors.NotFound("booking", nil)
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context, businessID uuid.UUID, filters *model.BookingFilters) ([]*model.Booking, error) {
	return s.repo.List(ctx, businessID, filters)
}

// Update applies status and assignment changes. Terminal bookings accept
// no further transitions.
func (s *Service) Update(ctx context.Context, actorID, businessID, id uuid.UUID, req *model.UpdateBookingRequest) (*model.Booking, error) {
	booking, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		next := model.BookingStatus(*req.Status)
		if err := validateTransition(booking.Status, next); err != nil {
			return nil, err
		}
		booking.Status = next
	}
	if req.TeamMemberID != nil {
		memberID, err := uuid.Parse(*req.TeamMemberID)
		if err != nil {
			return nil, errors.BadRequest("invalid team member ID", err)
		}
		member, err := s.members.Get(ctx, memberID)
		if err != nil || member.BusinessID != businessID {
			return nil, errors.NotFound("team member", err)
		}

		conflict, err := s.repo.CheckConflict(ctx, businessID, &memberID, booking.StartTime, booking.EndTime(), &booking.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check conflicts: %w", err)
		}
		if conflict {
			s.metrics.BookingConflicts.Inc()
			return nil, errors.Conflict("the team member is busy at that time", model.ErrBookingConflict)
		}
		booking.TeamMemberID = &memberID
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.emitEvent(ctx, model.EventBookingUpdated, booking)
	s.auditor.Log(ctx, actorID, businessID, "update", "booking", id, &audit.LogOptions{Changes: req})
	return booking, nil
}

// Reschedule moves the start time only, keeping service and duration.
// The new slot is conflict-checked excluding the booking itself so a
// drag within its own span succeeds.
func (s *Service) Reschedule(ctx context.Context, actorID, businessID, id uuid.UUID, req *model.RescheduleBookingRequest) (*model.Booking, error) {
	booking, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, errors.BadRequest(fmt.Sprintf("cannot reschedule a %s booking", booking.Status), nil)
	}

	newEnd := req.StartTime.Add(time.Duration(booking.DurationMinutes) * time.Minute)
	conflict, err := s.repo.CheckConflict(ctx, businessID, booking.TeamMemberID, req.StartTime, newEnd, &booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if conflict {
		s.metrics.BookingConflicts.Inc()
		return nil, errors.Conflict("the requested time overlaps an existing booking", model.ErrBookingConflict)
	}

	booking.StartTime = req.StartTime
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	s.emitEvent(ctx, model.EventBookingRescheduled, booking)
	s.auditor.Log(ctx, actorID, businessID, "reschedule", "booking", id, &audit.LogOptions{
		Changes: map[string]interface{}{"start_time": req.StartTime},
	})
	return booking, nil
}

func (s *Service) Cancel(ctx context.Context, actorID, businessID, id uuid.UUID, req *model.CancelBookingRequest) (*model.Booking, error) {
	booking, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, errors.BadRequest(fmt.Sprintf("cannot cancel a %s booking", booking.Status), nil)
	}

	booking.Status = model.BookingStatusCancelled
	if req.Reason != "" {
		booking.CancelReason = &req.Reason
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.emitEvent(ctx, model.EventBookingCancelled, booking)
	s.notifyClient(ctx, booking, "", "cancellation")
	s.auditor.Log(ctx, actorID, businessID, "cancel", "booking", id, &audit.LogOptions{
		Metadata: map[string]interface{}{"reason": req.Reason},
	})
	return booking, nil
}

func validateTransition(from, to model.BookingStatus) error {
	if from == to {
		return nil
	}
	if from.IsTerminal() {
		return errors.BadRequest(fmt.Sprintf("cannot change a %s booking", from), nil)
	}
	switch to {
	case model.BookingStatusConfirmed:
		if from != model.BookingStatusPending {
			return errors.BadRequest(fmt.Sprintf("cannot confirm a %s booking", from), nil)
		}
	case model.BookingStatusCompleted:
		if from != model.BookingStatusConfirmed {
			return errors.BadRequest(fmt.Sprintf("cannot complete a %s booking", from), nil)
		}
	case model.BookingStatusCancelled, model.BookingStatusPending:
		if to == model.BookingStatusPending {
			return errors.BadRequest("cannot move a booking back to pending", nil)
		}
	default:
		return errors.BadRequest(fmt.Sprintf("unknown status %s", to), nil)
	}
	return nil
}

func (s *Service) emitEvent(ctx context.Context, eventType string, booking *model.Booking) {
	payload, err := json.Marshal(booking)
	if err != nil {
		s.logger.Error(err, "failed to marshal booking event")
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
	}); err != nil {
		s.logger.Error(err, "failed to write outbox event", "event_type", eventType)
	}
}

func (s *Service) notifyClient(ctx context.Context, booking *model.Booking, serviceName, kind string) {
	business, err := s.businesses.Get(ctx, booking.BusinessID)
	if err != nil {
		s.logger.Error(err, "failed to load business for notification")
		return
	}

	var subject, content string
	switch kind {
	case "confirmation":
		subject = fmt.Sprintf("Booking confirmed with %s", business.Name)
		content = fmt.Sprintf("Hi %s, your booking for %s on %s is confirmed.",
			booking.ClientName, serviceName, booking.StartTime.Format("Mon 2 Jan 15:04"))
	case "cancellation":
		subject = fmt.Sprintf("Booking cancelled with %s", business.Name)
		content = fmt.Sprintf("Hi %s, your booking on %s has been cancelled.",
			booking.ClientName, booking.StartTime.Format("Mon 2 Jan 15:04"))
	default:
		return
	}

	if err := s.notifSvc.Send(ctx, &model.Notification{
		BusinessID: booking.BusinessID,
		Channel:    model.NotificationChannelEmail,
		Subject:    subject,
		Content:    content,
		Recipient:  booking.ClientEmail,
	}); err != nil {
		s.logger.Error(err, "failed to send client notification")
	}

	if err := s.notifSvc.Send(ctx, &model.Notification{
		BusinessID: booking.BusinessID,
		Channel:    model.NotificationChannelInApp,
		Subject:    subject,
		Content:    fmt.Sprintf("%s: %s", booking.ClientName, subject),
	}); err != nil {
		s.logger.Error(err, "failed to send in-app notification")
	}
}
