package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/schedule"
	apperrors "github.com/bookline/booking-api/pkg/errors"
)

// PublicSlots lists bookable start times for a business on one date. An
// explicit duration wins; otherwise the selected services' total decides
// which starts fit, falling back to a default when nothing is selected.
// Already-booked spans for the chosen team member are excluded.
func (s *Service) PublicSlots(ctx context.Context, business *model.Business, dateStr string, durationMinutes int, serviceIDs []uuid.UUID, teamMemberID *uuid.UUID, band schedule.Band) ([]string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperrors.BadRequest("date must be YYYY-MM-DD", err)
	}

	rules, err := s.businesses.GetAvailability(ctx, business.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	serviceIDs = dedupeIDs(serviceIDs)

	duration := durationMinutes
	if duration <= 0 && len(serviceIDs) > 0 {
		services, err := s.services.ListByIDs(ctx, business.ID, serviceIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load services: %w", err)
		}
		if len(services) != len(serviceIDs) {
			return nil, apperrors.NotFound("service", nil)
		}
		duration = 0
		for _, svc := range services {
			duration += svc.DurationMinutes
		}
	}
	if duration <= 0 {
		duration = schedule.DefaultDurationMinutes
	}

	busyIntervals, err := s.repo.BusyIntervals(ctx, business.ID, teamMemberID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to get busy intervals: %w", err)
	}
	busy := make([]schedule.Interval, len(busyIntervals))
	for i, b := range busyIntervals {
		busy[i] = schedule.Interval{Start: b.Start, End: b.End}
	}

	s.metrics.SlotsRequested.Inc()

	slots := schedule.SlotsExcluding(date, rules, duration, busy)
	return schedule.FilterByBand(slots, band), nil
}

// SubmitPublic books a whole cart in one shot. Every line shares the
// requested start and all are inserted in a single transaction, so a
// conflict on any line rejects the entire cart.
func (s *Service) SubmitPublic(ctx context.Context, business *model.Business, req *model.PublicBookingRequest) (*model.PublicBookingResponse, error) {
	serviceIDs := make([]uuid.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.BadRequest("invalid service ID", err)
		}
		serviceIDs = append(serviceIDs, id)
	}
	// Selecting the same service twice books it once.
	serviceIDs = dedupeIDs(serviceIDs)

	services, err := s.services.ListByIDs(ctx, business.ID, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	if len(services) != len(serviceIDs) {
		return nil, apperrors.NotFound("service", nil)
	}
	byID := make(map[uuid.UUID]*model.Service, len(services))
	for _, svc := range services {
		if svc.Status != model.ServiceStatusActive {
			return nil, apperrors.BadRequest(fmt.Sprintf("service %s is not bookable", svc.Name), nil)
		}
		byID[svc.ID] = svc
	}

	var teamMemberID *uuid.UUID
	if req.TeamMemberID != "" {
		id, err := uuid.Parse(req.TeamMemberID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid team member ID", err)
		}
		member, err := s.members.Get(ctx, id)
		if err != nil || member.BusinessID != business.ID {
			return nil, apperrors.NotFound("team member", err)
		}
		teamMemberID = &id
	}

	quote := schedule.QuoteCart(services)

	now := time.Now()
	customer := &model.Customer{
		Base:        model.Base{ID: uuid.New()},
		BusinessID:  business.ID,
		Name:        req.ClientName,
		Email:       req.ClientEmail,
		LastBooking: &now,
	}
	if req.ClientPhone != "" {
		customer.Phone = &req.ClientPhone
	}
	if err := s.customers.UpsertByEmail(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}

	// Every line shares the cart's start time; the whole visit is one
	// block from the client's point of view.
	bookings := make([]*model.Booking, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc := byID[id]
		b := &model.Booking{
			Base:            model.Base{ID: uuid.New()},
			BusinessID:      business.ID,
			ServiceID:       svc.ID,
			TeamMemberID:    teamMemberID,
			CustomerID:      &customer.ID,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			StartTime:       req.StartTime,
			DurationMinutes: svc.DurationMinutes,
			Status:          model.BookingStatusPending,
			PricePence:      svc.PricePence,
			Notes:           req.Notes,
		}
		if req.ClientPhone != "" {
			b.ClientPhone = &req.ClientPhone
		}
		bookings = append(bookings, b)
	}

	if err := s.repo.CreateBatch(ctx, bookings); err != nil {
		if errors.Is(err, model.ErrBookingConflict) {
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.Conflict("the requested time is no longer available", err)
		}
		return nil, fmt.Errorf("failed to create bookings: %w", err)
	}

	for _, b := range bookings {
		s.metrics.BookingsCreated.WithLabelValues("public").Inc()
		s.emitEvent(ctx, model.EventBookingCreated, b)
	}
	s.notifyClient(ctx, bookings[0], byID[bookings[0].ServiceID].Name, "confirmation")

	return &model.PublicBookingResponse{Bookings: bookings, Quote: quote}, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// QuoteServices prices a cart without booking it.
func (s *Service) QuoteServices(ctx context.Context, businessID uuid.UUID, serviceIDs []uuid.UUID) (*schedule.Quote, error) {
	serviceIDs = dedupeIDs(serviceIDs)
	services, err := s.services.ListByIDs(ctx, businessID, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	if len(services) != len(serviceIDs) {
		return nil, apperrors.NotFound("service", nil)
	}
	quote := schedule.QuoteCart(services)
	return &quote, nil
}
