package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/internal/service/notification"
	"github.com/bookline/booking-api/pkg/logger"
	"github.com/bookline/booking-api/pkg/metrics"
)

// ReminderWorker emails clients ahead of their confirmed bookings. Each
// tick covers the window [now+lead, now+lead+interval), so a booking gets
// exactly one reminder as the window slides past it.
type ReminderWorker struct {
	bookings repository.BookingRepository
	services repository.ServiceRepository
	notifSvc notification.Service
	leadTime time.Duration
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewReminderWorker(
	bookings repository.BookingRepository,
	services repository.ServiceRepository,
	notifSvc notification.Service,
	leadTime, interval time.Duration,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *ReminderWorker {
	return &ReminderWorker{
		bookings: bookings,
		services: services,
		notifSvc: notifSvc,
		leadTime: leadTime,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting reminder worker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Shutting down reminder worker")
			return
		case <-ticker.C:
			if err := w.tick(ctx); err != nil {
				w.logger.Error(err, "Failed to send reminders")
			}
		}
	}
}

func (w *ReminderWorker) tick(ctx context.Context) error {
	from := time.Now().Add(w.leadTime)
	to := from.Add(w.interval)

	bookings, err := w.bookings.ListStartingBetween(ctx, from, to, model.BookingStatusConfirmed)
	if err != nil {
		return fmt.Errorf("failed to list upcoming bookings: %w", err)
	}

	for _, b := range bookings {
		svc, err := w.services.Get(ctx, b.ServiceID)
		if err != nil {
			w.logger.Error(err, "failed to load service for reminder", "booking_id", b.ID.String())
			continue
		}

		err = w.notifSvc.Send(ctx, &model.Notification{
			BusinessID: b.BusinessID,
			Channel:    model.NotificationChannelEmail,
			Subject:    "Upcoming booking reminder",
			Content: fmt.Sprintf("Hi %s, this is a reminder of your booking for %s on %s.",
				b.ClientName, svc.Name, b.StartTime.Format("Mon 2 Jan 15:04")),
			Recipient: b.ClientEmail,
		})
		if err != nil {
			w.logger.Error(err, "failed to schedule reminder", "booking_id", b.ID.String())
			continue
		}
		w.metrics.RemindersScheduled.Inc()
	}

	return nil
}
