package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/bookline/booking-api/internal/config"
	"github.com/bookline/booking-api/pkg/logger"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

func NewSMTPService(cfg config.SMTPConfig, logger *logger.Logger) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, clientName, businessName, serviceName, startTime string) error {
	subject := fmt.Sprintf("Booking confirmed with %s", businessName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s with %s on %s is confirmed.\n\nSee you then!",
		clientName, serviceName, businessName, startTime)
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendBookingReminder(ctx context.Context, to, clientName, businessName, serviceName, startTime string) error {
	subject := fmt.Sprintf("Reminder: upcoming booking with %s", businessName)
	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder of your booking for %s with %s on %s.",
		clientName, serviceName, businessName, startTime)
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendBookingCancellation(ctx context.Context, to, clientName, businessName, serviceName, reason string) error {
	subject := fmt.Sprintf("Booking cancelled with %s", businessName)
	body := fmt.Sprintf("Hi %s,\n\nYour booking for %s with %s has been cancelled.", clientName, serviceName, businessName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	return s.send(ctx, to, subject, content)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug("email sent", "to", to, "subject", subject)
	return nil
}
