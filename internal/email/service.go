package email

import (
	"context"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to, clientName, businessName, serviceName, startTime string) error
	SendBookingReminder(ctx context.Context, to, clientName, businessName, serviceName, startTime string) error
	SendBookingCancellation(ctx context.Context, to, clientName, businessName, serviceName, reason string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}
