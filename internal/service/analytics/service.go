package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
)

const topServicesLimit = 5

type Service struct {
	repo repository.AnalyticsRepository
}

func NewService(repo repository.AnalyticsRepository) *Service {
	return &Service{repo: repo}
}

// Summary aggregates the dashboard numbers for [from, to).
func (s *Service) Summary(ctx context.Context, businessID uuid.UUID, from, to time.Time) (*model.AnalyticsSummary, error) {
	byStatus, err := s.repo.CountByStatus(ctx, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	revenue, err := s.repo.Revenue(ctx, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	topServices, err := s.repo.TopServices(ctx, businessID, from, to, topServicesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top services: %w", err)
	}

	newCustomers, err := s.repo.CountNewCustomers(ctx, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count new customers: %w", err)
	}

	return &model.AnalyticsSummary{
		From:             from,
		To:               to,
		TotalBookings:    total,
		BookingsByStatus: byStatus,
		RevenuePence:     revenue,
		TopServices:      topServices,
		NewCustomers:     newCustomers,
	}, nil
}
