package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/schedule"
	"github.com/bookline/booking-api/pkg/errors"
)

const (
	ViewDay  = "day"
	ViewWeek = "week"
)

// Calendar builds the day or week view with each booking's pixel
// placement computed server-side. Day view keys columns by team member,
// week view by date, matching how the dashboard lays them out.
func (s *Service) Calendar(ctx context.Context, businessID uuid.UUID, dateStr, view string, gridStartHour int) (*model.CalendarView, error) {
	if view == "" {
		view = ViewDay
	}
	if gridStartHour <= 0 {
		gridStartHour = schedule.DefaultGridStartHour
	}
	if view != ViewDay && view != ViewWeek {
		return nil, errors.BadRequest(fmt.Sprintf("unknown view %q", view), nil)
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, errors.BadRequest("date must be YYYY-MM-DD", err)
	}

	from := date
	to := date.AddDate(0, 0, 1)
	if view == ViewWeek {
		// Weeks start on Monday.
		offset := (int(date.Weekday()) + 6) % 7
		from = date.AddDate(0, 0, -offset)
		to = from.AddDate(0, 0, 7)
	}

	bookings, err := s.repo.ListBetween(ctx, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	entries := make([]*model.CalendarEntry, 0, len(bookings))
	for _, b := range bookings {
		placement := schedule.Place(b.StartTime, b.DurationMinutes,
			gridStartHour, schedule.DefaultHourHeight)

		columnKey := "unassigned"
		if view == ViewWeek {
			columnKey = b.StartTime.Format("2006-01-02")
		} else if b.TeamMemberID != nil {
			columnKey = b.TeamMemberID.String()
		}

		entries = append(entries, &model.CalendarEntry{
			Booking:   b,
			TopPx:     placement.Top,
			HeightPx:  placement.Height,
			ColumnKey: columnKey,
		})
	}

	return &model.CalendarView{
		Date:    dateStr,
		View:    view,
		Entries: entries,
	}, nil
}
