package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether the status accepts no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	Base
	BusinessID      uuid.UUID     `db:"business_id" json:"business_id"`
	ServiceID       uuid.UUID     `db:"service_id" json:"service_id"`
	TeamMemberID    *uuid.UUID    `db:"team_member_id" json:"team_member_id,omitempty"`
	CustomerID      *uuid.UUID    `db:"customer_id" json:"customer_id,omitempty"`
	ClientName      string        `db:"client_name" json:"client_name"`
	ClientEmail     string        `db:"client_email" json:"client_email"`
	ClientPhone     *string       `db:"client_phone" json:"client_phone,omitempty"`
	StartTime       time.Time     `db:"start_time" json:"start_time"`
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	Status          BookingStatus `db:"status" json:"status"`
	PricePence      int64         `db:"price_pence" json:"price_pence"`
	Notes           string        `db:"notes" json:"notes,omitempty"`
	CancelReason    *string       `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// EndTime is derived; bookings store start plus duration only.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

type CreateBookingRequest struct {
	ServiceID    string    `json:"service_id" binding:"required,uuid"`
	TeamMemberID string    `json:"team_member_id" binding:"omitempty,uuid"`
	ClientName   string    `json:"client_name" binding:"required,max=200"`
	ClientEmail  string    `json:"client_email" binding:"required,email"`
	ClientPhone  string    `json:"client_phone" binding:"max=32"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	Notes        string    `json:"notes" binding:"max=1000"`
	Confirmed    bool      `json:"confirmed"`
}

type UpdateBookingRequest struct {
	Status       *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	TeamMemberID *string `json:"team_member_id" binding:"omitempty,uuid"`
	Notes        *string `json:"notes" binding:"omitempty,max=1000"`
}

// RescheduleBookingRequest moves only the start time; duration and
// service stay untouched (drag-and-drop semantics).
type RescheduleBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// BusyInterval is one occupied [Start, End) span used for conflict checks.
type BusyInterval struct {
	Start time.Time `db:"start_time"`
	End   time.Time `db:"end_time"`
}

type BookingFilters struct {
	TeamMemberID *uuid.UUID
	ServiceID    *uuid.UUID
	Status       BookingStatus
	From         time.Time
	To           time.Time
}

// CalendarEntry is a booking with its computed grid placement for the
// day/week calendar views.
type CalendarEntry struct {
	Booking   *Booking `json:"booking"`
	TopPx     float64  `json:"top_px"`
	HeightPx  float64  `json:"height_px"`
	ColumnKey string   `json:"column_key"`
}

type CalendarView struct {
	Date    string           `json:"date"`
	View    string           `json:"view"`
	Entries []*CalendarEntry `json:"entries"`
}
