package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the client record behind public bookings, deduplicated by
// email within a business.
type Customer struct {
	Base
	BusinessID  uuid.UUID  `db:"business_id" json:"business_id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	LastBooking *time.Time `db:"last_booking_at" json:"last_booking_at,omitempty"`
}

type CustomerFilters struct {
	SearchTerm string
	Pagination
}
