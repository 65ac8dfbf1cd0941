package model

import "time"

// PublicBookingRequest is one cart submission from the public booking
// page. Every cart line shares StartTime and the whole cart is created
// atomically.
type PublicBookingRequest struct {
	BusinessSlug string    `json:"business_slug" binding:"required"`
	ServiceIDs   []string  `json:"service_ids" binding:"required,min=1,dive,uuid"`
	TeamMemberID string    `json:"team_member_id" binding:"omitempty,uuid"`
	ClientName   string    `json:"client_name" binding:"required,max=200"`
	ClientEmail  string    `json:"client_email" binding:"required,email"`
	ClientPhone  string    `json:"client_phone" binding:"max=32"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	Notes        string    `json:"notes" binding:"max=1000"`
}

type PublicBookingResponse struct {
	Bookings []*Booking  `json:"bookings"`
	Quote    interface{} `json:"quote"`
}

// PublicProfile is the cacheable public view of a business.
type PublicProfile struct {
	Business *Business           `json:"business"`
	Rules    []*AvailabilityRule `json:"availability"`
}
