package model

import (
	"github.com/google/uuid"
)

type BusinessStatus string

const (
	BusinessStatusActive   BusinessStatus = "active"
	BusinessStatusInactive BusinessStatus = "inactive"
)

// Business is one tenant. The slug addresses its public booking surface.
type Business struct {
	Base
	OwnerID     uuid.UUID      `db:"owner_id" json:"owner_id"`
	Name        string         `db:"name" json:"name"`
	Slug        string         `db:"slug" json:"slug"`
	Description string         `db:"description" json:"description,omitempty"`
	Phone       string         `db:"phone" json:"phone,omitempty"`
	Timezone    string         `db:"timezone" json:"timezone"`
	Currency    string         `db:"currency" json:"currency"`
	Status      BusinessStatus `db:"status" json:"status"`
}

// AvailabilityRule is one weekday's opening window, minutes from midnight.
// A business without a rule for a weekday is closed that day.
type AvailabilityRule struct {
	BusinessID uuid.UUID `db:"business_id" json:"-"`
	Weekday    int       `db:"weekday" json:"day"`
	Enabled    bool      `db:"enabled" json:"enabled"`
	StartMin   int       `db:"start_min" json:"start_min"`
	EndMin     int       `db:"end_min" json:"end_min"`
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Timezone    *string `json:"timezone" binding:"omitempty,max=64"`
	Currency    *string `json:"currency" binding:"omitempty,len=3"`
}

// AvailabilityRuleInput is one submitted weekday window. A weekday absent
// from the submission has no rule and is closed; enabled defaults to true
// so the wire shape can stay {day, start_min, end_min}.
type AvailabilityRuleInput struct {
	Day      int   `json:"day" binding:"min=0,max=6"`
	Enabled  *bool `json:"enabled"`
	StartMin int   `json:"start_min" binding:"min=0,max=1440"`
	EndMin   int   `json:"end_min" binding:"min=0,max=1440"`
}

// UpdateAvailabilityRequest replaces the whole weekly table at once.
type UpdateAvailabilityRequest struct {
	Slots []AvailabilityRuleInput `json:"slots" binding:"required,max=7,dive"`
}

// ToRules converts the request into storable rules for a business.
func (r *UpdateAvailabilityRequest) ToRules(businessID uuid.UUID) []*AvailabilityRule {
	rules := make([]*AvailabilityRule, 0, len(r.Slots))
	for _, in := range r.Slots {
		enabled := true
		if in.Enabled != nil {
			enabled = *in.Enabled
		}
		rules = append(rules, &AvailabilityRule{
			BusinessID: businessID,
			Weekday:    in.Day,
			Enabled:    enabled,
			StartMin:   in.StartMin,
			EndMin:     in.EndMin,
		})
	}
	return rules
}

type AvailabilityResponse struct {
	BusinessID uuid.UUID           `json:"business_id"`
	Rules      []*AvailabilityRule `json:"slots"`
}
