package model

import (
	"github.com/google/uuid"
)

type TeamMemberStatus string

const (
	TeamMemberStatusActive   TeamMemberStatus = "active"
	TeamMemberStatusInactive TeamMemberStatus = "inactive"
)

// TeamMember is a bookable staff member. ColorTag keys the calendar
// column colouring on the client.
type TeamMember struct {
	Base
	BusinessID uuid.UUID        `db:"business_id" json:"business_id"`
	Name       string           `db:"name" json:"name"`
	Email      string           `db:"email" json:"email,omitempty"`
	ColorTag   string           `db:"color_tag" json:"color_tag,omitempty"`
	Role       string           `db:"role" json:"role,omitempty"`
	Status     TeamMemberStatus `db:"status" json:"status"`
}

type CreateTeamMemberRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	ColorTag string `json:"color_tag" binding:"omitempty,color_tag"`
	Role     string `json:"role" binding:"max=100"`
}

type UpdateTeamMemberRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Email    *string `json:"email" binding:"omitempty,email"`
	ColorTag *string `json:"color_tag" binding:"omitempty,color_tag"`
	Role     *string `json:"role" binding:"omitempty,max=100"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
