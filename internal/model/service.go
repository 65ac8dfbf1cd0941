package model

import (
	"github.com/google/uuid"
)

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusArchived ServiceStatus = "archived"
)

// Service is one bookable offering. Monetary values are integer pence.
type Service struct {
	Base
	BusinessID         uuid.UUID     `db:"business_id" json:"business_id"`
	Name               string        `db:"name" json:"name"`
	Description        string        `db:"description" json:"description,omitempty"`
	DurationMinutes    int           `db:"duration_minutes" json:"duration_minutes"`
	PricePence         int64         `db:"price_pence" json:"price_pence"`
	DepositRequired    bool          `db:"deposit_required" json:"deposit_required"`
	DepositAmountPence int64         `db:"deposit_amount_pence" json:"deposit_amount_pence"`
	Status             ServiceStatus `db:"status" json:"status"`
}

type CreateServiceRequest struct {
	Name               string `json:"name" binding:"required,max=200"`
	Description        string `json:"description" binding:"max=2000"`
	DurationMinutes    int    `json:"duration_minutes" binding:"required,gt=0"`
	PricePence         int64  `json:"price_pence" binding:"min=0"`
	DepositRequired    bool   `json:"deposit_required"`
	DepositAmountPence int64  `json:"deposit_amount_pence" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name               *string `json:"name" binding:"omitempty,max=200"`
	Description        *string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes    *int    `json:"duration_minutes" binding:"omitempty,gt=0"`
	PricePence         *int64  `json:"price_pence" binding:"omitempty,min=0"`
	DepositRequired    *bool   `json:"deposit_required"`
	DepositAmountPence *int64  `json:"deposit_amount_pence" binding:"omitempty,min=0"`
	Status             *string `json:"status" binding:"omitempty,oneof=active archived"`
}
