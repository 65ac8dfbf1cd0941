package model

import (
	"github.com/google/uuid"
)

// User is a business owner account. The API carries just enough auth to
// guard the owner-facing routes.
type User struct {
	Base
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	BusinessID   *uuid.UUID `db:"business_id" json:"business_id,omitempty"`
	Status       string     `db:"status" json:"status"`
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"required,max=200"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"business_name" binding:"required,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenClaims struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
	Email      string
}
