package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bookline/booking-api/internal/model"
)

// TokenService issues and validates owner access/refresh tokens.
type TokenService interface {
	GenerateAccessToken(user *model.User) (string, error)
	GenerateRefreshToken(user *model.User) (string, error)
	ValidateToken(token string) (*model.TokenClaims, error)
	ValidateRefreshToken(token string) (*model.TokenClaims, error)
}

type Config struct {
	Secret             string
	RefreshSecret      string
	ExpiryHours        int
	RefreshExpiryHours int
}

type tokenService struct {
	cfg Config
}

func NewTokenService(cfg Config) TokenService {
	return &tokenService{cfg: cfg}
}

type claims struct {
	UserID     string `json:"uid"`
	BusinessID string `json:"bid,omitempty"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

func (s *tokenService) GenerateAccessToken(user *model.User) (string, error) {
	return s.generate(user, s.cfg.Secret, time.Duration(s.cfg.ExpiryHours)*time.Hour)
}

func (s *tokenService) GenerateRefreshToken(user *model.User) (string, error) {
	return s.generate(user, s.cfg.RefreshSecret, time.Duration(s.cfg.RefreshExpiryHours)*time.Hour)
}

func (s *tokenService) generate(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if user.BusinessID != nil {
		c.BusinessID = user.BusinessID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ValidateToken(raw string) (*model.TokenClaims, error) {
	return s.validate(raw, s.cfg.Secret)
}

func (s *tokenService) ValidateRefreshToken(raw string) (*model.TokenClaims, error) {
	return s.validate(raw, s.cfg.RefreshSecret)
}

func (s *tokenService) validate(raw, secret string) (*model.TokenClaims, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	out := &model.TokenClaims{UserID: userID, Email: c.Email}
	if c.BusinessID != "" {
		businessID, err := uuid.Parse(c.BusinessID)
		if err != nil {
			return nil, fmt.Errorf("invalid business ID in token: %w", err)
		}
		out.BusinessID = businessID
	}
	return out, nil
}
