package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookline/booking-api/internal/model"
	"github.com/bookline/booking-api/internal/repository"
	"github.com/bookline/booking-api/pkg/auth"
	"github.com/bookline/booking-api/pkg/errors"
)

type Service struct {
	users      repository.UserRepository
	businesses repository.BusinessRepository
	tokens     auth.TokenService
}

func NewService(users repository.UserRepository, businesses repository.BusinessRepository, tokens auth.TokenService) *Service {
	return &Service{
		users:      users,
		businesses: businesses,
		tokens:     tokens,
	}
}

// Register creates the owner account together with its business. Every
// account owns exactly one business, created active with a unique slug.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, *model.Business, error) {
	if existing, _ := s.users.GetByEmail(ctx, req.Email); existing != nil {
		return nil, nil, errors.Conflict("email already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        strings.ToLower(req.Email),
		Name:         req.Name,
		PasswordHash: string(hash),
		Status:       "active",
	}

	business := &model.Business{
		Base:     model.Base{ID: uuid.New()},
		OwnerID:  user.ID,
		Name:     req.BusinessName,
		Slug:     s.uniqueSlug(ctx, req.BusinessName),
		Timezone: "UTC",
		Currency: "GBP",
		Status:   model.BusinessStatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, nil, fmt.Errorf("failed to create business: %w", err)
	}

	user.BusinessID = &business.ID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to link user to business: %w", err)
	}

	return user, business, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.Unauthorized(err)
	}

	return s.issueTokens(user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugStrip.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "business"
	}
	return slug
}

// uniqueSlug appends a short random suffix when the natural slug is taken.
func (s *Service) uniqueSlug(ctx context.Context, name string) string {
	slug := slugify(name)
	if _, err := s.businesses.GetBySlug(ctx, slug); err != nil {
		return slug
	}
	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
}
