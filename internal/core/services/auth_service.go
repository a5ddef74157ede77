package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

const accessTokenTTL = 15 * time.Minute

var ErrBadCredentials = errors.New("invalid username or password")

// AuthService authenticates users and issues HS256 access tokens. Token
// verification for incoming requests lives in the HTTP middleware.
type AuthService struct {
	userRepo  ports.UserRepository
	hasher    ports.PasswordHasher
	clock     ports.Clock
	jwtSecret []byte
}

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, clock ports.Clock, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		clock:     clock,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if user == nil {
		return "", ErrBadCredentials
	}
	if !user.Enabled {
		return "", fmt.Errorf("%w: account is not activated", domain.ErrForbidden)
	}
	if !s.hasher.Matches(password, user.Password) {
		return "", ErrBadCredentials
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"exp":      now.Add(accessTokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}
