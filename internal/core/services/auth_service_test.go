package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedzonko/recipes-api/internal/core/domain"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.UserRepo, fakeHasher{}, env.Clock, "test-secret")
}

func TestLoginIssuesSignedToken(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	user := env.mustRegister(t, "alice@example.com")
	auth := newAuthService(env)

	signed, err := auth.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "alice@example.com", claims["username"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")
	auth := newAuthService(env)

	_, err := auth.Login(context.Background(), "alice@example.com", "wrongpassword")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	auth := newAuthService(env)

	_, err := auth.Login(context.Background(), "ghost@example.com", "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{ActivationRequired: true})
	env.mustRegister(t, "alice@example.com")
	auth := newAuthService(env)

	_, err := auth.Login(context.Background(), "alice@example.com", "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
