package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

func strPtr(s string) *string {
	return &s
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})

	_, err := env.Users.Register(context.Background(), ports.RegisterInput{Username: "ab", Password: "password123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.Users.Register(context.Background(), ports.RegisterInput{Username: "alice@example.com", Password: "short"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterTrimsUsernameAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})

	user, err := env.Users.Register(context.Background(), ports.RegisterInput{
		Username: "  alice@example.com  ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Username)
	assert.True(t, user.Enabled)
	assert.NotEqual(t, "password123", user.Password)

	_, err = env.Users.Register(context.Background(), ports.RegisterInput{
		Username: "alice@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRegisterWithActivationStartsDisabled(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{
		ActivationRequired: true,
		ActivationBaseURL:  "http://localhost:8080",
	})

	user := env.mustRegister(t, "alice@example.com")
	assert.False(t, user.Enabled)
	assert.Equal(t, "token-1", user.ActivationToken)

	mail := env.Notifier.Last()
	assert.Equal(t, "alice@example.com", mail.To)
	assert.Contains(t, mail.Body, "http://localhost:8080/users/activate?token=token-1")
}

func TestRegisterReportsEmailFailureButKeepsAccount(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{ActivationRequired: true})
	env.Notifier.Fail = true

	user, err := env.Users.Register(context.Background(), ports.RegisterInput{
		Username: "alice@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSendingEmail)
	require.NotNil(t, user)

	stored, err := env.UserRepo.GetByUsername(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestActivateEnablesAccountAndConsumesToken(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{ActivationRequired: true})
	user := env.mustRegister(t, "alice@example.com")

	ctx := context.Background()
	require.NoError(t, env.Users.Activate(ctx, user.ActivationToken))

	activated, err := env.Users.FindByUsername(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, activated.Enabled)
	assert.Empty(t, activated.ActivationToken)

	// The token is single-use.
	err = env.Users.Activate(ctx, user.ActivationToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestActivateRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{ActivationRequired: true})
	user := env.mustRegister(t, "alice@example.com")

	env.Clock.Advance(25 * time.Hour)

	err := env.Users.Activate(context.Background(), user.ActivationToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)

	stored, err := env.Users.FindByUsername(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, stored.Enabled)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")

	ctx := context.Background()

	updated, err := env.Users.Update(ctx, "alice@example.com", ports.UserUpdateInput{
		FirstName: strPtr("Alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Empty(t, updated.LastName)

	updated, err = env.Users.Update(ctx, "alice@example.com", ports.UserUpdateInput{
		LastName: strPtr("Kowalska"),
		Password: strPtr("newpassword99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "Kowalska", updated.LastName)
	assert.True(t, fakeHasher{}.Matches("newpassword99", updated.Password))
}

func TestUpdateRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")

	_, err := env.Users.Update(context.Background(), "alice@example.com", ports.UserUpdateInput{
		Password: strPtr("short"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResetPasswordFlow(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")

	ctx := context.Background()
	require.NoError(t, env.Users.SendRecoveryToken(ctx, "alice@example.com"))

	mail := env.Notifier.Last()
	assert.Contains(t, mail.Body, "token-1")

	err := env.Users.ResetPassword(ctx, ports.ResetPasswordInput{
		Username: "alice@example.com",
		Token:    "token-1",
		Password: "freshpassword1",
	})
	require.NoError(t, err)

	user, err := env.Users.FindByUsername(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, fakeHasher{}.Matches("freshpassword1", user.Password))

	// The token was consumed by the reset.
	err = env.Users.ResetPassword(ctx, ports.ResetPasswordInput{
		Username: "alice@example.com",
		Token:    "token-1",
		Password: "anotherpassword1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	env.mustRegister(t, "alice@example.com")

	ctx := context.Background()
	require.NoError(t, env.Users.SendRecoveryToken(ctx, "alice@example.com"))

	env.Clock.Advance(6 * time.Minute)

	err := env.Users.ResetPassword(ctx, ports.ResetPasswordInput{
		Username: "alice@example.com",
		Token:    "token-1",
		Password: "freshpassword1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestDeleteScrubsAccount(t *testing.T) {
	env := newTestEnv(t, UserServiceConfig{})
	user := env.mustRegister(t, "alice@example.com")

	ctx := context.Background()
	require.NoError(t, env.Users.Delete(ctx, "alice@example.com"))

	scrubbed, err := env.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, scrubbed.Username)
	assert.Equal(t, "Account", scrubbed.FirstName)
	assert.Equal(t, "Removed", scrubbed.LastName)
	assert.Empty(t, scrubbed.Password)
	assert.False(t, scrubbed.Enabled)

	mail := env.Notifier.Last()
	assert.Equal(t, "Your account has been deleted", mail.Subject)
}
