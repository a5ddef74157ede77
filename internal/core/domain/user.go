package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Password        string    `json:"-"`
	Enabled         bool      `json:"enabled"`
	ActivationToken string    `json:"-"`
}

// RecoveryToken backs both short-lived password-recovery tokens and
// longer-lived account-activation tokens. It is deleted on successful
// use or by the sweeper once past ExpiresAt.
type RecoveryToken struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
