package ports

import "time"

// PasswordHasher wraps the password hashing primitive.
type PasswordHasher interface {
	Encode(plaintext string) (string, error)
	Matches(plaintext, hash string) bool
}

// EmailNotifier delivers outbound mail. Failures surface as
// domain.ErrSendingEmail but never roll back already-committed state.
type EmailNotifier interface {
	Send(to, subject, body string) error
}

// TokenGenerator produces globally-unique opaque token strings.
type TokenGenerator interface {
	Generate() string
}

// Clock supplies "now" in the system's fixed reference timezone, injected
// so tests can control time deterministically.
type Clock interface {
	Now() time.Time
}
