package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

const (
	recoveryTokenTTL   = 5 * time.Minute
	activationTokenTTL = 24 * time.Hour

	minUsernameLength = 3
	minPasswordLength = 8
)

// UserServiceConfig carries the registration policy knobs.
type UserServiceConfig struct {
	// ActivationRequired gates whether fresh accounts start disabled and
	// need an emailed activation link.
	ActivationRequired bool
	// ActivationBaseURL prefixes the activation link put into the email.
	ActivationBaseURL string
}

type userService struct {
	userRepo  ports.UserRepository
	tokenRepo ports.RecoveryTokenRepository
	hasher    ports.PasswordHasher
	notifier  ports.EmailNotifier
	tokenGen  ports.TokenGenerator
	clock     ports.Clock
	cfg       UserServiceConfig
}

func NewUserService(
	userRepo ports.UserRepository,
	tokenRepo ports.RecoveryTokenRepository,
	hasher ports.PasswordHasher,
	notifier ports.EmailNotifier,
	tokenGen ports.TokenGenerator,
	clock ports.Clock,
	cfg UserServiceConfig,
) ports.UserService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		notifier:  notifier,
		tokenGen:  tokenGen,
		clock:     clock,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username %q: %w", username, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: user with e-mail %q already exists", domain.ErrAlreadyExists, username)
	}

	hash, err := s.hasher.Encode(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Password: hash,
		Enabled:  !s.cfg.ActivationRequired,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.cfg.ActivationRequired {
		token, err := s.createToken(ctx, user, activationTokenTTL)
		if err != nil {
			return nil, err
		}
		user.ActivationToken = token.Token
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to store activation token: %w", err)
		}

		body := "Open this link to activate your account: " +
			s.cfg.ActivationBaseURL + "/users/activate?token=" + token.Token
		if err := s.notifier.Send(user.Username, "Activate your account", body); err != nil {
			// Account and token are already committed; the email is
			// best-effort and reported, never rolled back.
			return user, fmt.Errorf("%w: %v", domain.ErrSendingEmail, err)
		}
	}

	return user, nil
}

// Activate consumes an activation token: the account is enabled and the
// token deleted as the final step. A token past its expiration is
// rejected the same way as a missing one, so a sweep racing this call
// cannot both "succeed".
func (s *userService) Activate(ctx context.Context, token string) error {
	recovery, err := s.requireLiveToken(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, recovery.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user for token: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: account for this activation link no longer exists", domain.ErrExpiredToken)
	}

	user.Enabled = true
	user.ActivationToken = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to enable user %q: %w", user.Username, err)
	}

	if err := s.tokenRepo.Delete(ctx, recovery.ID); err != nil {
		return fmt.Errorf("failed to delete activation token: %w", err)
	}

	return nil
}

func (s *userService) Update(ctx context.Context, username string, input ports.UserUpdateInput) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: tried to update user without a username", domain.ErrInvalidInput)
	}

	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Encode(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %q: %w", username, err)
	}

	return user, nil
}

func (s *userService) SendRecoveryToken(ctx context.Context, username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}

	user, err := s.requireUser(ctx, username)
	if err != nil {
		return err
	}

	token, err := s.createToken(ctx, user, recoveryTokenTTL)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your recovery token is: %s", token.Token)
	if err := s.notifier.Send(user.Username, "Your recovery token", body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSendingEmail, err)
	}

	return nil
}

func (s *userService) ResetPassword(ctx context.Context, input ports.ResetPasswordInput) error {
	if err := validateUsername(input.Username); err != nil {
		return err
	}
	if err := validatePassword(input.Password); err != nil {
		return err
	}

	recovery, err := s.requireLiveToken(ctx, input.Token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, recovery.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user for token: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: account for this recovery token no longer exists", domain.ErrExpiredToken)
	}

	hash, err := s.hasher.Encode(input.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user %q: %w", user.Username, err)
	}

	if err := s.tokenRepo.Delete(ctx, recovery.ID); err != nil {
		return fmt.Errorf("failed to delete recovery token: %w", err)
	}

	return nil
}

// Delete soft-deletes the account by scrubbing its identifying fields
// instead of removing the row, preserving referential history for the
// user's recipes and comments.
func (s *userService) Delete(ctx context.Context, username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}

	user, err := s.requireUser(ctx, username)
	if err != nil {
		return err
	}

	user.Username = ""
	user.FirstName = "Account"
	user.LastName = "Removed"
	user.Password = ""
	user.Enabled = false

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to scrub user %q: %w", username, err)
	}

	subject := "Your account has been deleted"
	body := "Your account has been deleted through the application."
	if err := s.notifier.Send(username, subject, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSendingEmail, err)
	}

	return nil
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with id %s", domain.ErrNotFound, id)
	}
	return user, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.requireUser(ctx, username)
}

func (s *userService) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

func (s *userService) createToken(ctx context.Context, user *domain.User, ttl time.Duration) (*domain.RecoveryToken, error) {
	token := &domain.RecoveryToken{
		ID:        uuid.New(),
		Token:     s.tokenGen.Generate(),
		UserID:    user.ID,
		ExpiresAt: s.clock.Now().Add(ttl),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to create recovery token: %w", err)
	}
	return token, nil
}

// requireLiveToken loads a token and rejects it when missing, already
// consumed or past its expiration. A loser of the consume/sweep race
// finds the token gone and reports it expired, whichever path won.
func (s *userService) requireLiveToken(ctx context.Context, token string) (*domain.RecoveryToken, error) {
	recovery, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if recovery == nil {
		return nil, domain.ErrExpiredToken
	}
	if recovery.ExpiresAt.Before(s.clock.Now()) {
		return nil, domain.ErrExpiredToken
	}
	return recovery, nil
}

func (s *userService) requireUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with username %q", domain.ErrNotFound, username)
	}
	return user, nil
}

func validateUsername(username string) error {
	if len(strings.TrimSpace(username)) < minUsernameLength {
		return fmt.Errorf("%w: provided username is too short", domain.ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: provided password is too short", domain.ErrInvalidInput)
	}
	return nil
}
