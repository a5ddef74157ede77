package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jedzonko/recipes-api/internal/core/ports"
	"github.com/jedzonko/recipes-api/internal/logger"
)

// DefaultSweepInterval is how often the background sweep runs unless
// configured otherwise.
const DefaultSweepInterval = 5 * time.Minute

// TokenSweeper reclaims time-expired recovery tokens in the background.
// A token whose window lapsed while its account was never activated
// takes the account down with it; every expired token is deleted either
// way. The sweeper owns no state between passes, so it is idempotent and
// safe to run alongside user-facing activation and reset requests.
type TokenSweeper struct {
	tokenRepo ports.RecoveryTokenRepository
	userRepo  ports.UserRepository
	clock     ports.Clock
	interval  time.Duration
	logger    *logger.Logger
	stop      chan struct{}
	done      chan struct{}
}

func NewTokenSweeper(tokenRepo ports.RecoveryTokenRepository, userRepo ports.UserRepository, clock ports.Clock, interval time.Duration, logger *logger.Logger) *TokenSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &TokenSweeper{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		clock:     clock,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches the periodic sweep loop. It returns immediately; the
// loop runs until Stop is called or ctx is cancelled.
func (s *TokenSweeper) Start(ctx context.Context) {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.Sweep(ctx); err != nil {
					s.logger.Error("token sweep failed", "error", err.Error())
				}
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for the in-flight pass, if any.
func (s *TokenSweeper) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
}

// Sweep runs a single pass over all recovery tokens. Exposed so tests
// and the one-shot binary can trigger a deterministic pass without
// waiting on the ticker.
func (s *TokenSweeper) Sweep(ctx context.Context) error {
	tokens, err := s.tokenRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list recovery tokens: %w", err)
	}

	now := s.clock.Now()
	swept := 0
	for _, token := range tokens {
		if !token.ExpiresAt.Before(now) {
			continue
		}

		user, err := s.userRepo.GetByID(ctx, token.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user for token %s: %w", token.ID, err)
		}
		if user != nil && !user.Enabled {
			// Unused activation token whose window lapsed: the account
			// never came alive, reclaim it entirely.
			if err := s.userRepo.Delete(ctx, user.ID); err != nil {
				return fmt.Errorf("failed to delete never-activated user %s: %w", user.ID, err)
			}
		}

		if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
			return fmt.Errorf("failed to delete expired token %s: %w", token.ID, err)
		}
		swept++
	}

	if swept > 0 {
		s.logger.Info("swept expired recovery tokens", "count", swept)
	}

	return nil
}
