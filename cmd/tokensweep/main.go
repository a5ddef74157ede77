package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jedzonko/recipes-api/internal/adapters/clock"
	"github.com/jedzonko/recipes-api/internal/adapters/repository/postgres"
	"github.com/jedzonko/recipes-api/internal/config"
	"github.com/jedzonko/recipes-api/internal/core/services"
	"github.com/jedzonko/recipes-api/internal/logger"
)

// One-shot variant of the in-server sweeper, meant for cron setups where
// the API server runs with TOKEN_SWEEP_INTERVAL disabled.
func main() {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database", "error", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to reach database", "error", err)
	}

	tokenRepo := postgres.NewRecoveryTokenRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sweeper := services.NewTokenSweeper(tokenRepo, userRepo, clock.New(), cfg.Sweep, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Info("starting token sweep")

	if err := sweeper.Sweep(ctx); err != nil {
		log.Fatal("token sweep failed", "error", err)
	}

	log.Info("token sweep completed")
}
