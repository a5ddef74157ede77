package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jedzonko/recipes-api/internal/adapters/clock"
	"github.com/jedzonko/recipes-api/internal/adapters/handler/http"
	"github.com/jedzonko/recipes-api/internal/adapters/hasher"
	"github.com/jedzonko/recipes-api/internal/adapters/notifier"
	"github.com/jedzonko/recipes-api/internal/adapters/repository/postgres"
	"github.com/jedzonko/recipes-api/internal/adapters/token"
	"github.com/jedzonko/recipes-api/internal/config"
	"github.com/jedzonko/recipes-api/internal/core/services"
	"github.com/jedzonko/recipes-api/internal/logger"
)

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

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	recipeRepo := postgres.NewRecipeRepository(db)
	ingredientRepo := postgres.NewRecipeIngredientRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	tokenRepo := postgres.NewRecoveryTokenRepository(db)

	clk := clock.New()
	bcrypt := hasher.NewBcrypt()
	mailer := notifier.NewEmailNotifier(cfg.SMTP, log)
	tokenGen := token.NewGenerator()

	userService := services.NewUserService(userRepo, tokenRepo, bcrypt, mailer, tokenGen, clk, services.UserServiceConfig{
		ActivationRequired: cfg.Accounts.RequireActivation,
		ActivationBaseURL:  cfg.Accounts.ActivationBaseURL,
	})
	authService := services.NewAuthService(userRepo, bcrypt, clk, cfg.JWT.Secret)
	productService := services.NewProductService(productRepo, userRepo)
	ingredientService := services.NewIngredientService(productRepo, ingredientRepo)
	ratingService := services.NewRatingService(ratingRepo, recipeRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, recipeRepo, userRepo, clk)
	recipeService := services.NewRecipeService(recipeRepo, commentRepo, userRepo, ingredientService, ratingService, clk)
	searchService := services.NewSearchService(recipeRepo, ratingService)

	sweeper := services.NewTokenSweeper(tokenRepo, userRepo, clk, cfg.Sweep, log)

	handler := http.NewHandler(http.Handlers{
		Auth:    http.NewAuthHandler(authService, userService),
		User:    http.NewUserHandler(userService),
		Product: http.NewProductHandler(productService),
		Recipe:  http.NewRecipeHandler(recipeService, searchService),
		Comment: http.NewCommentHandler(commentService),
		Rating:  http.NewRatingHandler(ratingService),
	}, []byte(cfg.JWT.Secret))
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper.Start(ctx)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("shutdown failed", "error", err)
	}
}
