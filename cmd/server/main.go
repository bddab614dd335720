package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"spacefun/internal/config"
	"spacefun/internal/database"
	"spacefun/internal/handlers"
	"spacefun/internal/repository"
	"spacefun/internal/security"
	"spacefun/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()
	config.SetupLogging(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	log.Info().Str("type", cfg.DatabaseType).Msg("Database connection established")

	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Migrations completed successfully")

	// Seed bad words filter
	if err := db.SeedBadWords(ctx, cfg.BadWordsURL); err != nil {
		log.Warn().Err(err).Msg("Failed to seed bad words filter")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	wordRepo := repository.NewWordRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("Email disabled")
		emailService = nil
	}
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenDuration)
	authService := service.NewAuthService(userRepo, tokens, db, emailService)
	scoreService := service.NewScoreService(userRepo, emailService)
	wordService := service.NewWordService(wordRepo, cfg.DailySalt)

	if err := wordService.SeedCatalog(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed word catalog")
	}

	// 10 attempts per minute per client on login and register
	limiter := security.NewRateLimiter(ctx, 10, time.Minute)

	router := handlers.NewRouter(handlers.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Words:      handlers.NewWordHandler(wordService),
		Scores:     handlers.NewScoreHandler(scoreService),
		Middleware: handlers.NewMiddleware(authService, limiter),
		DB:         db,
	})

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}
