package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/house7784/golf-trip-app/config"
	"github.com/house7784/golf-trip-app/db"
	"github.com/house7784/golf-trip-app/handlers"
	"github.com/house7784/golf-trip-app/live"
	"github.com/house7784/golf-trip-app/repositories"
	api "github.com/house7784/golf-trip-app/routes"
	"github.com/house7784/golf-trip-app/services"
	"github.com/house7784/golf-trip-app/storage"
)

// handicapSweepInterval controls how often event handicaps are checked
// against the seven-day lock window.
const handicapSweepInterval = time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize file uploader", slog.Any("error", err))
		os.Exit(1)
	}

	hub := live.NewHub()
	go hub.Run()
	logger.Info("live update hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	teeTimeRepo := repositories.NewPostgresTeeTimeRepository(dbConn)
	announcementRepo := repositories.NewPostgresAnnouncementRepository(dbConn)
	inviteRepo := repositories.NewPostgresInviteRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	emailService := services.NewEmailService(cfg)
	userService := services.NewUserService(userRepo, uploader)
	eventService := services.NewEventService(eventRepo, participantRepo, uploader, hub)
	teamService := services.NewTeamService(teamRepo, eventRepo, participantRepo, uploader)
	participantService := services.NewParticipantService(participantRepo, eventRepo, teamRepo, logger)
	roundService := services.NewRoundService(roundRepo, eventRepo, participantRepo)
	scoreService := services.NewScoreService(scoreRepo, roundRepo, eventRepo, participantRepo, hub)
	standingsService := services.NewStandingsService(eventRepo, participantRepo, teamRepo, roundRepo, scoreRepo, teeTimeRepo)
	pairingService := services.NewPairingService(teeTimeRepo, roundRepo, eventRepo, participantRepo, teamRepo, hub)
	inviteService := services.NewInviteService(inviteRepo, eventRepo, participantRepo, participantService)
	announcementService := services.NewAnnouncementService(announcementRepo, eventRepo, participantRepo, hub)
	logger.Info("services initialized")

	// Sweep upcoming events and freeze playing handicaps once the lock
	// window opens. Runs once at startup, then hourly.
	go func() {
		ticker := time.NewTicker(handicapSweepInterval)
		defer ticker.Stop()

		sweep := func() {
			locked, err := participantService.AutoLockEventHandicaps(context.Background(), time.Now())
			if err != nil {
				logger.Error("handicap lock sweep failed", slog.Any("error", err))
				return
			}
			if locked > 0 {
				logger.Info("handicap lock sweep completed", slog.Int("locked", locked))
			}
		}

		sweep()
		for range ticker.C {
			sweep()
		}
	}()

	// Purge expired invite tokens daily.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			purged, err := inviteRepo.DeleteExpired(context.Background())
			if err != nil {
				logger.Error("invite cleanup failed", slog.Any("error", err))
				continue
			}
			if purged > 0 {
				logger.Info("expired invites purged", slog.Int64("count", purged))
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, emailService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	teamHandler := handlers.NewTeamHandler(teamService)
	participantHandler := handlers.NewParticipantHandler(participantService)
	roundHandler := handlers.NewRoundHandler(roundService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	teeTimeHandler := handlers.NewTeeTimeHandler(pairingService)
	inviteHandler := handlers.NewInviteHandler(inviteService, eventService, emailService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		userHandler,
		eventHandler,
		teamHandler,
		participantHandler,
		roundHandler,
		scoreHandler,
		standingsHandler,
		teeTimeHandler,
		inviteHandler,
		announcementHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if err := server.Close(); err != nil {
				logger.Error("forced close failed", slog.Any("error", err))
			}
		}
	}

	logger.Info("server stopped")
}
