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

	"github.com/courtside-dev/referee-system/config"
	"github.com/courtside-dev/referee-system/db"
	"github.com/courtside-dev/referee-system/handlers"
	"github.com/courtside-dev/referee-system/middleware"
	"github.com/courtside-dev/referee-system/realtime"
	"github.com/courtside-dev/referee-system/repositories"
	api "github.com/courtside-dev/referee-system/routes"
	"github.com/courtside-dev/referee-system/services"
	"github.com/courtside-dev/referee-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

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

	// Photo storage is optional; without R2 config the upload endpoint
	// responds 503 and everything else works.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, profile photo uploads disabled")
	}

	hub := realtime.NewHub(logger)
	go hub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	assignmentRepo := repositories.NewPostgresAssignmentRepository(dbConn)
	availabilityRepo := repositories.NewPostgresAvailabilityRepository(dbConn)
	notificationRepo := repositories.NewPostgresNotificationRepository(dbConn)

	tokenService := services.NewTokenService(cfg.JWTSecretKey)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	gameService := services.NewGameService(gameRepo)
	notificationService := services.NewNotificationService(notificationRepo, hub, logger)
	assignmentService := services.NewAssignmentService(assignmentRepo, gameRepo, userRepo, notificationService)
	availabilityService := services.NewAvailabilityService(availabilityRepo)
	dashboardService := services.NewDashboardService(userRepo, gameRepo, assignmentRepo)
	logger.Info("services initialized")

	auth := middleware.NewAuth(tokenService, userRepo)

	authHandler := handlers.NewAuthHandler(authService, tokenService)
	userHandler := handlers.NewUserHandler(userService)
	gameHandler := handlers.NewGameHandler(gameService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, tokenService)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		auth,
		authHandler,
		userHandler,
		gameHandler,
		assignmentHandler,
		availabilityHandler,
		notificationHandler,
		dashboardHandler,
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
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
