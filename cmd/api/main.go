package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/config"
	"github.com/pageza/profilsaya/backend/internal/database"
	"github.com/pageza/profilsaya/backend/internal/logging"
	"github.com/pageza/profilsaya/backend/internal/router"
	"github.com/pageza/profilsaya/backend/internal/server"
	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/theme"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(ctx, db, logger); err != nil {
		return err
	}

	// Redis backs the theme snapshot cache and the rate limiters. Without it
	// snapshots live in process memory and rate limiting is skipped.
	var (
		redisClient *redis.Client
		snapshots   theme.SnapshotStore
	)
	if redisClient, err = database.NewRedisClient(ctx, cfg, logger); err != nil {
		logger.Warn("redis unavailable, caching theme edits in memory", zap.Error(err))
		redisClient = nil
		snapshots = service.NewMemoryThemeCache(cfg.ThemeSnapshotTTL)
	} else {
		defer func() { _ = redisClient.Close() }()
		snapshots = service.NewRedisThemeCache(redisClient, cfg.ThemeSnapshotTTL)
	}

	var avatars service.IAvatarService
	s3Config, err := cfg.NewS3Config(ctx)
	switch {
	case err == nil:
		avatars = service.NewAvatarService(s3Config, logger)
	case errors.Is(err, config.ErrStorageDisabled):
		logger.Info("avatar uploads disabled, no bucket configured")
	default:
		logger.Warn("avatar storage unavailable", zap.Error(err))
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, logger)
	profileService := service.NewProfileService(db, logger)
	themeService := service.NewThemeService(snapshots, profileService, logger)

	handler := router.SetupRouter(router.Dependencies{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    redisClient,
		Auth:     authService,
		Profiles: profileService,
		Themes:   themeService,
		Avatars:  avatars,
	})
	srv := server.New(cfg, handler, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
