package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/villastay/internal/config"
	"github.com/joshua-takyi/villastay/internal/connect"
	"github.com/joshua-takyi/villastay/internal/container"
	"github.com/joshua-takyi/villastay/internal/helpers"
	"github.com/joshua-takyi/villastay/internal/models"
	"github.com/joshua-takyi/villastay/internal/routes"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	if err := run(cfg, logger); err != nil {
		logger.Error("villastay API stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Starting villastay API server", "environment", cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := connect.OpenDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := connect.CloseDatabase(db); err != nil {
			logger.Error("Error closing database", "error", err)
		}
	}()

	repo := models.GormNewRepo(db)
	if err := prepareDatabase(repo, cfg.SeedDemoData, logger); err != nil {
		return err
	}

	tokenValidator, err := helpers.NewTokenValidator(cfg.JWTSecret, cfg.JWKSURL, logger)
	if err != nil {
		return fmt.Errorf("token validation: %w", err)
	}
	defer tokenValidator.Close()

	app := container.NewContainer(logger, repo, tokenValidator, cfg.CORSOrigins, cfg.Environment, cfg.WhatsAppNumber)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	return nil
}

// prepareDatabase migrates the schema and, when asked, loads the demo villas into an empty store.
func prepareDatabase(repo *models.GormRepo, seed bool, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if !seed {
		return nil
	}
	seeded, err := repo.SeedDemoData(ctx)
	if err != nil {
		// a failed seed leaves a usable, empty store
		logger.Error("Failed to seed demo data", "error", err)
		return nil
	}
	if seeded {
		logger.Info("Demo data seeded")
	}
	return nil
}

func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel, slog.LevelInfo),
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel, slog.LevelDebug),
	}))
}

// parseLevel honours LOG_LEVEL when it asks for something other than the default "info".
func parseLevel(raw string, fallback slog.Level) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return fallback
}
