package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"omenblog/internal/config"
	"omenblog/internal/database"
	"omenblog/internal/repository"
	"omenblog/internal/service"
	"omenblog/internal/storage"
)

const startupTimeout = 30 * time.Second

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// App connects the database and object storage, then wires repositories and
// services. The admin account from the environment is provisioned here.
func App(cfg *config.Config, logger *slog.Logger) (*database.DB, *service.Service, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting database: %w", err)
	}

	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, fmt.Errorf("initializing MinIO: %w", err)
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, logger)

	if err := services.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		db.CloseDB()
		return nil, nil, err
	}
	if cfg.AdminUsername != "" {
		logger.Info("admin account ready", "username", cfg.AdminUsername)
	}

	return db, services, nil
}
