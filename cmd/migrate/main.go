package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"blog/internal/config"
	"blog/internal/database"
	"blog/internal/logger"
)

func main() {
	cfg, err := config.LoadMigration()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	err = database.Migrate(ctx, cfg.Database, log)
	cancel()
	if err != nil {
		log.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}
