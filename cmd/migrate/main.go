// Command migrate creates or updates the user tagging tables.
//
// Configuration comes from a .env file in the working directory (or -config)
// and the environment; see internal/config.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"usertags/backend/internal/config"
	"usertags/backend/internal/database"
	"usertags/backend/internal/logger"
)

func main() {
	configPath := flag.String("config", ".", "directory holding the .env file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Writer: os.Stdout,
		Format: cfg.LogFormat,
		Level:  logger.ParseLevel(cfg.LogLevel),
	})

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	appLogger.Info("Database migrated successfully.")
}

func run(cfg *config.Config, log *slog.Logger) error {
	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.Migrate(db)
}
