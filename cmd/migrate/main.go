// Package main runs schema migrations for the outreach engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/infrastructure/migrate"
)

const defaultMigrateSteps = 1

func main() {
	var (
		configPath     string
		migrationsPath string
		steps          int
	)

	flag.StringVar(&configPath, "config", "config.yaml", "Path to config file, used when DATABASE_URL is unset")
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory")
	flag.IntVar(&steps, "steps", defaultMigrateSteps, "Number of migrations to apply for up/down")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}

	args := flag.Args()
	if len(args) == 0 {
		logger.Fatal("Please specify a command: up, down, or version")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" || migrationsPath == "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Fatal("DATABASE_URL is unset and config could not be loaded", zap.Error(err))
		}
		if databaseURL == "" {
			databaseURL = cfg.Database.GetURL()
		}
		if migrationsPath == "" {
			migrationsPath = cfg.Database.MigrationsPath
		}
	}

	runner := migrate.NewRunner(&migrate.Config{
		DatabaseURL:    databaseURL,
		MigrationsPath: migrationsPath,
	}, logger)

	switch command := args[0]; command {
	case "up":
		if err := runner.Steps(steps); err != nil {
			logger.Fatal("Failed to run migrations up", zap.Error(err))
		}

	case "down":
		if err := runner.Steps(-steps); err != nil {
			logger.Fatal("Failed to run migrations down", zap.Error(err))
		}

	case "version":
		version, dirty, err := runner.Version()
		if err != nil {
			logger.Fatal("Failed to get version", zap.Error(err))
		}
		if dirty {
			fmt.Printf("Current version: %d (dirty)\n", version)
		} else {
			fmt.Printf("Current version: %d\n", version)
		}

	default:
		logger.Fatal("Unknown command, use 'up', 'down', or 'version'", zap.String("command", command))
	}
}
