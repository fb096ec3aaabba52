package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadOrCreateConfig loads the config at path, writing the embedded template
// first when no file exists there. Any failure falls back to built-in
// defaults so setup always completes.
func (r *Runner) loadOrCreateConfig(path string) *shared.Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			return shared.DefaultConfig()
		}
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return shared.DefaultConfig()
	}
	return config
}

// Setup creates the config file when missing, initializes the database and
// optionally installs the starter library.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	config := r.loadOrCreateConfig(configPath)
	r.config = config
	r.configPath = configPath

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	seeded := 0
	if cmd.Bool("seed") {
		repo := library.NewTrackRepository(db)
		if seeded, err = library.SeedLibrary(repo); err != nil {
			return fmt.Errorf("failed to seed library: %w", err)
		}
	}

	r.writePlain("✓ Setup complete\n")
	r.writePlain("Config: %s\n", configPath)
	r.writePlain("Database: %s\n", config.Database.Path)
	if seeded > 0 {
		r.writePlain("Starter tracks installed: %d\n", seeded)
	}
	return nil
}
