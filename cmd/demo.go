package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/urfave/cli/v3"
)

// Demo runs the dancer headless for a fixed stretch and reports the engine
// counters. When no usable library exists it seeds an in-memory one so the
// demo always has key colors to work with.
func (r *Runner) Demo(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, grid, err := r.openLibrary(config)
	if err != nil || grid.RowCount() == 0 {
		if err != nil {
			r.logger.Warn("library unavailable, seeding an in-memory one", "error", err)
		} else {
			db.Close()
			r.logger.Info("library is empty, seeding an in-memory one")
		}
		if db, grid, err = r.demoLibrary(); err != nil {
			return err
		}
	}
	defer db.Close()

	dancer, err := r.buildDancer(config, grid, nil, int64(cmd.Int("seed")), cmd.Float("bpm"), 0)
	if err != nil {
		return err
	}

	if err := dancer.Start(); err != nil {
		return fmt.Errorf("failed to start dancer: %w", err)
	}

	if cmd.Bool("drift") {
		dancer.StartDrift()
	}
	if cmd.Bool("auto") {
		if err := dancer.EnableAutoDrive(); err != nil {
			return err
		}
	}

	seconds := cmd.Int("seconds")
	if seconds <= 0 {
		seconds = 10
	}

	r.logger.Info("dancing", "seconds", seconds, "bpm", dancer.BPM())

	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(seconds) * time.Second):
	}

	if err := dancer.Stop(); err != nil {
		return fmt.Errorf("failed to stop dancer: %w", err)
	}

	stats := dancer.Stats()

	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Demo complete")
	r.writePlain("Clock:    %.1fs\n", stats.Clock)
	r.writePlain("Beats:    %.1f @ %.0f bpm\n", stats.Beats, stats.BPM)
	r.writePlain("Steps:    %d\n", stats.Steps)
	r.writePlain("Pose:     %s (%s)\n", stats.Pose, stats.State)
	r.writePlain("Stages:   %d\n", stats.Stages)
	if stats.Drifting {
		r.writePlain("Drift:    on\n")
	}
	return nil
}

// demoLibrary builds a seeded in-memory track grid for self-contained runs.
func (r *Runner) demoLibrary() (*sql.DB, *library.Grid, error) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := library.NewTrackRepository(db)
	if _, err := library.SeedLibrary(repo); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to seed library: %w", err)
	}

	grid := library.NewGrid(repo)
	if err := grid.Refresh(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load track grid: %w", err)
	}

	return db, grid, nil
}
