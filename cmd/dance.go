package main

import (
	"context"
	"fmt"
	"io"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/desertthunder/bop/internal/ui"
	"github.com/urfave/cli/v3"
)

// Dance opens the interactive terminal stage.
func (r *Runner) Dance(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)
	if moves := cmd.String("moves"); moves != "" {
		config.Engine.Choreography = moves
	}

	// Redirect logs away from the terminal before the TUI takes it over
	if logPath := cmd.String("log-file"); logPath != "" {
		fileLogger, closeLog, err := shared.NewFileLogger(logPath)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer closeLog()
		r.SetLogger(fileLogger)
	} else {
		r.SetLogger(shared.NewLogger(io.Discard))
	}

	db, grid, err := r.openLibrary(config)
	var source models.TrackSource
	if err != nil {
		r.logger.Warn("library unavailable, dancing without track data", "error", err)
	} else {
		defer db.Close()
		source = grid
	}

	dancer, err := r.buildDancer(config, source, r.buildArtwork(config, db), int64(cmd.Int("seed")), cmd.Float("bpm"), cmd.Int("fps"))
	if err != nil {
		return err
	}

	if err := dancer.Start(); err != nil {
		return fmt.Errorf("failed to start dancer: %w", err)
	}
	defer dancer.Stop()

	return ui.Run(dancer, grid)
}
