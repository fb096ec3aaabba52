package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/server"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the web stage until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

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

	addr := cmd.String("addr")
	if addr == "" {
		addr = config.Server.Addr()
	}

	if cmd.Bool("open") {
		errs := shared.OpenBrowserAfter("http://"+addr, time.Second)
		go func() {
			if err := <-errs; err != nil {
				r.logger.Warn("failed to open browser", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.logger.Info("stage is live", "addr", addr)
	return server.NewDanceServer(dancer, grid, r.logger).Serve(ctx, addr)
}
