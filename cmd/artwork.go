package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/services"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/urfave/cli/v3"
)

// artworkService builds the configured lookup service, with the database
// cache attached when enabled. Unlike the engine wiring, a disabled or
// misconfigured provider is an error here since the user asked for lookups.
func (r *Runner) artworkService(config *shared.Config, db *sql.DB) (*services.ArtworkService, error) {
	provider, err := services.NewProvider(config.Artwork)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: artwork provider is set to \"none\"", shared.ErrProviderUnavailable)
	}

	var cache *library.ArtworkRepository
	if config.Artwork.CacheResults && db != nil {
		cache = library.NewArtworkRepository(db)
	}

	return services.NewArtworkService(provider, cache, config.Artwork.RatePerMinute, r.logger), nil
}

// ArtworkLookup resolves cover art for one artist and title pair.
func (r *Runner) ArtworkLookup(ctx context.Context, cmd *cli.Command) error {
	artist, title := cmd.StringArg("artist"), cmd.StringArg("title")
	if artist == "" || title == "" {
		return fmt.Errorf("%w: artist and title", shared.ErrMissingArgument)
	}

	config := r.reloadConfig(cmd)

	var db *sql.DB
	if config.Artwork.CacheResults {
		opened, _, err := r.openLibrary(config)
		if err != nil {
			r.logger.Warn("cache unavailable, looking up without it", "error", err)
		} else {
			db = opened
			defer db.Close()
		}
	}

	svc, err := r.artworkService(config, db)
	if err != nil {
		return err
	}

	art, err := svc.Artwork(ctx, artist, title)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(art, cmd.Bool("pretty"))
	}

	r.writePlain("✓ %s - %s\n", art.Artist, art.Title)
	r.writePlain("%s\n", art.URL)
	if art.Source != "" {
		r.writePlain("(%dx%d via %s)\n", art.Width, art.Height, art.Source)
	}
	return nil
}

// ArtworkFill backfills missing artwork URLs for library tracks, stopping at
// the flag limit. Provider misses are reported and skipped.
func (r *Runner) ArtworkFill(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := r.artworkService(config, db)
	if err != nil {
		return err
	}

	repo := library.NewTrackRepository(db)
	rows, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	limit := cmd.Int("limit")
	filled, missed := 0, 0

	for _, row := range rows {
		if row.ArtworkURL() != "" {
			continue
		}
		if limit > 0 && filled+missed >= limit {
			break
		}

		art, err := svc.Artwork(ctx, row.Artist(), row.Title())
		if err != nil {
			if errors.Is(err, shared.ErrArtworkNotFound) {
				r.writePlain("  no artwork for %s\n", row.Track().String())
				missed++
				continue
			}
			return fmt.Errorf("lookup failed for %s: %w", row.Track().String(), err)
		}

		row.SetArtworkURL(art.URL)
		if err := repo.Update(row); err != nil {
			return fmt.Errorf("failed to save artwork for %s: %w", row.Track().String(), err)
		}

		r.writePlain("✓ %s\n", row.Track().String())
		filled++
	}

	r.writePlainln("Filled %d tracks (%d without artwork)", filled, missed)
	return nil
}
