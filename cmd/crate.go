package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/urfave/cli/v3"
)

// crateView is the serializable shape of a crate for JSON output.
type crateView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	TrackCount  int            `json:"track_count"`
	Tracks      []models.Track `json:"tracks,omitempty"`
}

// CrateCreate creates a named crate.
func (r *Runner) CrateCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: crate name", shared.ErrMissingArgument)
	}

	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	crate := models.NewCrate(0, name, cmd.String("description"))
	if err := library.NewCrateRepository(db).Create(crate); err != nil {
		return fmt.Errorf("failed to create crate: %w", err)
	}

	r.writePlainln("✓ Created crate %q (%s)", crate.Name(), crate.ID())
	return nil
}

// CrateList prints every crate with its track count.
func (r *Runner) CrateList(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := library.NewCrateRepository(db)
	crates, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list crates: %w", err)
	}

	views := make([]crateView, 0, len(crates))
	for _, crate := range crates {
		rows, err := repo.Tracks(crate.ID())
		if err != nil {
			return fmt.Errorf("failed to count crate tracks: %w", err)
		}
		views = append(views, crateView{
			ID:          crate.ID(),
			Name:        crate.Name(),
			Description: crate.Description(),
			TrackCount:  len(rows),
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(views, cmd.Bool("pretty"))
	}

	if len(views) == 0 {
		r.writePlain("No crates yet. Run 'bop crate create <name>'.\n")
		return nil
	}

	for i, view := range views {
		r.writePlain("%3d. %s (%d tracks)\n", i+1, view.Name, view.TrackCount)
		if view.Description != "" {
			r.writePlain("     %s\n", view.Description)
		}
	}
	return nil
}

// CrateShow prints one crate and its tracks in playback order.
func (r *Runner) CrateShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: crate name", shared.ErrMissingArgument)
	}

	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := library.NewCrateRepository(db)
	crate, err := repo.GetByName(name)
	if err != nil {
		return fmt.Errorf("failed to load crate %q: %w", name, err)
	}

	rows, err := repo.Tracks(crate.ID())
	if err != nil {
		return fmt.Errorf("failed to load crate tracks: %w", err)
	}
	tracks := trackValues(rows)

	if cmd.Bool("json") {
		return r.writeJSON(crateView{
			ID:          crate.ID(),
			Name:        crate.Name(),
			Description: crate.Description(),
			TrackCount:  len(tracks),
			Tracks:      tracks,
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(crate.Name())
	if crate.Description() != "" {
		r.writePlain("%s\n\n", crate.Description())
	}

	if len(tracks) == 0 {
		r.writePlain("Empty crate. Run 'bop crate add --crate %q --artist ... --title ...'.\n", crate.Name())
		return nil
	}

	for i, track := range tracks {
		line := fmt.Sprintf("%3d. %s", i+1, track.String())
		if tags := formatTags(track); tags != "" {
			line += "  " + tags
		}
		r.writePlain("%s\n", line)
	}
	r.writePlainln("%d tracks", len(tracks))
	return nil
}

// CrateAdd appends a library track to a crate.
func (r *Runner) CrateAdd(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	crates := library.NewCrateRepository(db)
	crate, err := crates.GetByName(cmd.String("crate"))
	if err != nil {
		return fmt.Errorf("failed to load crate %q: %w", cmd.String("crate"), err)
	}

	track, err := library.NewTrackRepository(db).GetByArtistTitle(cmd.String("artist"), cmd.String("title"))
	if err != nil {
		return fmt.Errorf("failed to find track: %w", err)
	}

	if err := crates.AddTrack(crate.ID(), track.ID()); err != nil {
		return fmt.Errorf("failed to add track to crate: %w", err)
	}

	r.writePlainln("✓ Added %s to %q", track.Track().String(), crate.Name())
	return nil
}

// CrateRemove takes a track out of a crate.
func (r *Runner) CrateRemove(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	crates := library.NewCrateRepository(db)
	crate, err := crates.GetByName(cmd.String("crate"))
	if err != nil {
		return fmt.Errorf("failed to load crate %q: %w", cmd.String("crate"), err)
	}

	track, err := library.NewTrackRepository(db).GetByArtistTitle(cmd.String("artist"), cmd.String("title"))
	if err != nil {
		return fmt.Errorf("failed to find track: %w", err)
	}

	if err := crates.RemoveTrack(crate.ID(), track.ID()); err != nil {
		return fmt.Errorf("failed to remove track from crate: %w", err)
	}

	r.writePlainln("✓ Removed %s from %q", track.Track().String(), crate.Name())
	return nil
}

// CrateDelete soft-deletes a crate, leaving its tracks in the library.
func (r *Runner) CrateDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: crate name", shared.ErrMissingArgument)
	}

	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := library.NewCrateRepository(db)
	crate, err := repo.GetByName(name)
	if err != nil {
		return fmt.Errorf("failed to load crate %q: %w", name, err)
	}

	if err := repo.Delete(crate.ID()); err != nil {
		return fmt.Errorf("failed to delete crate: %w", err)
	}

	r.writePlainln("✓ Deleted crate %q", crate.Name())
	return nil
}
