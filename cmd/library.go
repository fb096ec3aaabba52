package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/bop/internal/formatter"
	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
	"github.com/urfave/cli/v3"
)

// trackValues unwraps database rows into the plain DTOs the formatter and
// JSON output take.
func trackValues(rows []*models.LibraryTrack) []models.Track {
	tracks := make([]models.Track, 0, len(rows))
	for _, row := range rows {
		tracks = append(tracks, row.Track())
	}
	return tracks
}

// LibraryImport imports tracks from a CSV export, streaming per-row progress
// to the output while the import runs.
func (r *Runner) LibraryImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: path to a CSV file", shared.ErrMissingArgument)
	}

	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	progress := make(chan library.ImportUpdate, 64)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := library.ImportCSV(path, library.NewTrackRepository(db), progress)
	close(progress)
	<-drained
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.writePlainln("✓ Imported %d tracks (%d skipped, %d failed)", result.Imported, result.Skipped, result.Failed)
	return nil
}

// LibraryList prints library tracks matching the filter flags.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{
		"key":     cmd.String("key"),
		"min_bpm": cmd.Float("min-bpm"),
		"max_bpm": cmd.Float("max-bpm"),
		"search":  cmd.String("search"),
	}

	rows, err := library.NewTrackRepository(db).List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	limit := cmd.Int("limit")
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(trackValues(rows), cmd.Bool("pretty"))
	}

	if len(rows) == 0 {
		r.writePlain("Library is empty. Run 'bop library seed' or import a CSV.\n")
		return nil
	}

	for i, row := range rows {
		line := fmt.Sprintf("%3d. %s", i+1, row.Track().String())
		if tags := formatTags(row.Track()); tags != "" {
			line += "  " + tags
		}
		r.writePlain("%s\n", line)
	}
	r.writePlainln("%d tracks", len(rows))
	return nil
}

// formatTags renders the bracketed key and tempo suffix for list output.
func formatTags(track models.Track) string {
	switch {
	case track.Key != "" && track.BPM > 0:
		return fmt.Sprintf("[%s / %.0f bpm]", track.Key, track.BPM)
	case track.Key != "":
		return fmt.Sprintf("[%s]", track.Key)
	case track.BPM > 0:
		return fmt.Sprintf("[%.0f bpm]", track.BPM)
	}
	return ""
}

// LibrarySeed installs the starter library.
func (r *Runner) LibrarySeed(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	installed, err := library.SeedLibrary(library.NewTrackRepository(db))
	if err != nil {
		return fmt.Errorf("failed to seed library: %w", err)
	}

	r.writePlainln("✓ Installed %d of %d starter tracks", installed, library.SeedCount())
	return nil
}

// LibraryExport writes the library, or one crate, to the chosen format.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	config := r.reloadConfig(cmd)

	db, _, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	var crate *models.Crate
	var tracks []models.Track

	if name := cmd.String("crate"); name != "" {
		crates := library.NewCrateRepository(db)
		if crate, err = crates.GetByName(name); err != nil {
			return fmt.Errorf("failed to load crate %q: %w", name, err)
		}
		rows, err := crates.Tracks(crate.ID())
		if err != nil {
			return fmt.Errorf("failed to load crate tracks: %w", err)
		}
		tracks = trackValues(rows)
	} else {
		rows, err := library.NewTrackRepository(db).List(nil)
		if err != nil {
			return fmt.Errorf("failed to list tracks: %w", err)
		}
		tracks = trackValues(rows)
	}

	output := cmd.String("output")

	switch format := cmd.String("format"); format {
	case "csv":
		result, err := formatter.WriteCSVExport(crate, tracks, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d tracks to %s\n", len(tracks), result.TracksFile)
		r.writePlain("Metadata written to %s\n", result.MetadataFile)
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(crate, tracks, output, cmd.String("image"))
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d tracks to %s\n", len(tracks), result.Directory)
		for _, file := range result.Files {
			r.writePlain("  %s\n", file)
		}
	case "m3u":
		path, err := formatter.WriteM3UExport(crate, tracks, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d tracks to %s\n", len(tracks), path)
	case "text", "txt":
		path, err := formatter.WriteTextExport(crate, tracks, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d tracks to %s\n", len(tracks), path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
	}

	return nil
}
