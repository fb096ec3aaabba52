package library

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/bop/internal/models"
)

// ImportUpdate represents a progress event during a CSV import.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ImportUpdate struct {
	Step    int    // Current row number
	Total   int    // Total data rows in the file
	Message string // Human-readable message for display
}

// ImportResult summarizes a completed CSV import.
type ImportResult struct {
	Imported int // Rows inserted
	Skipped  int // Rows already in the library
	Failed   int // Rows rejected by validation or parsing
}

// sendUpdate sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls the import.
func sendUpdate(progress chan<- ImportUpdate, update ImportUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ImportCSV reads a track CSV and inserts each row into the repository.
//
// The header row is required and matched case-insensitively; "artist" and
// "title" columns are mandatory, "album", "bpm", "key", "energy", and
// "artwork_url" are optional, and unknown columns are ignored. Duplicate
// tracks are skipped, malformed rows are counted as failed, and neither
// aborts the import.
func ImportCSV(path string, repo *TrackRepository, progress chan<- ImportUpdate) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty: %s", path)
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	total := len(records) - 1

	for i, record := range records[1:] {
		track, err := rowToTrack(columns, record)
		if err != nil {
			result.Failed++
			sendUpdate(progress, ImportUpdate{
				Step:    i + 1,
				Total:   total,
				Message: fmt.Sprintf("[%d/%d] skipping row: %v", i+1, total, err),
			})
			continue
		}

		err = repo.Create(models.NewLibraryTrack(0, track))
		switch {
		case err == nil:
			result.Imported++
		case strings.Contains(err.Error(), "UNIQUE constraint"):
			result.Skipped++
		default:
			return result, fmt.Errorf("failed to import row %d: %w", i+1, err)
		}

		sendUpdate(progress, ImportUpdate{
			Step:    i + 1,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] %s", i+1, total, track.String()),
		})
	}

	return result, nil
}

// ReadTracksCSV parses a track CSV from a reader without touching the
// database. The formatter and tests share it with ImportCSV's column rules.
func ReadTracksCSV(r io.Reader) ([]models.Track, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV input is empty")
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	var tracks []models.Track
	for i, record := range records[1:] {
		track, err := rowToTrack(columns, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// mapColumns resolves header names to column indexes.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["artist"]; !ok {
		return nil, fmt.Errorf("CSV header missing required column: artist")
	}
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("CSV header missing required column: title")
	}
	return columns, nil
}

// rowToTrack builds a track DTO from one CSV record. Numeric fields tolerate
// blanks; a malformed bpm or energy fails the row rather than zeroing it.
func rowToTrack(columns map[string]int, record []string) (models.Track, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	track := models.Track{
		Artist:     field("artist"),
		Title:      field("title"),
		Album:      field("album"),
		ArtworkURL: field("artwork_url"),
	}

	if raw := field("bpm"); raw != "" {
		bpm, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Track{}, fmt.Errorf("bad bpm %q", raw)
		}
		track.BPM = bpm
	}

	if raw := field("key"); raw != "" {
		key, err := models.ParseKey(raw)
		if err != nil {
			return models.Track{}, fmt.Errorf("bad key %q", raw)
		}
		track.Key = key
	}

	if raw := field("energy"); raw != "" {
		energy, err := strconv.Atoi(raw)
		if err != nil {
			return models.Track{}, fmt.Errorf("bad energy %q", raw)
		}
		track.Energy = energy
	}

	if err := track.Validate(); err != nil {
		return models.Track{}, err
	}

	return track, nil
}
