package library

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
)

// TrackRepository implements models.Repository[*models.LibraryTrack].
//
// Handles track CRUD with soft delete support. The tracks table carries a
// case-insensitive UNIQUE constraint on (artist, title), so Create surfaces a
// constraint error for duplicates; importers decide whether to skip or fail.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new [models.LibraryTrack] into the database with generated ID and sequence
func (r *TrackRepository) Create(track *models.LibraryTrack) error {
	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	track.SetSequence(sequence)

	id := shared.GenerateID()
	track.SetID(id)

	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tracks (id, sequence, artist, title, album, bpm, key, energy, artwork_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		track.Artist(),
		track.Title(),
		track.Album(),
		track.BPM(),
		string(track.Key()),
		track.Energy(),
		track.ArtworkURL(),
		track.CreatedAt(),
		track.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// Get retrieves a track by ID, excluding soft-deleted tracks
func (r *TrackRepository) Get(id string) (*models.LibraryTrack, error) {
	query := `
		SELECT id, sequence, artist, title, album, bpm, key, energy, artwork_url, created_at, updated_at, deleted_at
		FROM tracks
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByArtistTitle retrieves a track by artist and title, case-insensitively
func (r *TrackRepository) GetByArtistTitle(artist, title string) (*models.LibraryTrack, error) {
	query := `
		SELECT id, sequence, artist, title, album, bpm, key, energy, artwork_url, created_at, updated_at, deleted_at
		FROM tracks
		WHERE artist = ? COLLATE NOCASE AND title = ? COLLATE NOCASE AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, artist, title))
}

// Update modifies an existing track in the database
func (r *TrackRepository) Update(track *models.LibraryTrack) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	track.SetUpdatedAt(now)

	query := `
		UPDATE tracks
		SET artist = ?, title = ?, album = ?, bpm = ?, key = ?, energy = ?, artwork_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		track.Artist(),
		track.Title(),
		track.Album(),
		track.BPM(),
		string(track.Key()),
		track.Energy(),
		track.ArtworkURL(),
		now,
		track.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, track.ID())
	}

	return nil
}

// Delete soft-deletes a track by ID
func (r *TrackRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE tracks
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
	}

	return nil
}

// List retrieves all tracks matching the given criteria, excluding soft-deleted tracks.
//
// Supported criteria: "key" (exact Camelot key), "min_bpm"/"max_bpm"
// (float64), and "search" (case-insensitive substring of artist or title).
func (r *TrackRepository) List(criteria map[string]any) ([]*models.LibraryTrack, error) {
	query := `
		SELECT id, sequence, artist, title, album, bpm, key, energy, artwork_url, created_at, updated_at, deleted_at
		FROM tracks
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if key, ok := criteria["key"].(string); ok && key != "" {
		query += " AND key = ?"
		args = append(args, key)
	}

	if min, ok := criteria["min_bpm"].(float64); ok && min > 0 {
		query += " AND bpm >= ?"
		args = append(args, min)
	}

	if max, ok := criteria["max_bpm"].(float64); ok && max > 0 {
		query += " AND bpm <= ?"
		args = append(args, max)
	}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND (artist LIKE ? OR title LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.LibraryTrack
	for rows.Next() {
		track, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// scanOne scans a single [sql.Row] into a [models.LibraryTrack]
func (r *TrackRepository) scanOne(row *sql.Row) (*models.LibraryTrack, error) {
	var (
		id         string
		sequence   int
		artist     string
		title      string
		album      string
		bpm        float64
		key        string
		energy     int
		artworkURL string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := row.Scan(&id, &sequence, &artist, &title, &album, &bpm, &key, &energy, &artworkURL, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrTrackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	dto := models.Track{
		Artist:     artist,
		Title:      title,
		Album:      album,
		BPM:        bpm,
		Key:        models.Key(key),
		Energy:     energy,
		ArtworkURL: artworkURL,
	}

	track := models.NewLibraryTrack(sequence, dto)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		track.SetDeletedAt(&deletedAt.Time)
	}

	return track, nil
}

// scanRow scans a row from [sql.Rows] into a [models.LibraryTrack]
func (r *TrackRepository) scanRow(rows *sql.Rows) (*models.LibraryTrack, error) {
	var (
		id         string
		sequence   int
		artist     string
		title      string
		album      string
		bpm        float64
		key        string
		energy     int
		artworkURL string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &artist, &title, &album, &bpm, &key, &energy, &artworkURL, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	dto := models.Track{
		Artist:     artist,
		Title:      title,
		Album:      album,
		BPM:        bpm,
		Key:        models.Key(key),
		Energy:     energy,
		ArtworkURL: artworkURL,
	}

	track := models.NewLibraryTrack(sequence, dto)
	track.SetID(id)
	track.SetCreatedAt(createdAt)
	track.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		track.SetDeletedAt(&deletedAt.Time)
	}

	return track, nil
}
