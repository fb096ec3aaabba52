package library

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
)

// CrateRepository implements models.Repository[*models.Crate].
//
// Handles crate CRUD with soft delete support plus membership operations on
// the crate_tracks join table, which keeps an explicit play order.
type CrateRepository struct {
	db *sql.DB
}

// NewCrateRepository creates a new CrateRepository with the given database connection
func NewCrateRepository(db *sql.DB) *CrateRepository {
	return &CrateRepository{db: db}
}

// Create inserts a new crate into the database with generated ID and sequence
func (r *CrateRepository) Create(crate *models.Crate) error {
	sequence, err := NextSequence(r.db, "crates")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	crate.SetSequence(sequence)

	id := shared.GenerateID()
	crate.SetID(id)

	if err := crate.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO crates (id, sequence, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		crate.Name(),
		crate.Description(),
		crate.CreatedAt(),
		crate.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert crate: %w", err)
	}

	return nil
}

// Get retrieves a crate by ID, excluding soft-deleted crates
func (r *CrateRepository) Get(id string) (*models.Crate, error) {
	query := `
		SELECT id, sequence, name, description, created_at, updated_at, deleted_at
		FROM crates
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByName retrieves a crate by its unique name
func (r *CrateRepository) GetByName(name string) (*models.Crate, error) {
	query := `
		SELECT id, sequence, name, description, created_at, updated_at, deleted_at
		FROM crates
		WHERE name = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, name))
}

// Update modifies an existing crate in the database
func (r *CrateRepository) Update(crate *models.Crate) error {
	if err := crate.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	crate.SetUpdatedAt(now)

	query := `
		UPDATE crates
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, crate.Name(), crate.Description(), now, crate.ID())
	if err != nil {
		return fmt.Errorf("failed to update crate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrCrateNotFound, crate.ID())
	}

	return nil
}

// Delete soft-deletes a crate by ID
func (r *CrateRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE crates
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete crate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrCrateNotFound, id)
	}

	return nil
}

// List retrieves all crates matching the given criteria, excluding soft-deleted crates
func (r *CrateRepository) List(criteria map[string]any) ([]*models.Crate, error) {
	query := `
		SELECT id, sequence, name, description, created_at, updated_at, deleted_at
		FROM crates
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if search, ok := criteria["search"].(string); ok && search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+search+"%")
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crates: %w", err)
	}
	defer rows.Close()

	var crates []*models.Crate
	for rows.Next() {
		crate, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		crates = append(crates, crate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return crates, nil
}

// AddTrack appends a track to the end of a crate's play order.
// Adding a track that is already in the crate returns shared.ErrDuplicateTrack.
func (r *CrateRepository) AddTrack(crateID, trackID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(position), 0) + 1 FROM crate_tracks WHERE crate_id = ?",
		crateID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to compute position: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO crate_tracks (crate_id, track_id, position, added_at) VALUES (?, ?, ?, ?)",
		crateID, trackID, position, time.Now(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateTrack, trackID)
		}
		return fmt.Errorf("failed to add track to crate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit membership transaction: %w", err)
	}

	return nil
}

// RemoveTrack removes a track from a crate. The play order of the remaining
// tracks is preserved; positions are not compacted.
func (r *CrateRepository) RemoveTrack(crateID, trackID string) error {
	result, err := r.db.Exec(
		"DELETE FROM crate_tracks WHERE crate_id = ? AND track_id = ?",
		crateID, trackID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove track from crate: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, trackID)
	}

	return nil
}

// Tracks retrieves a crate's tracks in play order, excluding soft-deleted tracks
func (r *CrateRepository) Tracks(crateID string) ([]*models.LibraryTrack, error) {
	query := `
		SELECT t.id, t.sequence, t.artist, t.title, t.album, t.bpm, t.key, t.energy, t.artwork_url, t.created_at, t.updated_at, t.deleted_at
		FROM tracks t
		JOIN crate_tracks ct ON ct.track_id = t.id
		WHERE ct.crate_id = ? AND t.deleted_at IS NULL
		ORDER BY ct.position ASC
	`

	rows, err := r.db.Query(query, crateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query crate tracks: %w", err)
	}
	defer rows.Close()

	tr := &TrackRepository{db: r.db}
	var tracks []*models.LibraryTrack
	for rows.Next() {
		track, err := tr.scanRow(rows)
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

// scanOne scans a single [sql.Row] into a [models.Crate]
func (r *CrateRepository) scanOne(row *sql.Row) (*models.Crate, error) {
	var (
		id          string
		sequence    int
		name        string
		description string
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &description, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrCrateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan crate: %w", err)
	}

	crate := models.NewCrate(sequence, name, description)
	crate.SetID(id)
	crate.SetCreatedAt(createdAt)
	crate.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		crate.SetDeletedAt(&deletedAt.Time)
	}

	return crate, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Crate]
func (r *CrateRepository) scanRow(rows *sql.Rows) (*models.Crate, error) {
	var (
		id          string
		sequence    int
		name        string
		description string
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &name, &description, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan crate: %w", err)
	}

	crate := models.NewCrate(sequence, name, description)
	crate.SetID(id)
	crate.SetCreatedAt(createdAt)
	crate.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		crate.SetDeletedAt(&deletedAt.Time)
	}

	return crate, nil
}
