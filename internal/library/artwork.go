package library

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
)

// ArtworkRepository caches artwork lookup results keyed by (artist, title).
//
// Rows deduplicate via the table's case-insensitive UNIQUE constraint; Save
// silently keeps the first result for a pair, so concurrent lookups for the
// same track never error.
type ArtworkRepository struct {
	db *sql.DB
}

// NewArtworkRepository creates a new ArtworkRepository with the given database connection
func NewArtworkRepository(db *sql.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// Save stores an artwork lookup result. Returns nil if the pair is already
// cached; only actual failures surface.
func (r *ArtworkRepository) Save(art models.Artwork) error {
	if err := art.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := r.Lookup(art.Artist, art.Title); err == nil {
		return nil
	}

	sequence, err := NextSequence(r.db, "artwork")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	fetched := art.FetchedAt
	if fetched.IsZero() {
		fetched = now
	}

	query := `
		INSERT INTO artwork (id, sequence, artist, title, url, width, height, source, fetched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		sequence,
		art.Artist,
		art.Title,
		art.URL,
		art.Width,
		art.Height,
		art.Source,
		fetched,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache artwork: %w", err)
	}

	return nil
}

// Lookup retrieves a cached artwork row by artist and title, case-insensitively.
// A miss returns shared.ErrArtworkNotFound.
func (r *ArtworkRepository) Lookup(artist, title string) (models.Artwork, error) {
	query := `
		SELECT artist, title, url, width, height, source, fetched_at
		FROM artwork
		WHERE artist = ? COLLATE NOCASE AND title = ? COLLATE NOCASE
	`

	var art models.Artwork
	err := r.db.QueryRow(query, artist, title).Scan(
		&art.Artist, &art.Title, &art.URL, &art.Width, &art.Height, &art.Source, &art.FetchedAt,
	)
	if err == sql.ErrNoRows {
		return models.Artwork{}, fmt.Errorf("%w: %s - %s", shared.ErrArtworkNotFound, artist, title)
	}
	if err != nil {
		return models.Artwork{}, fmt.Errorf("failed to scan artwork: %w", err)
	}

	return art, nil
}

// Evict removes a cached artwork row so the next lookup refetches it. Cache
// rows are hard-deleted; keeping a tombstone would pin the UNIQUE pair.
func (r *ArtworkRepository) Evict(artist, title string) error {
	result, err := r.db.Exec(
		"DELETE FROM artwork WHERE artist = ? COLLATE NOCASE AND title = ? COLLATE NOCASE",
		artist, title,
	)
	if err != nil {
		return fmt.Errorf("failed to evict artwork: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s - %s", shared.ErrArtworkNotFound, artist, title)
	}

	return nil
}
