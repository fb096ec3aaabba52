package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/bop/internal/shared"
)

// Track is the lightweight track row the grid, the engine, and the
// formatter pass around.
type Track struct {
	ID         string  `json:"id,omitempty"`
	Artist     string  `json:"artist"`
	Title      string  `json:"title"`
	Album      string  `json:"album,omitempty"`
	BPM        float64 `json:"bpm,omitempty"`
	Key        Key     `json:"key,omitempty"`
	Energy     int     `json:"energy,omitempty"`
	ArtworkURL string  `json:"artwork_url,omitempty"`
}

// String renders the conventional "Artist - Title" line.
func (t Track) String() string {
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}

// Validate checks the fields a row needs before it can join the library.
// Key and energy are optional; when present they must be in range.
func (t Track) Validate() error {
	if t.Artist == "" {
		return fmt.Errorf("%w: artist is required", shared.ErrInvalidInput)
	}
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if t.BPM < 0 || t.BPM > 300 {
		return fmt.Errorf("%w: bpm %v out of range", shared.ErrInvalidInput, t.BPM)
	}
	if t.Key != "" && !t.Key.Valid() {
		return fmt.Errorf("%w: key %q is not a wheel code", shared.ErrInvalidInput, t.Key)
	}
	if t.Energy < 0 || t.Energy > 10 {
		return fmt.Errorf("%w: energy %d out of range", shared.ErrInvalidInput, t.Energy)
	}
	return nil
}

// LibraryTrack is the database-backed track entity.
type LibraryTrack struct {
	id        string
	sequence  int
	track     Track
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewLibraryTrack wraps a track DTO for persistence. The ID is assigned by
// the repository on create.
func NewLibraryTrack(sequence int, track Track) *LibraryTrack {
	now := time.Now()
	return &LibraryTrack{
		sequence:  sequence,
		track:     track,
		createdAt: now,
		updatedAt: now,
	}
}

func (t *LibraryTrack) ID() string            { return t.id }
func (t *LibraryTrack) Sequence() int         { return t.sequence }
func (t *LibraryTrack) Track() Track          { return t.track }
func (t *LibraryTrack) Artist() string        { return t.track.Artist }
func (t *LibraryTrack) Title() string         { return t.track.Title }
func (t *LibraryTrack) Album() string         { return t.track.Album }
func (t *LibraryTrack) BPM() float64          { return t.track.BPM }
func (t *LibraryTrack) Key() Key              { return t.track.Key }
func (t *LibraryTrack) Energy() int           { return t.track.Energy }
func (t *LibraryTrack) ArtworkURL() string    { return t.track.ArtworkURL }
func (t *LibraryTrack) CreatedAt() time.Time  { return t.createdAt }
func (t *LibraryTrack) UpdatedAt() time.Time  { return t.updatedAt }
func (t *LibraryTrack) DeletedAt() *time.Time { return t.deletedAt }

// SetID stamps the row ID on the entity and mirrors it into the DTO so
// grid consumers see it.
func (t *LibraryTrack) SetID(id string) {
	t.id = id
	t.track.ID = id
}

func (t *LibraryTrack) SetSequence(seq int)        { t.sequence = seq }
func (t *LibraryTrack) SetCreatedAt(ts time.Time)  { t.createdAt = ts }
func (t *LibraryTrack) SetUpdatedAt(ts time.Time)  { t.updatedAt = ts }
func (t *LibraryTrack) SetDeletedAt(ts *time.Time) { t.deletedAt = ts }
func (t *LibraryTrack) SetTrack(track Track)       { t.track = track }
func (t *LibraryTrack) SetArtworkURL(url string)   { t.track.ArtworkURL = url }
func (t *LibraryTrack) SetBPM(bpm float64)         { t.track.BPM = bpm }

// Validate checks the wrapped track.
func (t *LibraryTrack) Validate() error {
	return t.track.Validate()
}
