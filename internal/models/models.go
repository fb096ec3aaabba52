// package models defines the data model for the library curation app
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the library.
// Implementations include LibraryTrack and Crate; Artwork stays a plain cache
// row outside the interface.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// TrackSource exposes a read-only view of the track grid to the dance
// engine. The engine treats it as optional: a nil source simply means no
// track metadata flows into the dance.
type TrackSource interface {
	// RowCount returns how many rows the grid currently shows.
	RowCount() int
	// RowAt returns the track at a row index; ok is false out of range.
	RowAt(i int) (Track, bool)
}
