// Package models defines domain entities and persistence interfaces for the library curation app.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs passed between layers
//   - [Track] : One library row with tempo, wheel key, and artwork
//   - [Key] : A harmonic wheel code with color and mixing-distance helpers
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [LibraryTrack] : Tracks with sequence numbers and soft delete
//   - [Crate] : Named, ordered track selections
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
// [TrackSource] is the read-only grid view the dance engine consumes.
package models
