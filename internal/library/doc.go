// package library provides the persistence layer for tracks, crates, and the
// artwork cache.
//
// Each repository implements models.Repository[T] for one entity type,
// handling CRUD operations, soft deletes, and sequence generation. The Grid
// wraps a TrackRepository as the in-memory row view the animator samples for
// key colors and artwork.
package library
