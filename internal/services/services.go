// package services defines interface ArtworkProvider for album-art lookup
//
// iTunes Search API (keyless), Spotify (client credentials)
package services

import (
	"context"

	"github.com/desertthunder/bop/internal/models"
)

// ArtworkProvider defines the interface for album-art backends.
type ArtworkProvider interface {
	// LookupArtwork finds the best artwork match for a track.
	// A definitive miss returns shared.ErrArtworkNotFound; transport
	// failures return shared.ErrProviderUnavailable.
	LookupArtwork(ctx context.Context, artist, title string) (models.Artwork, error)

	// Name returns the provider name used in config and cache rows
	// (e.g., "itunes", "spotify").
	Name() string
}
