// Cache-fronted artwork lookup with outbound rate limiting
package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
	"golang.org/x/time/rate"
)

// ArtworkService resolves artwork through the database cache before asking a
// provider, and throttles provider traffic. The animator fires lookups
// opportunistically every few seconds of dancing, so without the limiter a
// long session would hammer the search APIs.
type ArtworkService struct {
	provider ArtworkProvider
	cache    *library.ArtworkRepository
	limiter  *rate.Limiter
	logger   *log.Logger
}

// NewArtworkService wires a provider behind the cache. A nil cache disables
// caching, ratePerMinute <= 0 disables throttling, and a nil logger discards
// diagnostics.
func NewArtworkService(provider ArtworkProvider, cache *library.ArtworkRepository, ratePerMinute int, logger *log.Logger) *ArtworkService {
	var limiter *rate.Limiter
	if ratePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerMinute)/60, 2)
	}
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &ArtworkService{
		provider: provider,
		cache:    cache,
		limiter:  limiter,
		logger:   logger,
	}
}

// Lookup returns just the artwork URL for a track, the shape the animator's
// artwork loader capability expects.
func (s *ArtworkService) Lookup(ctx context.Context, artist, title string) (string, error) {
	art, err := s.Artwork(ctx, artist, title)
	if err != nil {
		return "", err
	}
	return art.URL, nil
}

// Artwork resolves the full artwork row, consulting the cache first. Cache
// misses wait for limiter headroom before hitting the provider; a miss from
// the provider surfaces as shared.ErrArtworkNotFound and is not cached.
func (s *ArtworkService) Artwork(ctx context.Context, artist, title string) (models.Artwork, error) {
	artist, title = strings.TrimSpace(artist), strings.TrimSpace(title)
	if artist == "" || title == "" {
		return models.Artwork{}, fmt.Errorf("%w: artwork lookup needs artist and title", shared.ErrInvalidInput)
	}

	if s.cache != nil {
		if art, err := s.cache.Lookup(artist, title); err == nil {
			return art, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return models.Artwork{}, fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
		}
	}

	art, err := s.provider.LookupArtwork(ctx, artist, title)
	if err != nil {
		return models.Artwork{}, err
	}

	if s.cache != nil {
		if err := s.cache.Save(art); err != nil {
			s.logger.Warn("failed to cache artwork", "artist", artist, "title", title, "error", err)
		}
	}

	return art, nil
}

// NewProvider constructs the provider named in config: "itunes" (default,
// keyless) or "spotify" (requires client credentials). "none" returns a nil
// provider, which callers treat as artwork lookups being switched off.
func NewProvider(cfg shared.ArtworkConfig) (ArtworkProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "itunes":
		return NewITunesService(""), nil
	case "spotify":
		return NewSpotifyService(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown artwork provider %q", shared.ErrInvalidConfig, cfg.Provider)
	}
}
