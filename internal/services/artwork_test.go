package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
	tu "github.com/desertthunder/bop/internal/testing"
)

// stubProvider returns a canned result and counts calls so tests can tell
// whether the cache short-circuited the lookup.
type stubProvider struct {
	art   models.Artwork
	err   error
	calls int
}

func (p *stubProvider) LookupArtwork(ctx context.Context, artist, title string) (models.Artwork, error) {
	p.calls++
	if p.err != nil {
		return models.Artwork{}, p.err
	}
	art := p.art
	art.Artist, art.Title = artist, title
	return art, nil
}

func (p *stubProvider) Name() string { return "stub" }

func TestArtworkService(t *testing.T) {
	stubArt := models.Artwork{
		URL:       "https://img.example.com/cover.jpg",
		Width:     600,
		Height:    600,
		Source:    "stub",
		FetchedAt: time.Now(),
	}

	t.Run("Lookup", func(t *testing.T) {
		t.Run("Rejects Blank Identity", func(t *testing.T) {
			svc := NewArtworkService(&stubProvider{art: stubArt}, nil, 0, nil)

			for _, pair := range [][2]string{{"", "Strings of Life"}, {"Rhythim Is Rhythim", ""}, {"  ", "  "}} {
				if _, err := svc.Lookup(context.Background(), pair[0], pair[1]); !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput for %q/%q, got %v", pair[0], pair[1], err)
				}
			}
		})

		t.Run("Without Cache", func(t *testing.T) {
			provider := &stubProvider{art: stubArt}
			svc := NewArtworkService(provider, nil, 0, nil)

			url, err := svc.Lookup(context.Background(), "Rhythim Is Rhythim", "Strings of Life")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if url != stubArt.URL {
				t.Errorf("expected provider URL, got %s", url)
			}
			if provider.calls != 1 {
				t.Errorf("expected one provider call, got %d", provider.calls)
			}
		})

		t.Run("Caches Provider Results", func(t *testing.T) {
			db := tu.MemoryDB(t)

			provider := &stubProvider{art: stubArt}
			svc := NewArtworkService(provider, library.NewArtworkRepository(db), 0, nil)

			for i := 0; i < 3; i++ {
				url, err := svc.Lookup(context.Background(), "Rhythim Is Rhythim", "Strings of Life")
				if err != nil {
					t.Fatalf("lookup %d failed: %v", i, err)
				}
				if url != stubArt.URL {
					t.Errorf("lookup %d: expected %s, got %s", i, stubArt.URL, url)
				}
			}

			if provider.calls != 1 {
				t.Errorf("expected repeat lookups to hit the cache, got %d provider calls", provider.calls)
			}
		})

		t.Run("Cache Hit Skips Provider", func(t *testing.T) {
			db := tu.MemoryDB(t)

			cache := library.NewArtworkRepository(db)
			seeded := stubArt
			seeded.Artist, seeded.Title = "Mr. Fingers", "Can You Feel It"
			seeded.URL = "https://img.example.com/seeded.jpg"
			if err := cache.Save(seeded); err != nil {
				t.Fatalf("failed to seed cache: %v", err)
			}

			provider := &stubProvider{art: stubArt}
			svc := NewArtworkService(provider, cache, 0, nil)

			url, err := svc.Lookup(context.Background(), "Mr. Fingers", "Can You Feel It")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if url != seeded.URL {
				t.Errorf("expected cached URL, got %s", url)
			}
			if provider.calls != 0 {
				t.Errorf("expected zero provider calls, got %d", provider.calls)
			}
		})

		t.Run("Misses Are Not Cached", func(t *testing.T) {
			db := tu.MemoryDB(t)

			provider := &stubProvider{err: fmt.Errorf("%w: nobody", shared.ErrArtworkNotFound)}
			svc := NewArtworkService(provider, library.NewArtworkRepository(db), 0, nil)

			for i := 0; i < 2; i++ {
				if _, err := svc.Lookup(context.Background(), "Nobody", "Nothing"); !errors.Is(err, shared.ErrArtworkNotFound) {
					t.Fatalf("lookup %d: expected ErrArtworkNotFound, got %v", i, err)
				}
			}

			if provider.calls != 2 {
				t.Errorf("expected a provider call per miss, got %d", provider.calls)
			}
		})

		t.Run("Cancelled Context With Limiter", func(t *testing.T) {
			provider := &stubProvider{art: stubArt}
			svc := NewArtworkService(provider, nil, 60, nil)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := svc.Lookup(ctx, "Anyone", "Anything")
			if !errors.Is(err, shared.ErrProviderUnavailable) {
				t.Errorf("expected ErrProviderUnavailable, got %v", err)
			}
			if provider.calls != 0 {
				t.Errorf("expected zero provider calls, got %d", provider.calls)
			}
		})
	})

	t.Run("Artwork", func(t *testing.T) {
		provider := &stubProvider{art: stubArt}
		svc := NewArtworkService(provider, nil, 0, nil)

		art, err := svc.Artwork(context.Background(), "Rhythim Is Rhythim", "Strings of Life")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if art.Artist != "Rhythim Is Rhythim" || art.Title != "Strings of Life" {
			t.Errorf("expected lookup identity preserved, got %s - %s", art.Artist, art.Title)
		}
		if art.Width != 600 || art.Source != "stub" {
			t.Errorf("expected full provider row, got %+v", art)
		}
	})

	t.Run("Rate Limiter", func(t *testing.T) {
		if svc := NewArtworkService(&stubProvider{}, nil, 0, nil); svc.limiter != nil {
			t.Error("expected no limiter when rate is zero")
		}
		if svc := NewArtworkService(&stubProvider{}, nil, 120, nil); svc.limiter == nil {
			t.Error("expected a limiter when rate is set")
		}
	})

	t.Run("NewProvider", func(t *testing.T) {
		t.Run("Defaults To iTunes", func(t *testing.T) {
			provider, err := NewProvider(shared.ArtworkConfig{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, ok := provider.(*ITunesService); !ok {
				t.Errorf("expected *ITunesService, got %T", provider)
			}
		})

		t.Run("Explicit iTunes", func(t *testing.T) {
			provider, err := NewProvider(shared.ArtworkConfig{Provider: "itunes"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if provider.Name() != "itunes" {
				t.Errorf("expected 'itunes', got %s", provider.Name())
			}
		})

		t.Run("Spotify With Credentials", func(t *testing.T) {
			cfg := shared.ArtworkConfig{Provider: "spotify"}
			cfg.Spotify.ClientID = "test_client_id"
			cfg.Spotify.ClientSecret = "test_client_secret"

			provider, err := NewProvider(cfg)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, ok := provider.(*SpotifyService); !ok {
				t.Errorf("expected *SpotifyService, got %T", provider)
			}
		})

		t.Run("Spotify Without Credentials", func(t *testing.T) {
			_, err := NewProvider(shared.ArtworkConfig{Provider: "spotify"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("None", func(t *testing.T) {
			provider, err := NewProvider(shared.ArtworkConfig{Provider: "none"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if provider != nil {
				t.Errorf("expected nil provider, got %T", provider)
			}
		})

		t.Run("Unknown Provider", func(t *testing.T) {
			_, err := NewProvider(shared.ArtworkConfig{Provider: "bandcamp"})
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}
