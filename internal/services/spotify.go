// Spotify API implementation of [ArtworkProvider]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL       = "https://accounts.spotify.com/api/token"
	defaultSpotifyBaseURL = "https://api.spotify.com/v1"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album. Images are ordered largest first.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyService implements [ArtworkProvider] using the client-credentials
// flow; track search needs no user consent, only an application's keys.
type SpotifyService struct {
	baseURL    string
	config     *clientcredentials.Config
	httpClient *http.Client
}

// NewSpotifyService creates a Spotify provider with the given application
// credentials.
func NewSpotifyService(clientID, clientSecret string) (*SpotifyService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret", shared.ErrMissingCredentials)
	}

	return &SpotifyService{
		baseURL: defaultSpotifyBaseURL,
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
		},
	}, nil
}

func (s *SpotifyService) Name() string {
	return "spotify"
}

// client lazily builds the token-refreshing HTTP client so tests can inject
// their own before the first request.
func (s *SpotifyService) client() *http.Client {
	if s.httpClient == nil {
		s.httpClient = s.config.Client(context.Background())
	}
	return s.httpClient
}

// LookupArtwork searches for the track and returns the largest album image.
func (s *SpotifyService) LookupArtwork(ctx context.Context, artist, title string) (models.Artwork, error) {
	query := url.QueryEscape(fmt.Sprintf("track:%q artist:%q", title, artist))
	endpoint := fmt.Sprintf("%s/search?q=%s&type=track&limit=5", s.baseURL, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Artwork{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return models.Artwork{}, fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Artwork{}, fmt.Errorf("%w: spotify status %d", shared.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload spotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Artwork{}, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, item := range payload.Tracks.Items {
		if len(item.Album.Images) == 0 {
			continue
		}
		img := item.Album.Images[0]
		return models.Artwork{
			Artist:    artist,
			Title:     title,
			URL:       img.URL,
			Width:     img.Width,
			Height:    img.Height,
			Source:    s.Name(),
			FetchedAt: time.Now(),
		}, nil
	}

	return models.Artwork{}, fmt.Errorf("%w: %s - %s", shared.ErrArtworkNotFound, artist, title)
}
