// iTunes Search API implementation of [ArtworkProvider]
//
// Response types based on https://performance-partners.apple.com/search-api
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
)

const defaultITunesBaseURL = "https://itunes.apple.com"

// ITunesResult represents one song entry in an iTunes search response.
type ITunesResult struct {
	ArtistName     string `json:"artistName"`
	TrackName      string `json:"trackName"`
	CollectionName string `json:"collectionName"`
	ArtworkURL100  string `json:"artworkUrl100"`
}

// ITunesResponse represents an iTunes search response envelope.
type ITunesResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []ITunesResult `json:"results"`
}

// ITunesService implements [ArtworkProvider] against the keyless iTunes
// Search API. No credentials or configuration are needed, which makes it the
// default provider.
type ITunesService struct {
	baseURL    string
	httpClient *http.Client
}

// NewITunesService creates an iTunes provider. An empty baseURL uses the
// public API host.
func NewITunesService(baseURL string) *ITunesService {
	if baseURL == "" {
		baseURL = defaultITunesBaseURL
	}
	return &ITunesService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *ITunesService) Name() string {
	return "itunes"
}

// LookupArtwork searches for the track and returns its cover, upscaled to
// the 600x600 rendition the same CDN serves alongside the 100x100 thumbnail.
func (s *ITunesService) LookupArtwork(ctx context.Context, artist, title string) (models.Artwork, error) {
	term := url.QueryEscape(strings.TrimSpace(artist + " " + title))
	endpoint := fmt.Sprintf("%s/search?term=%s&media=music&entity=song&limit=5", s.baseURL, term)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Artwork{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.Artwork{}, fmt.Errorf("%w: %v", shared.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Artwork{}, fmt.Errorf("%w: itunes status %d", shared.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload ITunesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Artwork{}, fmt.Errorf("failed to decode response: %w", err)
	}

	match := bestITunesMatch(payload.Results, artist)
	if match == nil || match.ArtworkURL100 == "" {
		return models.Artwork{}, fmt.Errorf("%w: %s - %s", shared.ErrArtworkNotFound, artist, title)
	}

	return models.Artwork{
		Artist:    artist,
		Title:     title,
		URL:       strings.Replace(match.ArtworkURL100, "100x100", "600x600", 1),
		Width:     600,
		Height:    600,
		Source:    s.Name(),
		FetchedAt: time.Now(),
	}, nil
}

// bestITunesMatch prefers an exact artist match over the API's own ranking.
func bestITunesMatch(results []ITunesResult, artist string) *ITunesResult {
	if len(results) == 0 {
		return nil
	}
	for i := range results {
		if strings.EqualFold(strings.TrimSpace(results[i].ArtistName), strings.TrimSpace(artist)) {
			return &results[i]
		}
	}
	return &results[0]
}
