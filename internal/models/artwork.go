package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/bop/internal/shared"
)

// Artwork is a cached album-art lookup result keyed by (artist, title).
// Unlike tracks and crates it is a plain cache row, not a curated entity, so
// it travels as a DTO and the repository stamps its bookkeeping fields.
type Artwork struct {
	Artist    string    `json:"artist"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Source    string    `json:"source,omitempty"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
}

// Validate checks the fields a cache row needs before it can be stored.
func (a Artwork) Validate() error {
	if strings.TrimSpace(a.Artist) == "" || strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: artwork requires artist and title", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(a.URL) == "" {
		return fmt.Errorf("%w: artwork requires a url", shared.ErrInvalidInput)
	}
	return nil
}
