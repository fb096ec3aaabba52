package library

import (
	"fmt"
	"sync"

	"github.com/desertthunder/bop/internal/models"
)

// Filter narrows the grid to a slice of the library, mirroring the filter
// controls above the track table.
type Filter struct {
	Key    string
	MinBPM float64
	MaxBPM float64
	Search string
}

// Grid is the in-memory view of the track table. It implements
// models.TrackSource, so the animator can sample displayed rows for key
// colors and artwork without touching the database on the render path.
//
// Refresh and the row accessors may be called from different goroutines: HTTP
// handlers refilter while the engine loop reads rows every tick.
type Grid struct {
	mu     sync.RWMutex
	repo   *TrackRepository
	rows   []models.Track
	filter Filter
}

// NewGrid creates an empty grid over the given repository. Call Refresh to
// load rows before first use.
func NewGrid(repo *TrackRepository) *Grid {
	return &Grid{repo: repo}
}

// Refresh reloads the visible rows from the repository using the current filter.
func (g *Grid) Refresh() error {
	g.mu.RLock()
	f := g.filter
	g.mu.RUnlock()

	criteria := map[string]any{}
	if f.Key != "" {
		criteria["key"] = f.Key
	}
	if f.MinBPM > 0 {
		criteria["min_bpm"] = f.MinBPM
	}
	if f.MaxBPM > 0 {
		criteria["max_bpm"] = f.MaxBPM
	}
	if f.Search != "" {
		criteria["search"] = f.Search
	}

	tracks, err := g.repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to refresh grid: %w", err)
	}

	rows := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		row := t.Track()
		row.ID = t.ID()
		rows = append(rows, row)
	}

	g.mu.Lock()
	g.rows = rows
	g.mu.Unlock()

	return nil
}

// SetFilter replaces the filter and reloads the rows.
func (g *Grid) SetFilter(f Filter) error {
	g.mu.Lock()
	g.filter = f
	g.mu.Unlock()
	return g.Refresh()
}

// Filter returns the current filter.
func (g *Grid) Filter() Filter {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.filter
}

// RowCount returns the number of displayed rows.
func (g *Grid) RowCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rows)
}

// RowAt returns the displayed row at index i, or false when out of range.
func (g *Grid) RowAt(i int) (models.Track, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if i < 0 || i >= len(g.rows) {
		return models.Track{}, false
	}
	return g.rows[i], true
}

// Rows returns a copy of the displayed rows.
func (g *Grid) Rows() []models.Track {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.Track, len(g.rows))
	copy(out, g.rows)
	return out
}
