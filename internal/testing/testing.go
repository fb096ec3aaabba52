// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
)

var _ models.TrackSource = (*MockTrackSource)(nil)

// MockTrackSource is a fixed in-memory test double for [models.TrackSource]
type MockTrackSource struct {
	Tracks []models.Track
}

func (m *MockTrackSource) RowCount() int { return len(m.Tracks) }

func (m *MockTrackSource) RowAt(i int) (models.Track, bool) {
	if i < 0 || i >= len(m.Tracks) {
		return models.Track{}, false
	}
	return m.Tracks[i], true
}

// SampleTracks builds n synthetic library rows with tags spread across the
// Camelot wheel, for tests that need a populated source.
func SampleTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		letter := "A"
		if i%2 == 1 {
			letter = "B"
		}
		tracks[i] = models.Track{
			Artist: fmt.Sprintf("Artist %02d", i+1),
			Title:  fmt.Sprintf("Track %02d", i+1),
			BPM:    float64(118 + i%10),
			Key:    models.Key(fmt.Sprintf("%d%s", i%12+1, letter)),
			Energy: i%5 + 1,
		}
	}
	return tracks
}

// MemoryDB opens a migrated in-memory database, closed when the test ends.
func MemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
