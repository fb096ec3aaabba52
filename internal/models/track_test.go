package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/bop/internal/shared"
)

func TestTrackValidate(t *testing.T) {
	valid := Track{
		Artist: "Robert Hood",
		Title:  "Minus",
		Album:  "Minimal Nation",
		BPM:    130,
		Key:    "5A",
		Energy: 7,
	}

	t.Run("accepts a full row", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("valid track rejected: %v", err)
		}
	})

	t.Run("accepts sparse metadata", func(t *testing.T) {
		tr := Track{Artist: "Unknown", Title: "ID"}
		if err := tr.Validate(); err != nil {
			t.Fatalf("sparse track rejected: %v", err)
		}
	})

	t.Run("rejects bad rows", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*Track)
		}{
			{"missing artist", func(tr *Track) { tr.Artist = "" }},
			{"missing title", func(tr *Track) { tr.Title = "" }},
			{"negative bpm", func(tr *Track) { tr.BPM = -10 }},
			{"absurd bpm", func(tr *Track) { tr.BPM = 301 }},
			{"bad key", func(tr *Track) { tr.Key = "H7" }},
			{"energy out of range", func(tr *Track) { tr.Energy = 11 }},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				tr := valid
				c.mutate(&tr)
				err := tr.Validate()
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("error %v does not wrap ErrInvalidInput", err)
				}
			})
		}
	})

	t.Run("String formats artist and title", func(t *testing.T) {
		if got := valid.String(); got != "Robert Hood - Minus" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestLibraryTrack(t *testing.T) {
	base := Track{Artist: "Jeff Mills", Title: "The Bells", BPM: 126, Key: "12A"}

	t.Run("constructor stamps timestamps", func(t *testing.T) {
		lt := NewLibraryTrack(3, base)
		if lt.Sequence() != 3 {
			t.Errorf("sequence = %d", lt.Sequence())
		}
		if lt.CreatedAt().IsZero() || lt.UpdatedAt().IsZero() {
			t.Error("timestamps not stamped")
		}
		if lt.DeletedAt() != nil {
			t.Error("fresh track should not be deleted")
		}
		if lt.Artist() != "Jeff Mills" || lt.Title() != "The Bells" {
			t.Errorf("track fields lost: %s", lt.Track())
		}
	})

	t.Run("SetID mirrors into the row", func(t *testing.T) {
		lt := NewLibraryTrack(1, base)
		lt.SetID("abc-123")
		if lt.ID() != "abc-123" {
			t.Errorf("ID() = %q", lt.ID())
		}
		if lt.Track().ID != "abc-123" {
			t.Errorf("row ID = %q", lt.Track().ID)
		}
	})

	t.Run("setters update state", func(t *testing.T) {
		lt := NewLibraryTrack(1, base)
		lt.SetBPM(128.5)
		lt.SetArtworkURL("https://example.com/a.jpg")
		if lt.BPM() != 128.5 || lt.ArtworkURL() != "https://example.com/a.jpg" {
			t.Errorf("setters did not stick: bpm=%v url=%q", lt.BPM(), lt.ArtworkURL())
		}
	})

	t.Run("validation delegates to the row", func(t *testing.T) {
		lt := NewLibraryTrack(1, Track{Artist: "", Title: "Nameless"})
		if err := lt.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCrate(t *testing.T) {
	t.Run("constructor and accessors", func(t *testing.T) {
		c := NewCrate(2, "Warehouse", "Peak time techno")
		if c.Name() != "Warehouse" || c.Description() != "Peak time techno" {
			t.Errorf("fields lost: %q %q", c.Name(), c.Description())
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("valid crate rejected: %v", err)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		c := NewCrate(1, "", "")
		if err := c.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
