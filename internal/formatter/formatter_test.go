package formatter

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
	th "github.com/desertthunder/bop/internal/testing"
)

func sampleCrate() *models.Crate {
	crate := models.NewCrate(0, "Warehouse Warmup", "Openers before midnight")
	crate.SetID("crate123")
	return crate
}

func sampleTracks() []models.Track {
	return []models.Track{
		{
			Artist:     "Rhythim Is Rhythim",
			Title:      "Strings of Life",
			Album:      "Innovator",
			BPM:        122,
			Key:        models.Key("8A"),
			Energy:     4,
			ArtworkURL: "https://img.example/strings.jpg",
		},
		{
			Artist: "Mr. Fingers",
			Title:  "Can You Feel It",
			BPM:    120,
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleTracks())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "artist,title,album,bpm,key,energy,artwork_url") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Strings of Life") {
			t.Errorf("CSV missing track title")
		}
		if !strings.Contains(output, "8A") {
			t.Errorf("CSV missing key")
		}

		t.Run("BlanksZeroFields", func(t *testing.T) {
			lines := strings.Split(strings.TrimSpace(output), "\n")
			if len(lines) != 3 {
				t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
			}
			if !strings.HasSuffix(lines[2], ",120,,,") {
				t.Errorf("expected blank key/energy/artwork for untagged row, got: %s", lines[2])
			}
		})

		t.Run("RoundTripsThroughImporter", func(t *testing.T) {
			tracks, err := library.ReadTracksCSV(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("ReadTracksCSV failed: %v", err)
			}
			if len(tracks) != 2 {
				t.Fatalf("expected 2 tracks, got %d", len(tracks))
			}
			if tracks[0] != sampleTracks()[0] {
				t.Errorf("round trip changed track: %+v", tracks[0])
			}
		})
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleCrate(), sampleTracks(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# Warehouse Warmup") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "**Description**: Openers before midnight") {
				t.Errorf("Markdown missing description")
			}
			if !strings.Contains(output, "**Tracks**: 2") {
				t.Errorf("Markdown missing track count")
			}
			if !strings.Contains(output, "## Tracks") {
				t.Errorf("Markdown missing tracks section")
			}
			if !strings.Contains(output, "1. Rhythim Is Rhythim - Strings of Life (Innovator) [8A / 122 bpm]") {
				t.Errorf("Markdown missing track1, got: %s", output)
			}
			if !strings.Contains(output, "2. Mr. Fingers - Can You Feel It [120 bpm]") {
				t.Errorf("Markdown missing track2 (no album, no key)")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleCrate(), sampleTracks(), "test_cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "![Cover](test_cover.jpg)") {
				t.Errorf("Markdown missing cover image reference")
			}
		})

		t.Run("nil crate", func(t *testing.T) {
			data, err := ExportToMarkdown(nil, sampleTracks(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "# Library") {
				t.Errorf("expected generic heading for nil crate")
			}
		})
	})

	t.Run("ExportToM3U", func(t *testing.T) {
		data, err := ExportToM3U(sampleCrate(), sampleTracks())
		if err != nil {
			t.Fatalf("ExportToM3U failed: %v", err)
		}

		output := string(data)

		if !strings.HasPrefix(output, "#EXTM3U\n") {
			t.Errorf("M3U missing header")
		}
		if !strings.Contains(output, "#PLAYLIST:Warehouse Warmup") {
			t.Errorf("M3U missing playlist name")
		}
		if !strings.Contains(output, "#EXTINF:-1,Rhythim Is Rhythim - Strings of Life") {
			t.Errorf("M3U missing EXTINF line")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleCrate(), sampleTracks())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Crate: Warehouse Warmup") {
			t.Errorf("Text missing crate name")
		}
		if !strings.Contains(output, "Description: Openers before midnight") {
			t.Errorf("Text missing description")
		}
		if !strings.Contains(output, "Tracks: 2") {
			t.Errorf("Text missing track count")
		}
		if !strings.Contains(output, "1. Rhythim Is Rhythim - Strings of Life") {
			t.Errorf("Text missing track1")
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(sampleCrate(), 2)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"id": "crate123"`) {
			t.Errorf("JSON missing id field, got: %s", output)
		}
		if !strings.Contains(output, `"name": "Warehouse Warmup"`) {
			t.Errorf("JSON missing name field")
		}
		if !strings.Contains(output, `"track_count": 2`) {
			t.Errorf("JSON missing track_count field")
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage("")
		if err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpegbytes"))
		}))
		defer server.Close()

		data, err := DownloadImage(server.URL)
		if err != nil {
			t.Fatalf("DownloadImage failed: %v", err)
		}
		if string(data) != "jpegbytes" {
			t.Errorf("unexpected image data: %q", data)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		if _, err := DownloadImage(server.URL); err == nil {
			t.Error("expected error for 500 response")
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(sampleCrate(), sampleTracks(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "crate123_tracks.csv" {
				t.Errorf("Expected tracks file 'crate123_tracks.csv', got '%s'", result.TracksFile)
			}
			if result.MetadataFile != "crate123_metadata.json" {
				t.Errorf("Expected metadata file 'crate123_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)

			csvContent := th.MustReadFile(t, result.TracksFile)
			if !strings.Contains(csvContent, "artist,title,album,bpm,key,energy,artwork_url") {
				t.Errorf("CSV missing headers")
			}
			if !strings.Contains(csvContent, "Strings of Life") {
				t.Errorf("CSV missing track data")
			}

			metadataContent := th.MustReadFile(t, result.MetadataFile)
			if !strings.Contains(metadataContent, "crate123") || !strings.Contains(metadataContent, "Warehouse Warmup") {
				t.Errorf("Metadata JSON missing expected fields")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(sampleCrate(), sampleTracks(), "custom_export")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "custom_export_tracks.csv" {
				t.Errorf("Expected 'custom_export_tracks.csv', got '%s'", result.TracksFile)
			}
			if result.MetadataFile != "custom_export_metadata.json" {
				t.Errorf("Expected 'custom_export_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)
		})

		t.Run("LibraryWide", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(nil, sampleTracks(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			if result.TracksFile != "library_tracks.csv" {
				t.Errorf("Expected 'library_tracks.csv', got '%s'", result.TracksFile)
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithDefaultDirectory", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownExport(sampleCrate(), sampleTracks(), "", "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.Directory != "crate123" {
				t.Errorf("Expected directory 'crate123', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)

			readmePath := result.Directory + "/README.md"
			th.AssertFileExists(t, readmePath)

			content := th.MustReadFile(t, readmePath)
			if !strings.Contains(content, "# Warehouse Warmup") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(content, "1. Rhythim Is Rhythim - Strings of Life (Innovator)") {
				t.Errorf("Markdown missing track listing")
			}

			if result.CoverImage != "" {
				t.Errorf("Expected no cover image, got '%s'", result.CoverImage)
			}
		})

		t.Run("WithCoverImage", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("jpegbytes"))
			}))
			defer server.Close()

			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteMarkdownExport(sampleCrate(), sampleTracks(), "", server.URL)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.CoverImage == "" {
				t.Fatal("Expected a saved cover image")
			}
			th.AssertFileExists(t, result.CoverImage)

			content := th.MustReadFile(t, result.Directory+"/README.md")
			if !strings.Contains(content, "![Cover](cover.jpg)") {
				t.Errorf("Markdown missing cover reference")
			}
		})
	})

	t.Run("WriteM3UExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		filepath, err := WriteM3UExport(sampleCrate(), sampleTracks(), "")
		if err != nil {
			t.Fatalf("WriteM3UExport failed: %v", err)
		}

		if filepath != "crate123.m3u" {
			t.Errorf("Expected 'crate123.m3u', got '%s'", filepath)
		}

		th.AssertFileExists(t, filepath)

		content := th.MustReadFile(t, filepath)
		if !strings.HasPrefix(content, "#EXTM3U") {
			t.Errorf("M3U missing header")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			filepath, err := WriteTextExport(sampleCrate(), sampleTracks(), "")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}

			if filepath != "crate123_tracks.txt" {
				t.Errorf("Expected 'crate123_tracks.txt', got '%s'", filepath)
			}

			th.AssertFileExists(t, filepath)

			content := th.MustReadFile(t, filepath)
			if !strings.Contains(content, "Crate: Warehouse Warmup") {
				t.Errorf("Text missing crate name")
			}
			if !strings.Contains(content, "1. Rhythim Is Rhythim - Strings of Life") {
				t.Errorf("Text missing track listing")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			filepath, err := WriteTextExport(sampleCrate(), sampleTracks(), "my_crate.txt")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}

			if filepath != "my_crate.txt" {
				t.Errorf("Expected 'my_crate.txt', got '%s'", filepath)
			}

			th.AssertFileExists(t, filepath)
		})
	})
}
