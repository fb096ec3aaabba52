// package formatter provides functions to export crate and library data to various formats (CSV, Markdown, M3U, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/bop/internal/models"
	"github.com/desertthunder/bop/internal/shared"
)

// csvHeader matches the column names the library importer resolves, so an
// exported file round-trips through ImportCSV unchanged.
var csvHeader = []string{"artist", "title", "album", "bpm", "key", "energy", "artwork_url"}

// ExportToCSV converts a track list to CSV with columns: artist, title,
// album, bpm, key, energy, artwork_url. Zero-valued numeric fields are
// written as blanks.
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		bpm := ""
		if track.BPM > 0 {
			bpm = strconv.FormatFloat(track.BPM, 'f', -1, 64)
		}
		energy := ""
		if track.Energy > 0 {
			energy = strconv.Itoa(track.Energy)
		}
		record := []string{
			track.Artist,
			track.Title,
			track.Album,
			bpm,
			string(track.Key),
			energy,
			track.ArtworkURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a crate to Markdown with an optional cover image.
// A nil crate renders the whole library under a generic heading.
func ExportToMarkdown(crate *models.Crate, tracks []models.Track, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", exportName(crate)))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if crate != nil && crate.Description() != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", crate.Description()))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, track.Artist, track.Title, albumPart, tagPart(track)))
	}

	return buf.Bytes(), nil
}

// ExportToM3U converts a track list to an extended M3U set list. Tracks in a
// curation library carry no media paths, so each entry's location line is the
// conventional "Artist - Title" label rather than a playable URI.
func ExportToM3U(crate *models.Crate, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("#EXTM3U\n")
	buf.WriteString(fmt.Sprintf("#PLAYLIST:%s\n", exportName(crate)))

	for _, track := range tracks {
		buf.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", track.String()))
		buf.WriteString(track.String() + "\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a track list to plain text format
func ExportToText(crate *models.Crate, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Crate: %s\n", exportName(crate)))
	if crate != nil && crate.Description() != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", crate.Description()))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, track.String()))
	}

	return buf.Bytes(), nil
}

// exportName resolves the display heading for an export.
func exportName(crate *models.Crate) string {
	if crate == nil || crate.Name() == "" {
		return "Library"
	}
	return crate.Name()
}

// tagPart renders the bracketed key/tempo suffix on a track line.
func tagPart(track models.Track) string {
	tags := ""
	if track.Key != "" {
		tags = string(track.Key)
	}
	if track.BPM > 0 {
		if tags != "" {
			tags += " / "
		}
		tags += fmt.Sprintf("%.0f bpm", track.BPM)
	}
	if tags == "" {
		return ""
	}
	return fmt.Sprintf(" [%s]", tags)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// crateMetadata is the JSON view of a crate, which keeps its storage fields
// unexported.
type crateMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TrackCount  int       `json:"track_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToMetadataJSON generates a JSON representation of crate metadata (without tracks)
func ToMetadataJSON(crate *models.Crate, trackCount int) ([]byte, error) {
	meta := crateMetadata{Name: "Library", TrackCount: trackCount}
	if crate != nil {
		meta.ID = crate.ID()
		meta.Name = crate.Name()
		meta.Description = crate.Description()
		meta.CreatedAt = crate.CreatedAt()
		meta.UpdatedAt = crate.UpdatedAt()
	}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a crate to CSV format with an accompanying metadata JSON file.
//
// Defaults to the crate ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(crate *models.Crate, tracks []models.Track, baseFilepath string) (*CSVExportResult, error) {
	baseFilepath = defaultBase(crate, baseFilepath)

	csvData, err := ExportToCSV(tracks)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(crate, len(tracks))
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a crate to Markdown format in a dedicated directory.
//
// Directory name defaults to the crate ID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(crate *models.Crate, tracks []models.Track, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	outputDir = defaultBase(crate, outputDir)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(crate, tracks, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteM3UExport exports a crate to an extended M3U file.
//
// Defaults to {crate.ID}.m3u as the filename.
func WriteM3UExport(crate *models.Crate, tracks []models.Track, filepath string) (string, error) {
	if filepath == "" {
		filepath = defaultBase(crate, "") + ".m3u"
	}

	m3uData, err := ExportToM3U(crate, tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate M3U: %w", err)
	}

	if err := os.WriteFile(filepath, m3uData, 0644); err != nil {
		return "", fmt.Errorf("failed to write M3U file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a crate to plain text format.
//
// Defaults to {crate.ID}_tracks.txt as the filename.
func WriteTextExport(crate *models.Crate, tracks []models.Track, filepath string) (string, error) {
	if filepath == "" {
		filepath = defaultBase(crate, "") + "_tracks.txt"
	}

	textData, err := ExportToText(crate, tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// defaultBase resolves the output base path for an export.
func defaultBase(crate *models.Crate, base string) string {
	if base != "" {
		return base
	}
	if crate != nil && crate.ID() != "" {
		return crate.ID()
	}
	return "library"
}
