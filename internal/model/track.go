package model

import (
	"path/filepath"
	"strings"

	"github.com/xaxaxzaazax/traktrain-downloader/internal/fsutil"
)

// Track represents a single downloadable track discovered on a page.
//
// Track contains everything the download layer needs:
//   - Name for display and file naming (already sanitized)
//   - URL as an absolute address of the audio file
//   - Artist for attribution, folder naming and tagging
//   - ArtworkURL for optional cover art (empty if none was found)
//
// Tracks are immutable after creation and owned by the ExtractionResult
// they are embedded in.
type Track struct {
	// Name is the sanitized track title.
	Name string

	// URL is the absolute URL of the audio file.
	URL string

	// Artist is the attributed artist name.
	Artist string

	// ArtworkURL is the absolute URL of the track's cover art.
	// Empty string means no artwork is available.
	ArtworkURL string
}

// TrackConfig holds track file naming settings.
//
// The FileNameFormat supports placeholders that are replaced with actual
// values:
//   - {title}  - Track name
//   - {artist} - Artist name
//
// Example:
//
//	cfg := &TrackConfig{FileNameFormat: "{artist} - {title}.mp3"}
//	// Results in filenames like "prodbywest - Cold Nights.mp3"
type TrackConfig struct {
	// FileNameFormat is the template for track filenames.
	// Must include the file extension (typically ".mp3").
	FileNameFormat string
}

// NewTrack creates a new Track.
//
// The name is sanitized on creation so every consumer sees a
// filesystem-safe value.
func NewTrack(name, url, artist, artworkURL string) *Track {
	return &Track{
		Name:       fsutil.SanitizeName(name),
		URL:        url,
		Artist:     artist,
		ArtworkURL: artworkURL,
	}
}

// FileName computes the local filename for this track from the config
// template. The result is sanitized.
func (t *Track) FileName(cfg *TrackConfig) string {
	name := cfg.FileNameFormat
	name = strings.ReplaceAll(name, "{artist}", t.Artist)
	name = strings.ReplaceAll(name, "{title}", t.Name)
	return fsutil.SanitizeName(name)
}

// FilePath computes the full local path for this track inside folder.
func (t *Track) FilePath(folder string, cfg *TrackConfig) string {
	return filepath.Join(folder, t.FileName(cfg))
}
