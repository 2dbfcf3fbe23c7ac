package audio

import (
	"fmt"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible). Can be extended
	// with EXTINF lines carrying display titles.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// Extension returns the file extension for the format, including the dot.
func (pf PlaylistFormat) Extension() string {
	if pf == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// ParsePlaylistFormat maps a settings string to a PlaylistFormat.
// Unknown values default to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	if s == "pls" {
		return FormatPLS
	}
	return FormatM3U
}

// Entry is one playlist line: a local filename plus its display title.
type Entry struct {
	FileName string
	Title    string
}

// PlaylistCreator generates playlist files for downloaded tracks.
//
// Entries reference tracks by bare filename, assuming the playlist file
// sits in the same directory as the tracks.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.Create(entries)
//	os.WriteFile(filepath.Join(folder, "someartist.m3u"), []byte(content), 0644)
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator. extended only affects
// the M3U format.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Extension returns the file extension for the creator's format.
func (p *PlaylistCreator) Extension() string {
	return p.format.Extension()
}

// Create generates playlist content for the given entries.
func (p *PlaylistCreator) Create(entries []Entry) string {
	if p.format == FormatPLS {
		return p.createPLS(entries)
	}
	return p.createM3U(entries)
}

func (p *PlaylistCreator) createM3U(entries []Entry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, entry := range entries {
		if p.extended {
			// Track durations are not known at extraction time; -1 is
			// the M3U convention for "unknown".
			fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", entry.Title)
		}
		sb.WriteString(entry.FileName)
		sb.WriteString("\n")
	}

	return sb.String()
}

func (p *PlaylistCreator) createPLS(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")
	for i, entry := range entries {
		n := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", n, entry.FileName)
		fmt.Fprintf(&sb, "Title%d=%s\n", n, entry.Title)
		fmt.Fprintf(&sb, "Length%d=-1\n", n)
	}
	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(entries))
	sb.WriteString("Version=2\n")

	return sb.String()
}
