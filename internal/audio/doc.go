// Package audio provides post-download processing for audio files.
//
// This package contains:
//   - Tagger: writes ID3v2 metadata (title, artist, cover art) to
//     downloaded MP3 files
//   - PlaylistCreator: generates M3U or PLS playlist files for a set of
//     downloaded tracks
package audio
