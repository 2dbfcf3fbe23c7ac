// Package model defines the core data types shared across the downloader.
//
// The central types are:
//
//   - Track: a single downloadable track with its sanitized name, absolute
//     audio URL and artist attribution. Tracks are immutable after creation.
//   - ExtractionResult: the uniform record produced by one page extraction,
//     holding one or more tracks plus folder-naming information.
//
// Entities in this package never outlive a single extraction/download
// session and carry no shared mutable state. File name computation for a
// track is a pure function of the track and a TrackConfig, so the same
// result can be rendered to disk under different naming schemes.
package model
