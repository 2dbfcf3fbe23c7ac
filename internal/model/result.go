package model

// ExtractionResult is the uniform record produced by one successful page
// extraction.
//
// Invariants:
//   - Tracks is non-empty.
//   - Every track's URL is a syntactically valid absolute URL.
//
// Failures are reported through the error return of the extractor, not
// through this type.
type ExtractionResult struct {
	// Tracks holds the discovered tracks in document order.
	Tracks []*Track

	// Artist is the artist attribution for the whole result.
	Artist string

	// CreateArtistFolder indicates whether the download layer should
	// place the files inside a folder named after the artist.
	CreateArtistFolder bool
}

// TrackCount returns the number of discovered tracks.
func (r *ExtractionResult) TrackCount() int {
	return len(r.Tracks)
}
