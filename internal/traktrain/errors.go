package traktrain

import (
	"errors"
	"fmt"
)

// ErrBaseURLNotFound is returned when the page does not carry the global
// delivery base URL assignment.
//
// This is fatal for the whole extraction: every relative track path needs
// the base URL as its prefix, so no locator is run without it.
var ErrBaseURLNotFound = errors.New("base content URL not found in page")

// ErrArtistNotFound is returned for profile pages whose URL carries no
// artist handle. Profile extraction requires the handle before any track
// locator runs.
var ErrArtistNotFound = errors.New("artist handle missing from profile URL")

// ErrTrackNotFound is returned when every single-track locator strategy
// exhausted without producing a structurally valid descriptor.
var ErrTrackNotFound = errors.New("no track found on page")

// RedirectError reports a failed short-link redirect resolution.
type RedirectError struct {
	// URL is the short link that was being resolved.
	URL string

	// Err is the underlying transport error.
	Err error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("resolving short link %s: %v", e.URL, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// NoTracksError reports full cascade exhaustion on a profile page. It
// carries enough context about what was searched to guide a manual retry.
type NoTracksError struct {
	// PageGuess is the page type inferred from the URL path depth,
	// "profile" or "single".
	PageGuess string

	// BaseURLFound records whether the base content URL was present.
	BaseURLFound bool

	// ElementsSeen is the number of player elements inspected by the
	// attribute scan strategy, including ones whose payload was rejected.
	ElementsSeen int
}

func (e *NoTracksError) Error() string {
	return fmt.Sprintf(
		"no tracks found: page looks like a %s page, base content URL found: %t, player elements seen: %d",
		e.PageGuess, e.BaseURLFound, e.ElementsSeen,
	)
}
