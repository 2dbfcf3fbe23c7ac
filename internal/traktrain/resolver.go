package traktrain

import (
	"context"
	"net/url"
	"strings"
)

// shortLinkSegment is the first path segment traktrain uses for its
// share links (traktrain.com/t/<code>). A handle equal to it is never a
// real artist handle.
const shortLinkSegment = "t"

// Resolved is the outcome of URL resolution.
type Resolved struct {
	// RealURL is the input URL, or the final location if the input was a
	// short link.
	RealURL string

	// ArtistHandle is the first non-empty path segment of RealURL, or ""
	// when the path is empty or root. Callers must treat "" as "unknown",
	// not as an error.
	ArtistHandle string
}

// RedirectFollower performs a HEAD-style fetch with redirect following and
// returns the final resolved location. httpx.Client satisfies it.
type RedirectFollower interface {
	ResolveRedirect(ctx context.Context, url string) (string, error)
}

// Resolver normalizes page URLs and derives probable artist handles.
type Resolver struct {
	follower RedirectFollower
}

// NewResolver creates a Resolver. follower may be nil when the caller
// guarantees no short links will be passed in (tests do this).
func NewResolver(follower RedirectFollower) *Resolver {
	return &Resolver{follower: follower}
}

// Resolve normalizes rawURL and derives the probable artist handle.
//
// Short links are resolved over the network; a transport failure there
// surfaces as *RedirectError. Everything else is pure string work and
// cannot fail: an underivable handle comes back as "".
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (Resolved, error) {
	realURL := rawURL
	if IsShortLink(rawURL) && r.follower != nil {
		loc, err := r.follower.ResolveRedirect(ctx, rawURL)
		if err != nil {
			return Resolved{}, &RedirectError{URL: rawURL, Err: err}
		}
		realURL = loc
	}

	return Resolved{
		RealURL:      realURL,
		ArtistHandle: firstPathSegment(realURL),
	}, nil
}

// IsShortLink reports whether rawURL matches the share-link pattern
// (first path segment is the short-link marker).
func IsShortLink(rawURL string) bool {
	return firstPathSegment(rawURL) == shortLinkSegment
}

// firstPathSegment returns the first non-empty path segment of rawURL, or
// "" if the URL cannot be parsed or its path is empty/root.
func firstPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// urlPath returns the path component of rawURL, or "" if it cannot be
// parsed.
func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

// pathSegments returns all non-empty path segments of rawURL.
func pathSegments(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	var segs []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
