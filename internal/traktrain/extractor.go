package traktrain

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/model"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/traktrain/dto"
)

// PageType identifies which page shape an extraction targets.
type PageType int

const (
	// PageSingle is a single-track page, e.g. /artist/track-name-123.
	PageSingle PageType = iota

	// PageProfile is an artist profile page, e.g. /artist.
	PageProfile
)

func (pt PageType) String() string {
	if pt == PageProfile {
		return "profile"
	}
	return "single"
}

// GuessPageType infers the page shape from URL path depth: a single
// path segment is a profile, anything deeper a single-track page.
func GuessPageType(pageURL string) PageType {
	if len(pathSegments(pageURL)) <= 1 {
		return PageProfile
	}
	return PageSingle
}

// Extractor sequences URL resolution, base-URL discovery and the locator
// cascades into one extraction per page.
//
// An Extractor holds no per-call state; it is safe for concurrent use.
type Extractor struct {
	resolver *Resolver
	logger   *log.Logger
}

// NewExtractor creates an Extractor. follower resolves short links (nil
// disables resolution); logger may be nil to silence diagnostics.
func NewExtractor(follower RedirectFollower, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Extractor{
		resolver: NewResolver(follower),
		logger:   logger,
	}
}

// Extract recovers the track list from one page snapshot.
//
// The flow is fixed: resolve the URL and artist handle, require the base
// content URL (fatal if absent, for both page types), run the locator
// cascade for the page type, sanitize names and absolutize URLs.
//
// Failure modes: *RedirectError, ErrArtistNotFound (profile only),
// ErrBaseURLNotFound, ErrTrackNotFound (single), *NoTracksError (profile).
func (e *Extractor) Extract(ctx context.Context, pageType PageType, pageURL, htmlContent string) (*model.ExtractionResult, error) {
	resolved, err := e.resolver.Resolve(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if pageType == PageProfile && resolved.ArtistHandle == "" {
		return nil, ErrArtistNotFound
	}

	baseURL := FindBaseContentURL(htmlContent)
	if baseURL == "" {
		return nil, ErrBaseURLNotFound
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		// Raw-HTML strategies still work without a DOM.
		e.logger.Warn("DOM parsing failed, falling back to raw-HTML strategies", "err", err)
		doc = nil
	}

	if pageType == PageProfile {
		return e.extractProfile(resolved, doc, htmlContent, baseURL)
	}
	return e.extractSingle(resolved, doc, htmlContent, baseURL)
}

func (e *Extractor) extractProfile(resolved Resolved, doc *goquery.Document, htmlContent, baseURL string) (*model.ExtractionResult, error) {
	page := &profilePage{doc: doc, html: htmlContent, baseURL: baseURL}

	scan := locateProfileTracks(page, e.logger)
	if len(scan.infos) == 0 {
		return nil, &NoTracksError{
			PageGuess:    GuessPageType(resolved.RealURL).String(),
			BaseURLFound: true,
			ElementsSeen: scan.elementsSeen,
		}
	}
	e.logger.Debug("profile locator matched", "strategy", scan.strategy, "descriptors", len(scan.infos))

	tracks := e.buildTracks(scan.infos, resolved.ArtistHandle, baseURL)
	if len(tracks) == 0 {
		return nil, &NoTracksError{
			PageGuess:    GuessPageType(resolved.RealURL).String(),
			BaseURLFound: true,
			ElementsSeen: scan.elementsSeen,
		}
	}

	return &model.ExtractionResult{
		Tracks:             tracks,
		Artist:             resolved.ArtistHandle,
		CreateArtistFolder: true,
	}, nil
}

func (e *Extractor) extractSingle(resolved Resolved, doc *goquery.Document, htmlContent, baseURL string) (*model.ExtractionResult, error) {
	page := &singlePage{doc: doc, html: htmlContent, pageURL: resolved.RealURL, baseURL: baseURL}

	info, strategy := locateSingleTrack(page)
	if info == nil {
		return nil, fmt.Errorf("%w: all locator strategies exhausted for %s", ErrTrackNotFound, resolved.RealURL)
	}
	e.logger.Debug("single-track locator matched", "strategy", strategy, "name", info.Name)

	artist := resolveSingleArtist(page, resolved.ArtistHandle)

	tracks := e.buildTracks([]dto.PlayerInfo{*info}, artist, baseURL)
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: descriptor %q did not yield a valid absolute URL", ErrTrackNotFound, info.Name)
	}

	return &model.ExtractionResult{
		Tracks:             tracks,
		Artist:             artist,
		CreateArtistFolder: false,
	}, nil
}

// buildTracks converts accepted descriptors into tracks, absolutizing
// sources against the base content URL. Descriptors whose source cannot
// become a valid absolute URL are dropped with a warning.
func (e *Extractor) buildTracks(infos []dto.PlayerInfo, artist, baseURL string) []*model.Track {
	tracks := make([]*model.Track, 0, len(infos))
	for _, info := range infos {
		trackURL := absolutize(baseURL, info.Src)
		if !isAbsoluteURL(trackURL) {
			e.logger.Warn("dropping descriptor with unresolvable URL", "name", info.Name, "src", info.Src)
			continue
		}

		artworkURL := ""
		if info.Image != "" {
			if u := absolutize(baseURL, info.Image); isAbsoluteURL(u) {
				artworkURL = u
			}
		}

		tracks = append(tracks, model.NewTrack(info.Name, trackURL, artist, artworkURL))
	}
	return tracks
}

// absolutize joins a relative source path onto the base content URL.
// Already-absolute sources pass through untouched; scheme-relative ones
// get https.
func absolutize(baseURL, src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(src, "/")
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}
