package traktrain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/traktrain/dto"
)

// playerInfoAttr is the data attribute traktrain puts inline track JSON on.
const playerInfoAttr = "data-player-info"

// singlePage carries the inputs shared by the single-track strategies.
type singlePage struct {
	doc     *goquery.Document // nil when DOM parsing failed
	html    string
	pageURL string
	baseURL string
}

// singleStrategy is one way of locating the track on a single-track page.
// Strategies are pure: they inspect the page and either produce a
// descriptor or nothing.
type singleStrategy struct {
	name   string
	locate func(p *singlePage) *dto.PlayerInfo
}

// singleStrategies run in fixed priority order. The first structurally
// valid descriptor wins and later strategies are never consulted; each
// entry is a fallback for everything above it.
var singleStrategies = []singleStrategy{
	{"player-attribute", locateByPlayerAttribute},
	{"inline-script", locateByInlineScript},
	{"dom-inference", locateByDOMInference},
	{"url-inference", locateByURLStructure},
}

// locateSingleTrack runs the single-track cascade. It returns nil after
// full exhaustion; the orchestrator turns that into ErrTrackNotFound.
func locateSingleTrack(p *singlePage) (*dto.PlayerInfo, string) {
	for _, s := range singleStrategies {
		if info := s.locate(p); info != nil && info.Valid() {
			return info, s.name
		}
	}
	return nil, ""
}

// locateByPlayerAttribute reads the inline JSON from the first element
// carrying the player data attribute.
func locateByPlayerAttribute(p *singlePage) *dto.PlayerInfo {
	if p.doc == nil {
		return nil
	}
	payload, ok := p.doc.Find("[" + playerInfoAttr + "]").First().Attr(playerInfoAttr)
	if !ok {
		return nil
	}
	info, err := dto.ParsePlayerInfo(payload)
	if err != nil {
		return nil
	}
	return &info
}

// inlineScriptPatterns are (name, src) capture pairs typical of track
// objects inlined into script bodies, in decreasing order of confidence.
var inlineScriptPatterns = []struct {
	name *regexp.Regexp
	src  *regexp.Regexp
}{
	{
		regexp.MustCompile(`"name"\s*:\s*"((?:[^"\\]|\\.)+)"`),
		regexp.MustCompile(`"src"\s*:\s*"((?:[^"\\]|\\.)+)"`),
	},
	{
		regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)+)"`),
		regexp.MustCompile(`"(?:audio|mp3|url)"\s*:\s*"((?:[^"\\]|\\.)+)"`),
	},
	{
		regexp.MustCompile(`trackName\s*[:=]\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`trackSrc\s*[:=]\s*['"]([^'"]+)['"]`),
	},
}

var scriptBodyPattern = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)

// locateByInlineScript scans every script body in document order and
// applies the pattern pairs in priority order within each body. The first
// body where a pair captures both fields wins.
func locateByInlineScript(p *singlePage) *dto.PlayerInfo {
	for _, m := range scriptBodyPattern.FindAllStringSubmatch(p.html, -1) {
		body := m[1]
		for _, pair := range inlineScriptPatterns {
			nameMatch := pair.name.FindStringSubmatch(body)
			srcMatch := pair.src.FindStringSubmatch(body)
			if nameMatch == nil || srcMatch == nil {
				continue
			}
			return &dto.PlayerInfo{
				Name: unescapeJSONString(nameMatch[1]),
				Src:  unescapeJSONString(srcMatch[1]),
			}
		}
	}
	return nil
}

// locateByDOMInference derives a name from the page title or first
// heading, and a src from any audio-bearing element whose source string
// starts with the base content URL. Both must be found.
func locateByDOMInference(p *singlePage) *dto.PlayerInfo {
	if p.doc == nil {
		return nil
	}

	name := ""
	if segs := splitTitle(pageTitle(p)); len(segs) >= 2 {
		name = segs[1]
	}
	if name == "" {
		name = strings.TrimSpace(p.doc.Find("h1").First().Text())
	}
	if name == "" {
		return nil
	}

	var src string
	p.doc.Find("audio, source, [data-src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, attr := range []string{"src", "data-src"} {
			val, ok := sel.Attr(attr)
			if !ok {
				continue
			}
			if strings.HasPrefix(val, p.baseURL) {
				src = strings.TrimPrefix(val, p.baseURL)
				return false
			}
		}
		return true
	})
	if src == "" {
		return nil
	}

	return &dto.PlayerInfo{Name: name, Src: src}
}

var (
	trackIDPattern  = regexp.MustCompile(`\d+`)
	audioURLPattern = regexp.MustCompile(`https?://[^\s"'<>\\]+\.(?:mp3|wav|m4a|ogg)\b`)
)

// locateByURLStructure is the last resort: a numeric track id from the
// page path plus the first absolute audio URL found anywhere in the HTML.
func locateByURLStructure(p *singlePage) *dto.PlayerInfo {
	src := audioURLPattern.FindString(p.html)
	if src == "" {
		return nil
	}

	name := ""
	if segs := splitTitle(pageTitle(p)); len(segs) >= 1 {
		name = segs[0]
	}
	if name == "" {
		if id := trackIDPattern.FindString(urlPath(p.pageURL)); id != "" {
			name = "Track " + id
		}
	}
	if name == "" {
		return nil
	}

	return &dto.PlayerInfo{Name: name, Src: src}
}

// resolveSingleArtist picks the artist for a single-track page.
//
// The URL-derived handle wins unless it is missing or is the literal
// short-link path segment. The fallback chain never fails: page-title
// second segment, then the music meta tag, then a fixed placeholder.
func resolveSingleArtist(p *singlePage, handle string) string {
	if handle != "" && handle != shortLinkSegment {
		return handle
	}

	if segs := splitTitle(pageTitle(p)); len(segs) >= 2 && segs[1] != "" {
		return segs[1]
	}

	if p.doc != nil {
		for _, sel := range []string{`meta[property="music:musician"]`, `meta[name="music:musician"]`} {
			if content, ok := p.doc.Find(sel).Attr("content"); ok {
				if content = strings.TrimSpace(content); content != "" {
					return content
				}
			}
		}
	}

	return "Unknown Artist"
}

// titleSeparators in the order pages have used them.
var titleSeparators = []string{" — ", " – ", " | ", " - "}

var titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// pageTitle returns the document title, falling back to a raw-HTML scan
// when DOM parsing failed.
func pageTitle(p *singlePage) string {
	if p.doc != nil {
		return strings.TrimSpace(p.doc.Find("title").First().Text())
	}
	if m := titleTagPattern.FindStringSubmatch(p.html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// splitTitle splits a page title of the shape "Title — Subtitle" on the
// first separator that occurs, trimming each segment.
func splitTitle(title string) []string {
	for _, sep := range titleSeparators {
		if strings.Contains(title, sep) {
			parts := strings.Split(title, sep)
			segs := make([]string, 0, len(parts))
			for _, part := range parts {
				segs = append(segs, strings.TrimSpace(part))
			}
			return segs
		}
	}
	if title = strings.TrimSpace(title); title != "" {
		return []string{title}
	}
	return nil
}

// unescapeJSONString resolves backslash escapes in a regex-captured JSON
// string fragment. Fragments that fail to unquote are used as-is.
func unescapeJSONString(s string) string {
	unquoted, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return s
	}
	return unquoted
}
