package traktrain

import "regexp"

// baseURLPatterns match the global-variable assignment carrying the
// content-delivery base URL. Pages have shipped it under slightly
// different spellings, so the patterns are tried in order.
var baseURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`AWS_BASE_URL\s*=\s*"([^"]+)"`),
	regexp.MustCompile(`AWS_BASE_URL\s*=\s*'([^']+)'`),
	regexp.MustCompile(`AWS_URL\s*=\s*"([^"]+)"`),
	regexp.MustCompile(`AWS_URL\s*=\s*'([^']+)'`),
}

// FindBaseContentURL searches raw HTML for the delivery base URL
// assignment and returns the captured URL, or "" if no pattern matches.
//
// Callers must treat "" as fatal for the whole extraction: relative track
// paths cannot be resolved without the prefix.
func FindBaseContentURL(html string) string {
	for _, re := range baseURLPatterns {
		if m := re.FindStringSubmatch(html); m != nil {
			return m[1]
		}
	}
	return ""
}
