// Package httpx wraps the HTTP operations the downloader needs.
//
// The Client covers three concerns:
//
//  1. Page fetching: GetString retrieves the HTML document that the
//     extraction pipeline treats as an opaque snapshot.
//  2. Redirect resolution: ResolveRedirect follows a short link to its
//     final location with a bounded timeout, for deriving the real page
//     URL before extraction.
//  3. Downloads: DownloadFile streams audio to disk with per-request
//     headers and optional progress reporting; DownloadFileRanged does
//     the same in fixed-size Range chunks for servers that throttle
//     plain transfers.
package httpx
