package download

import (
	"context"

	"github.com/xaxaxzaazax/traktrain-downloader/internal/httpx"
)

// fetchFunc downloads the file at url to destPath, reporting progress
// through onProgress if non-nil.
type fetchFunc func(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error

// strategy is one way of getting a track onto disk. Strategies run in a
// fixed priority order and the first one that completes wins; each is a
// different answer to the delivery host rejecting or throttling plain
// requests.
type strategy struct {
	name  string
	fetch fetchFunc
}

// browserHeaders mimics the request profile of an in-page audio player.
// The CDN serving the tracks checks the Referer on some routes.
func browserHeaders() map[string]string {
	return map[string]string{
		"Referer":         "https://traktrain.com/",
		"Accept":          "audio/webm,audio/ogg,audio/wav,audio/*;q=0.9,*/*;q=0.5",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// buildStrategies assembles the download cascade for a client:
//
//  1. Browser-profile request. Full player headers, single transfer.
//  2. Minimal request. Just the User-Agent; some hosts reject the extra
//     headers instead of requiring them.
//  3. Chunked ranged transfer with player headers, for hosts that reset
//     long single transfers.
func buildStrategies(client *httpx.Client, chunkSize int64) []strategy {
	return []strategy{
		{
			name: "browser-headers",
			fetch: func(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
				return client.DownloadFile(ctx, url, destPath, browserHeaders(), onProgress)
			},
		},
		{
			name: "minimal-headers",
			fetch: func(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
				return client.DownloadFile(ctx, url, destPath, nil, onProgress)
			},
		},
		{
			name: "chunked-ranged",
			fetch: func(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
				return client.DownloadFileRanged(ctx, url, destPath, chunkSize, browserHeaders(), onProgress)
			},
		},
	}
}
