package traktrain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xaxaxzaazax/traktrain-downloader/internal/model"
)

// settleRetryDelay is how long to wait before refetching a page that came
// back without its base content URL. Traktrain can serve the shell of a
// page before its dynamic state has settled.
var settleRetryDelay = 2 * time.Second

// PageProvider fetches the HTML document for a URL. httpx.Client
// satisfies it.
type PageProvider interface {
	GetString(ctx context.Context, url string) (string, error)
}

// FetchAndExtract fetches pageURL through provider and extracts its
// tracks. When the first fetch yields a page without the base content URL,
// the page is refetched once after a short settle delay before the miss
// becomes the caller's error.
func FetchAndExtract(ctx context.Context, provider PageProvider, extractor *Extractor, pageType PageType, pageURL string) (*model.ExtractionResult, error) {
	htmlContent, err := provider.GetString(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	result, err := extractor.Extract(ctx, pageType, pageURL, htmlContent)
	if errors.Is(err, ErrBaseURLNotFound) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(settleRetryDelay):
		}
		htmlContent, err = provider.GetString(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("refetch page: %w", err)
		}
		result, err = extractor.Extract(ctx, pageType, pageURL, htmlContent)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}
