package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultTimeout  = 60 * time.Second
	redirectTimeout = 10 * time.Second
)

// Client wraps HTTP operations with site-specific configuration.
//
// Example usage:
//
//	client := NewClient("traktrain-downloader")
//
//	// Fetch HTML content
//	html, err := client.GetString(ctx, "https://traktrain.com/someartist")
//
//	// Download file with progress
//	err = client.DownloadFile(ctx, audioURL, "/path/to/file.mp3", nil, func(written, total int64) {
//	    fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client with a 60 second timeout and the
// given User-Agent header.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: userAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// GetString performs a GET request and returns the response body as a
// string. This is the page document provider for the extraction pipeline.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ResolveRedirect issues a HEAD request, follows any redirects and returns
// the final resolved location.
//
// The request carries its own bounded timeout so a stalled short-link
// service cannot hang an extraction. Any transport error is returned to
// the caller, which wraps it into its own error type.
func (c *Client) ResolveRedirect(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, redirectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// The client follows redirects; the request URL on the response is
	// the final location.
	return resp.Request.URL.String(), nil
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// Returns an error if the request fails or the server doesn't report a
// Content-Length.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}

	return resp.ContentLength, nil
}

// DownloadFile downloads a file to destPath, streaming it to disk.
//
// headers are set on the request in addition to the configured User-Agent
// (a header named User-Agent in the map overrides it). onProgress, if
// non-nil, is called with (bytesWritten, totalBytes) as data arrives.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, headers map[string]string, onProgress func(written, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.applyHeaders(req, headers)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(writer, resp.Body)
	return err
}

// DownloadFileRanged downloads a file in fixed-size chunks using Range
// requests.
//
// Some delivery hosts throttle or reset long single transfers; requesting
// bounded ranges sidesteps that. The server must honor Range requests
// (206 Partial Content); a 200 response with the full body on the first
// chunk is also accepted and completes the download in one pass.
func (c *Client) DownloadFileRanged(ctx context.Context, url, destPath string, chunkSize int64, headers map[string]string, onProgress func(written, total int64)) error {
	if chunkSize <= 0 {
		return fmt.Errorf("invalid chunk size %d", chunkSize)
	}

	total, err := c.GetFileSize(ctx, url)
	if err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("zero-length file at %s", url)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var written int64
	for written < total {
		end := written + chunkSize - 1
		if end >= total {
			end = total - 1
		}

		n, full, err := c.downloadRange(ctx, url, file, headers, written, end, total, onProgress)
		if err != nil {
			return err
		}
		if full {
			return nil
		}
		written += n
	}

	return nil
}

// downloadRange fetches bytes [start, end] and appends them to w. It
// reports full=true when the server ignored the Range header and sent the
// whole file.
func (c *Client) downloadRange(ctx context.Context, url string, w io.Writer, headers map[string]string, start, end, total int64, onProgress func(written, total int64)) (int64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false, err
	}
	c.applyHeaders(req, headers)
	req.Header.Set("Range", "bytes="+strconv.FormatInt(start, 10)+"-"+strconv.FormatInt(end, 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusPartialContent, http.StatusOK:
	default:
		return 0, false, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var writer io.Writer = w
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   w,
			Total:    total,
			Written:  start,
			OnUpdate: onProgress,
		}
	}

	n, err := io.Copy(writer, resp.Body)
	if err != nil {
		return n, false, err
	}

	return n, resp.StatusCode == http.StatusOK, nil
}

func (c *Client) applyHeaders(req *http.Request, headers map[string]string) {
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
