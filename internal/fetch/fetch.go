// Package fetch retrieves full-length media sources over HTTP for the
// preview pipelines.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the raw bytes of a media source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StatusError reports a non-2xx response. Status carries the HTTP status
// text so the failure reason survives into logs and the content record.
type StatusError struct {
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response: %s", e.Status)
}

// HTTPClientConfig holds configuration for the HTTP fetcher.
type HTTPClientConfig struct {
	// Timeout bounds the whole fetch including body read.
	Timeout time.Duration
	// MaxBytes caps the response body size. Zero means unlimited.
	MaxBytes int64
}

// DefaultHTTPClientConfig returns an HTTPClientConfig with sensible defaults
// for full-length audio and video assets.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:  2 * time.Minute,
		MaxBytes: 1 << 30, // 1 GiB
	}
}

// HTTPFetcher implements Fetcher using net/http.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// Compile-time verification that HTTPFetcher implements Fetcher.
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a new HTTP-based fetcher.
func NewHTTPFetcher(cfg HTTPClientConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: cfg.Timeout},
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch downloads the source into memory. Non-2xx responses return a
// StatusError; the body is fully read so the connection can be reused.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Status: resp.Status, Code: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("source exceeds %d byte limit", f.maxBytes)
	}

	return data, nil
}
