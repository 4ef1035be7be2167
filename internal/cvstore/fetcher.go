package cvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cv-builder/internal/cv"
)

// DataPath is the fixed path résumé data is fetched from.
const DataPath = "/cv-data.json"

const maxDataSize = 5 << 20 // 5MB

// ErrNoData marks a fetch answered with a non-success status. The store treats it as
// "keep defaults" rather than as a failure.
var ErrNoData = errors.New("no resume data available")

// Fetcher retrieves the résumé document.
type Fetcher interface {
	Fetch(ctx context.Context) (cv.Resume, error)
}

// HTTPFetcher fetches DataPath from a base URL.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher builds a fetcher for baseURL with the given client timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// URL returns the absolute address the fetcher requests.
func (f *HTTPFetcher) URL() string {
	return f.BaseURL + DataPath
}

// Fetch performs a single GET. Non-2xx statuses return ErrNoData.
func (f *HTTPFetcher) Fetch(ctx context.Context) (cv.Resume, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(), nil)
	if err != nil {
		return cv.Resume{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return cv.Resume{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDataSize))
		return cv.Resume{}, fmt.Errorf("%w: status %d", ErrNoData, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDataSize+1))
	if err != nil {
		return cv.Resume{}, fmt.Errorf("read %s: %w", DataPath, err)
	}
	if len(body) > maxDataSize {
		return cv.Resume{}, fmt.Errorf("%s exceeds %d bytes", DataPath, maxDataSize)
	}
	// Only malformed JSON fails; the document is kept whatever its shape.
	var resume cv.Resume
	if err := json.Unmarshal(body, &resume); err != nil {
		return cv.Resume{}, fmt.Errorf("decode %s: %w", DataPath, err)
	}
	return resume, nil
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (cv.Resume, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (cv.Resume, error) {
	return f(ctx)
}
