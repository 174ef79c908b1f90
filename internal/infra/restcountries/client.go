// Package restcountries fetches raw country records from the REST Countries API
// or from a JSON snapshot on disk.
package restcountries

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultURL requests exactly the fields the quiz uses (the API allows at most ten).
const DefaultURL = "https://restcountries.com/v3.1/all?fields=name,cca2,capital,population,area,region,languages,currencies,timezones,flags"

const maxBodySize = 32 << 20

// Client loads country records over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a client for the given endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// FetchCountries performs one GET and decodes the response. There are no retries.
func (c *Client) FetchCountries(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, newUnreachableError(c.url, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newUnreachableError(c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newStatusError(c.url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, newUnreachableError(c.url, fmt.Errorf("read body: %w", err))
	}

	return DecodeRecords(c.url, body)
}

// FileSource loads country records from a JSON file with the same shape as
// the API response. Used for offline play and fixtures.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchCountries reads and decodes the snapshot file.
func (s *FileSource) FetchCountries(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnreachableError(s.path, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, newUnreachableError(s.path, err)
	}

	return DecodeRecords(s.path, data)
}
