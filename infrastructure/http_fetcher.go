package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"caseodds/models"
	log "github.com/sirupsen/logrus"
)

// HTTPFetcher downloads JSON documents from the upstream API
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher with a request timeout and a static
// browser-like User-Agent, which the upstream requires to pass its bot filter.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchJSON performs a single GET and returns the body once it is known to be
// valid JSON. There are no retries.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid request for %s: %v", models.ErrFetchFailed, url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", models.ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %v", models.ErrFetchFailed, url, err)
	}

	log.WithFields(log.Fields{
		"url":      url,
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start).String(),
	}).Debug("Fetched upstream document")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s returned %s", models.ErrFetchFailed, url, resp.Status)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response from %s is not valid JSON", models.ErrParseFailed, url)
	}

	return body, nil
}
