// Package relay fetches JSON documents, optionally through a pass-through
// relay that takes the target as its url query parameter.
package relay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/shares/pkg/metrics"
)

// Defaults for the public relay and the SEC-style identifying header.
const (
	DefaultBaseURL   = "https://api.allorigins.win/raw"
	DefaultUserAgent = "ExampleApp/1.0 (email@example.com)"

	maxBodyBytes = 32 << 20
)

// Fetcher retrieves the raw JSON body behind target.
type Fetcher interface {
	FetchJSON(ctx context.Context, target string, headers http.Header) ([]byte, error)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	direct  bool
}

// New creates an HTTPFetcher. With no options it relays through DefaultBaseURL
// using a client without a timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:  &http.Client{},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.baseURL == "" {
		f.direct = true
	}
	return f
}

// URL returns the address actually requested for target.
func (f *HTTPFetcher) URL(target string) string {
	if f.direct {
		return target
	}
	return f.baseURL + "?url=" + url.QueryEscape(target)
}

// FetchJSON issues a GET for target and returns the body of a 2xx response.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, target string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(target), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("error", float64(time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordUpstreamRequest(strconv.Itoa(resp.StatusCode), float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	return body, nil
}
