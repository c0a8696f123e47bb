package relay

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the HTTPFetcher.
type Option func(*HTTPFetcher)

// WithBaseURL sets the relay endpoint. An empty value requests targets directly.
func WithBaseURL(base string) Option {
	return func(f *HTTPFetcher) {
		f.baseURL = base
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client = &http.Client{Timeout: d, Transport: f.client.Transport}
		}
	}
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}
