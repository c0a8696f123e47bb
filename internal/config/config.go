// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and SHARES_* environment variables.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"time"

	"github.com/okian/shares/internal/adapters/relay"
	"github.com/okian/shares/internal/domain/cik"
	"github.com/okian/shares/internal/presenter"
	"github.com/okian/shares/internal/resolver"
	"github.com/okian/shares/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DefaultCIK is rendered when the request carries no valid CIK and is the fallback target.
	DefaultCIK string `koanf:"default_cik"`

	// ProviderBaseURL is the scheme and host of the XBRL API.
	ProviderBaseURL string `koanf:"provider_base_url"`

	// RelayBaseURL wraps provider requests as ?url=...; empty requests the provider directly.
	RelayBaseURL string `koanf:"relay_base_url"`

	// UserAgent identifies this client to the provider.
	UserAgent string `koanf:"user_agent"`

	// HTTPTimeoutMS bounds each upstream request; 0 disables the bound.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// Locale drives thousands grouping of rendered numbers.
	Locale string `koanf:"locale"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsRefreshMS is how often the server refreshes the system gauges.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms"`

	// MetricsPrefix is inserted before every metric name.
	MetricsPrefix string `koanf:"metrics_prefix"`

	// MetricsLabels are constant labels added to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// MetricsBuckets overrides the latency histogram buckets, in milliseconds.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`
}

const defaultMetricsRefreshMS = 10000

// New creates a Config holding defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DefaultCIK:      cik.Default,
		ProviderBaseURL: resolver.DefaultProviderBaseURL,
		RelayBaseURL:    relay.DefaultBaseURL,
		UserAgent:       relay.DefaultUserAgent,
		HTTPTimeoutMS:   0,
		Locale:          presenter.DefaultLocale,

		MetricsEnabled:   true,
		MetricsRefreshMS: defaultMetricsRefreshMS,
	}
}

// MetricsOptions translates the metrics settings into options for metrics.Configure.
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(c.MetricsEnabled),
		metrics.WithRefreshInterval(time.Duration(c.MetricsRefreshMS) * time.Millisecond),
		metrics.WithMetricPrefix(c.MetricsPrefix),
		metrics.WithCustomLabels(c.MetricsLabels),
		metrics.WithHistogramBuckets(c.MetricsBuckets),
	}
}

// HTTPTimeout returns HTTPTimeoutMS as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}
