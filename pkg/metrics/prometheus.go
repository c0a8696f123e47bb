// Package metrics provides Prometheus metrics for the shares resolver service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Resolution metrics
	resolutions *prometheus.CounterVec
	fallbacks   prometheus.Counter
	renders     prometheus.Counter

	// Upstream (relay/provider) metrics
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "shares",
		subsystem:        "resolver",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.resolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("resolutions_total"),
		Help:        "Resolver calls by outcome and failure kind",
		ConstLabels: labels,
	}, []string{"outcome", "kind"})

	m.fallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("fallbacks_total"),
		Help:        "Page loads that fell back to the default identifier",
		ConstLabels: labels,
	})

	m.renders = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("renders_total"),
		Help:        "Results written into an output sink",
		ConstLabels: labels,
	})

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("upstream_requests_total"),
		Help:        "Requests sent to the relay or provider by status code",
		ConstLabels: labels,
	}, []string{"status_code"})

	m.upstreamLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("upstream_latency_milliseconds"),
		Help:        "Latency of upstream requests in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "HTTP error responses by endpoint, method and error type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("memory_usage_bytes"),
		Help:        "Current heap allocation in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("goroutines"),
		Help:        "Current number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("gc_pause_milliseconds"),
		Help:        "Average GC pause in milliseconds",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
		ConstLabels: labels,
	})
}

// Manager methods. A disabled manager records nothing.

// RecordResolution counts one resolver call. kind is empty on success.
func (m *Manager) RecordResolution(outcome, kind string) {
	if m.enabled {
		m.resolutions.WithLabelValues(outcome, kind).Inc()
	}
}

// RecordFallback counts one fallback to the default identifier.
func (m *Manager) RecordFallback() {
	if m.enabled {
		m.fallbacks.Inc()
	}
}

// RecordRender counts one result written into a sink.
func (m *Manager) RecordRender() {
	if m.enabled {
		m.renders.Inc()
	}
}

// RecordUpstreamRequest counts an upstream request and observes its latency.
func (m *Manager) RecordUpstreamRequest(statusCode string, latencyMs float64) {
	if m.enabled {
		m.upstreamRequests.WithLabelValues(statusCode).Inc()
		m.upstreamLatency.Observe(latencyMs)
	}
}

// RecordHTTPRequest counts an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByEndpoint counts an HTTP error response.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes an average GC pause.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// Package-level helpers delegate to the global manager.

// RecordResolution counts one resolver call on the global manager.
func RecordResolution(outcome, kind string) { globalManager.RecordResolution(outcome, kind) }

// RecordFallback counts one fallback on the global manager.
func RecordFallback() { globalManager.RecordFallback() }

// RecordRender counts one render on the global manager.
func RecordRender() { globalManager.RecordRender() }

// RecordUpstreamRequest records an upstream request on the global manager.
func RecordUpstreamRequest(statusCode string, latencyMs float64) {
	globalManager.RecordUpstreamRequest(statusCode, latencyMs)
}

// RecordHTTPRequest counts an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration observes an HTTP duration on the global manager.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint counts an HTTP error on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage sets heap allocation on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine count on the global manager.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime observes a GC pause on the global manager.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// Configure replaces the global manager with one built from opts on a fresh
// custom registry. Call it at startup, before handlers capture GetRegistry.
func Configure(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
	return globalManager
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns how often gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Global returns the global manager.
func Global() *Manager { return globalManager }
