// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for request handling.
type Metrics struct {
	// Extraction outcomes by matched rule ("none" when nothing matched)
	ExtractionsTotal *prometheus.CounterVec

	// Bus lookup cache hits and misses
	LookupCacheTotal *prometheus.CounterVec

	// HTTP traffic
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors with the default registry.
// Repeated calls return the same instance.
//
// Metrics:
//   - voiceroute_extractions_total{rule}
//   - voiceroute_lookup_cache_total{result}
//   - voiceroute_http_requests_total{method,endpoint,status}
//   - voiceroute_http_request_duration_seconds{method,endpoint}
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = newMetrics(promauto.With(prometheus.DefaultRegisterer))
	})
	return globalMetrics
}

// NewMetricsWithRegistry registers a fresh set of collectors on reg.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	return newMetrics(promauto.With(reg))
}

func newMetrics(f promauto.Factory) *Metrics {
	return &Metrics{
		ExtractionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voiceroute_extractions_total",
				Help: "Total route extractions by matched rule",
			},
			[]string{"rule"},
		),
		LookupCacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voiceroute_lookup_cache_total",
				Help: "Bus lookup cache results",
			},
			[]string{"result"}, // "hit" or "miss"
		),
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voiceroute_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voiceroute_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
	}
}

// RecordExtraction counts one extraction attempt. Nil receivers are no-ops.
func (m *Metrics) RecordExtraction(rule string) {
	if m == nil {
		return
	}
	if rule == "" {
		rule = "none"
	}
	m.ExtractionsTotal.WithLabelValues(rule).Inc()
}

// RecordCacheLookup counts a lookup cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.LookupCacheTotal.WithLabelValues(result).Inc()
}

// Middleware returns an Echo middleware that records HTTP metrics.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			// Path is the route template; fall back to "/" for unmatched routes
			endpoint := c.Path()
			if endpoint == "" {
				endpoint = "/"
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			method := c.Request().Method
			m.RequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
