// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic. The
// Metrics() middleware counts requests, measures latencies, and tracks
// in-flight concurrency:
//
//   - method: HTTP method verb (GET/POST/…)
//   - path:   the registered Gin route (e.g. /api/items/:id); falls back to
//     the raw URL path when no route matched
//   - status: numeric status code as a string (e.g. "200", "404")
//
// The raw-path fallback on unmatched routes is a known cardinality risk
// under a public-facing deployment; it is kept so that 404 traffic remains
// visible per path. All collectors are safe for concurrent use.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests. It is incremented when a request enters the
	// pipeline, before its outcome is known, so it carries no status label.
	httpReqs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests received.",
		},
	)

	// httpDur records request duration in milliseconds. The buckets span
	// sub-millisecond validation failures up to 5-second store round-trips.
	httpDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in milliseconds.",
			Buckets: []float64{0.1, 5, 15, 50, 100, 200, 300, 400, 500, 1000, 2000, 5000},
		},
		[]string{"method", "path", "status"},
	)

	// httpInflight gauges the number of in-flight (currently processing) requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpDur, httpInflight)
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// Semantics:
//   - Increments http_requests_total at request start
//   - Observes http_request_duration_ms(method, path, status) on completion
//   - Tracks http_requests_inflight during handler execution
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpReqs.Inc()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		ms := float64(time.Since(start)) / float64(time.Millisecond)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())

		httpDur.WithLabelValues(c.Request.Method, path, status).Observe(ms)
	}
}
