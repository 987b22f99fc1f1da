// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method, and status code.",
	}, []string{"route", "method", "code"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campus",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "validation",
		Name:      "failures_total",
		Help:      "Precondition failures by error code.",
	}, []string{"code"})

	CrawledNotices = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "crawler",
		Name:      "notices_total",
		Help:      "Notices stored by the crawler.",
	})

	CrawlErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "crawler",
		Name:      "errors_total",
		Help:      "Failed crawl runs.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served request.
func ObserveRequest(route, method string, code int, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
