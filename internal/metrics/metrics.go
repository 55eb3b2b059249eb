// Package metrics exposes the agent's Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records bookstore calls and session resolutions.
type Collector struct {
	remoteRequests *prometheus.CounterVec
	remoteLatency  *prometheus.HistogramVec
	resolutions    *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookswap_remote_requests_total",
			Help: "Bookstore API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		remoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookswap_remote_request_duration_seconds",
			Help:    "Bookstore API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookswap_session_resolutions_total",
			Help: "Identity resolutions by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(c.remoteRequests, c.remoteLatency, c.resolutions)

	return c
}

// ObserveRemoteCall records one bookstore call.
func (c *Collector) ObserveRemoteCall(operation, outcome string, elapsed time.Duration) {
	c.remoteRequests.WithLabelValues(operation, outcome).Inc()
	c.remoteLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveResolution records one identity resolution.
func (c *Collector) ObserveResolution(result string) {
	c.resolutions.WithLabelValues(result).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NewRouter serves Handler on /metrics.
func NewRouter(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
