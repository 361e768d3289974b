package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counters and latency for page flows.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	remote   *prometheus.CounterVec
}

// NewHTTPMetrics registers the storefront metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of storefront HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Storefront HTTP requests by route and status class.",
	}, []string{"route", "method", "status"})
	remote := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_api_calls_total",
		Help: "Calls to the remote commerce API by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, requests, remote)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
		remote:   remote,
	}
}

// ObserveRequest records the outcome of one handled request.
func (m *HTTPMetrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(route), method).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(normalizeLabel(route), method, statusClass(status)).Inc()
}

// IncRemoteCall counts one remote API call with its outcome.
func (m *HTTPMetrics) IncRemoteCall(operation string, err error) {
	if m == nil || m.remote == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.remote.WithLabelValues(normalizeLabel(operation), outcome).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
