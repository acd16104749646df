package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics wraps the Prometheus collectors the front end exports.
type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	errors        *prometheus.CounterVec
	backendCalls  *prometheus.CounterVec
	sessionEvents *prometheus.CounterVec
}

// NewMetrics builds the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "message_admin_http_requests_total",
			Help: "HTTP requests served, by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "message_admin_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "message_admin_http_errors_total",
			Help: "Requests that ended in an error response, by error code.",
		}, []string{"route", "method", "code"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "message_admin_backend_requests_total",
			Help: "Calls made to the backend API, by method and outcome.",
		}, []string{"method", "outcome"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "message_admin_session_events_total",
			Help: "Session lifecycle events, by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(m.requests, m.latency, m.errors, m.backendCalls, m.sessionEvents)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordBackendCall counts an outbound API call. outcome is "ok", "http_error" or "transport_error".
func (m *Metrics) RecordBackendCall(method, outcome string) {
	if m == nil {
		return
	}
	m.backendCalls.WithLabelValues(method, outcome).Inc()
}

// RecordSessionEvent counts a session lifecycle event.
func (m *Metrics) RecordSessionEvent(eventType string) {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues(eventType).Inc()
}
