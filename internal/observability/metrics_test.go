package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRequest("/admin", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/admin", "GET", 200, 5*time.Millisecond)
	m.RecordError("/login", "POST", "VALIDATION_FAILED")
	m.RecordBackendCall("GET", "ok")
	m.RecordSessionEvent("login_failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/admin", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/login", "POST", "VALIDATION_FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendCalls.WithLabelValues("GET", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionEvents.WithLabelValues("login_failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordBackendCall("GET", "ok")
		m.RecordSessionEvent("logged_out")
	})
}
