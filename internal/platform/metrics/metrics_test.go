package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveJobAndUpstream(t *testing.T) {
	m := New()

	m.ObserveJob("invite_sweep", nil)
	m.ObserveJob("invite_sweep", errors.New("x"))
	m.ObserveUpstream("razorpay", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("invite_sweep", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("invite_sweep", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("razorpay", "ok")))

	var nilMetrics *Metrics
	nilMetrics.ObserveJob("noop", nil)
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("GET", "/health", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "petcare_http_requests_total")
}
