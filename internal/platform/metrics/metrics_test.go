package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordActivityOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementSignUps(OutcomeSuccess)
	m.IncrementSignUps(OutcomeSuccess)
	m.IncrementSignUps(OutcomeAlreadyRegistered)
	m.IncrementUnregistrations(OutcomeNotRegistered)
	m.IncrementPersistFailures(errors.New("disk full"))
	m.SetParticipants(5)
	m.IncrementParticipants()
	m.DecrementParticipants()
	m.DecrementParticipants()

	assert.InDelta(t, 2, testutil.ToFloat64(m.SignUps.WithLabelValues(OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SignUps.WithLabelValues(OutcomeAlreadyRegistered)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Unregistrations.WithLabelValues(OutcomeNotRegistered)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PersistFailures), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.Participants), 0)
}

func TestNewOnSeparateRegistriesDoesNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncrementPersistFailures(nil)
	m.ObserveOperationLatency("signup", 0.01)
	m.ObserveEndpointLatency("/activities", 0.02)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "mergington_activities_persist_failures_total 1")
	assert.Contains(t, body, `mergington_activity_operation_latency_seconds_count{operation="signup"} 1`)
	assert.Contains(t, body, `mergington_endpoint_latency_seconds_count{endpoint="/activities"} 1`)
}
