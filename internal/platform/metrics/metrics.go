package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for sign-up and unregister counters.
const (
	OutcomeSuccess           = "success"
	OutcomeNotFound          = "not_found"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeNotRegistered     = "not_registered"
	OutcomeInvalid           = "invalid"
	OutcomeError             = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	SignUps          *prometheus.CounterVec
	Unregistrations  *prometheus.CounterVec
	PersistFailures  prometheus.Counter
	Participants     prometheus.Gauge
	OperationLatency *prometheus.HistogramVec
	EndpointLatency  *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignUps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_activity_signups_total",
			Help: "Total number of activity sign-up attempts, labeled by outcome",
		}, []string{"outcome"}),
		Unregistrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_activity_unregistrations_total",
			Help: "Total number of activity unregister attempts, labeled by outcome",
		}, []string{"outcome"}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "mergington_activities_persist_failures_total",
			Help: "Total number of registry writes that failed after an accepted mutation",
		}),
		Participants: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mergington_activity_participants",
			Help: "Current number of participants across all activities",
		}),
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mergington_activity_operation_latency_seconds",
			Help:    "Latency of registry operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mergington_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// Handler exposes the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) IncrementSignUps(outcome string) {
	m.SignUps.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementUnregistrations(outcome string) {
	m.Unregistrations.WithLabelValues(outcome).Inc()
}

// IncrementPersistFailures is suitable as a store persistence-failure hook.
func (m *Metrics) IncrementPersistFailures(_ error) {
	m.PersistFailures.Inc()
}

// SetParticipants resets the participants gauge, typically after loading.
func (m *Metrics) SetParticipants(count int) {
	m.Participants.Set(float64(count))
}

func (m *Metrics) IncrementParticipants() {
	m.Participants.Inc()
}

func (m *Metrics) DecrementParticipants() {
	m.Participants.Dec()
}

// ObserveOperationLatency records the latency for a registry operation
func (m *Metrics) ObserveOperationLatency(operation string, durationSeconds float64) {
	m.OperationLatency.WithLabelValues(operation).Observe(durationSeconds)
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}
