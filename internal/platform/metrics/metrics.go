package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gatepass/internal/checkin/models"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RegistrationsTotal prometheus.Counter
	VerificationsTotal *prometheus.CounterVec
	RegisterDuration   prometheus.Histogram
	VerifyDuration     prometheus.Histogram
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on a caller-provided registerer so tests can use a
// fresh registry per case.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_registrations_total",
			Help: "Total number of attendees registered",
		}),
		VerificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_verifications_total",
			Help: "Total verification attempts by outcome",
		}, []string{"outcome"}),
		RegisterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatepass_register_duration_seconds",
			Help:    "Duration of registration operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		VerifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatepass_verify_duration_seconds",
			Help:    "Duration of verify operations (checkpoint critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementRegistrations records a successful registration.
func (m *Metrics) IncrementRegistrations() {
	m.RegistrationsTotal.Inc()
}

// ObserveVerification records one verification attempt and its latency.
// Call with time.Now() captured at the start of Verify.
func (m *Metrics) ObserveVerification(outcome models.Outcome, start time.Time) {
	m.VerificationsTotal.WithLabelValues(string(outcome)).Inc()
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}

// ObserveRegister records the duration of a registration operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
