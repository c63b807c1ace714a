package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure reasons used as label values.
const (
	ReasonModelUnavailable = "model_unavailable"
	ReasonSchemaMismatch   = "schema_mismatch"
	ReasonClassifierError  = "classifier_error"
	ReasonTimeout          = "timeout"
	ReasonInvalidOutput    = "invalid_probability"
	ReasonInvalidRequest   = "invalid_request"
)

// Metrics provides observability for the scoring module.
type Metrics struct {
	// Assessments by resulting tier
	Assessments *prometheus.CounterVec

	// Failed assessments by reason
	Failures *prometheus.CounterVec

	// End-to-end assessment latency (map + score + tier)
	AssessLatency prometheus.Histogram

	// Distribution of returned probabilities
	Probability prometheus.Histogram
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the scoring metrics with reg (tests use a
// fresh registry to avoid duplicate registration).
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Assessments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanrisk_assessments_total",
			Help: "Total completed risk assessments by tier",
		}, []string{"tier"}),

		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanrisk_assessment_failures_total",
			Help: "Total failed risk assessments by reason",
		}, []string{"reason"}),

		AssessLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "loanrisk_assessment_duration_seconds",
			Help:    "Duration of a risk assessment including classifier inference",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		Probability: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "loanrisk_default_probability",
			Help:    "Distribution of predicted default probabilities",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		}),
	}
}

// IncrementAssessment records a completed assessment.
func (m *Metrics) IncrementAssessment(tier string, probability float64) {
	if m != nil {
		m.Assessments.WithLabelValues(tier).Inc()
		m.Probability.Observe(probability)
	}
}

// IncrementFailure records a failed assessment.
func (m *Metrics) IncrementFailure(reason string) {
	if m != nil {
		m.Failures.WithLabelValues(reason).Inc()
	}
}

// ObserveAssessLatency records the total assessment duration.
func (m *Metrics) ObserveAssessLatency(d time.Duration) {
	if m != nil {
		m.AssessLatency.Observe(d.Seconds())
	}
}
