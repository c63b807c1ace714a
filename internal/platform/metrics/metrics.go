package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"loanrisk/internal/model"
)

// Metrics holds process-level Prometheus metrics that do not belong to a
// single module.
type Metrics struct {
	// Info about the loaded artifact; value is always 1
	ModelInfo *prometheus.GaugeVec

	// Model load failures; non-zero means the service is not ready
	ModelLoadFailures prometheus.Counter
}

// New creates and registers all platform metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the platform metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ModelInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "loanrisk_model_info",
			Help: "Loaded classifier artifact",
		}, []string{"version", "kind", "source"}),

		ModelLoadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanrisk_model_load_failures_total",
			Help: "Total failed attempts to load the classifier artifact",
		}),
	}
}

// ObserveModelLoad records a load outcome. It has the shape model.WithLoadObserver expects.
func (m *Metrics) ObserveModelLoad(a *model.Artifact, err error) {
	if m == nil {
		return
	}
	if err != nil || a == nil {
		m.ModelLoadFailures.Inc()
		return
	}
	info := a.Info()
	m.ModelInfo.WithLabelValues(info.Version, string(info.Kind), info.Source).Set(1)
}
