package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejections prometheus.Counter
	Degraded   prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "loanrisk_ratelimit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
		Degraded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "loanrisk_ratelimit_degraded",
			Help: "1 while the shared rate limit store is bypassed in favour of the in-memory fallback",
		}),
	}
}

func (m *Metrics) IncrementRejections() {
	if m != nil {
		m.Rejections.Inc()
	}
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.Degraded.Set(1)
	} else {
		m.Degraded.Set(0)
	}
}
