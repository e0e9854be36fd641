package settings

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Writes *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Name:      "settings_writes_total",
				Help:      "Settings writes by key and result",
			},
			[]string{"key", "result"},
		),
	}
	reg.MustRegister(m.Writes)
	return m
}

func (m *Metrics) observeWrite(key Key, result string) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(string(key), result).Inc()
}
