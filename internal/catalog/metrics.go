package catalog

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	FilterResults prometheus.Histogram
	LoadFailures  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FilterResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storefront",
			Name:      "catalog_filter_results",
			Help:      "Products returned per catalog query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "catalog_load_failures_total",
			Help:      "Catalog snapshot loads that failed",
		}),
	}
	reg.MustRegister(m.FilterResults, m.LoadFailures)
	return m
}
