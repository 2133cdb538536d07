package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ShippingEstimateTotal counts shipping estimate computations by outcome.
	ShippingEstimateTotal *prometheus.CounterVec
	// ShippingEstimateDuration records estimate computation latency in milliseconds.
	ShippingEstimateDuration *prometheus.HistogramVec
	// ShippingRuleCacheTotal counts seller rule-set cache lookups by result.
	ShippingRuleCacheTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers the domain collectors.
// Safe to call more than once; only the first call registers.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ShippingEstimateTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipping_estimate_total",
			Help:      "Count of shipping estimate computations by outcome.",
		}, []string{"result"}))
		ShippingEstimateDuration = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shipping_estimate_duration_ms",
			Help:      "Latency of shipping estimate computations in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"result"}))
		ShippingRuleCacheTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipping_rule_cache_total",
			Help:      "Count of seller rule-set cache lookups by result.",
		}, []string{"result"}))
	})
}
