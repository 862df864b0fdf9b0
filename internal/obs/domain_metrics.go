package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartEventsTotal counts emitted cart domain events by topic.
	CartEventsTotal *prometheus.CounterVec
	// DiscountApplicationsTotal counts discount activations by identifier.
	DiscountApplicationsTotal *prometheus.CounterVec
	// TotalsComputedTotal counts pricing computations served.
	TotalsComputedTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_events_total",
			Help:      "Count of emitted cart domain events by topic.",
		}, []string{"topic"})
		DiscountApplicationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discount_applications_total",
			Help:      "Count of discount activations by identifier.",
		}, []string{"code"})
		TotalsComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "totals_computed_total",
			Help:      "Number of cart pricing computations served.",
		})

		CartEventsTotal = registerCounterVec(reg, CartEventsTotal)
		DiscountApplicationsTotal = registerCounterVec(reg, DiscountApplicationsTotal)
		TotalsComputedTotal = registerCounter(reg, TotalsComputedTotal)
	})
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) prometheus.Counter {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
