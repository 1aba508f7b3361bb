package storefront

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK            = "ok"
	outcomeEmpty         = "empty"
	outcomeError         = "error"
	outcomeAuthRequired  = "auth_required"
	outcomeDuplicateItem = "duplicate"
)

// Metrics counts client-side storefront activity. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Searches  *prometheus.CounterVec
	Mutations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		Searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "qkart",
				Subsystem: "storefront",
				Name:      "searches_total",
				Help:      "Throttled searches sent to the backend, by outcome",
			},
			[]string{"outcome"},
		),
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "qkart",
				Subsystem: "storefront",
				Name:      "cart_mutations_total",
				Help:      "Cart add/update attempts, by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.Searches, m.Mutations)
	return m
}

func (m *Metrics) search(outcome string) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
}

func (m *Metrics) mutation(outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(outcome).Inc()
}
