package service

import (
	"storefront-api/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts service operations by outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics registers the service counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "service_operations_total",
			Help:      "Service operations by entity, operation and outcome.",
		}, []string{"entity", "operation", "outcome"}),
	}
}

// observe records one operation. The outcome is "ok" or the error kind. A
// nil receiver is a no-op.
func (m *Metrics) observe(entity, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(model.KindOf(err))
	}
	m.operations.WithLabelValues(entity, operation, outcome).Inc()
}
