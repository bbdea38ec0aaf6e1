// Package telemetry exposes business-level Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks commerce activity: orders, transitions, and cart
// mutations.
type Metrics struct {
	OrdersCreated     *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
	CartMutations     *prometheus.CounterVec
	StockRejections   prometheus.Counter
}

// NewMetrics creates and registers business metrics on the given
// registry.
func NewMetrics(registry *prometheus.Registry, namespace string) *Metrics {
	if namespace == "" {
		namespace = "gerai"
	}

	m := &Metrics{
		OrdersCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_created_total",
				Help:      "Total number of orders created, by buyer role",
			},
			[]string{"role"},
		),
		StatusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_status_transitions_total",
				Help:      "Total number of order and payment status transitions",
			},
			[]string{"kind", "to_status"},
		),
		CartMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_mutations_total",
				Help:      "Total number of cart mutations, by operation",
			},
			[]string{"operation"},
		),
		StockRejections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stock_rejections_total",
				Help:      "Total number of cart or checkout requests rejected for insufficient stock",
			},
		),
	}

	registry.MustRegister(
		m.OrdersCreated,
		m.StatusTransitions,
		m.CartMutations,
		m.StockRejections,
	)

	return m
}
