package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// NavigationMetrics counts navigation attempts by action and outcome.
// It is exported through the Prometheus registry served on /-/metrics.
type NavigationMetrics struct {
	navigations *prometheus.CounterVec
	lookups     *prometheus.CounterVec
}

// NewNavigationMetrics registers the navigation collectors on reg.
// A collector already registered under the same name is reused so the
// constructor can run once per test without a fresh registry.
func NewNavigationMetrics(reg prometheus.Registerer) (*NavigationMetrics, error) {
	navigations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_navigations_total",
		Help: "Navigation attempts by action (random, next, previous) and outcome.",
	}, []string{"action", "outcome"}))
	if err != nil {
		return nil, err
	}

	lookups, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_lookups_total",
		Help: "Direct quote lookups by kind (id, permalink) and outcome.",
	}, []string{"kind", "outcome"}))
	if err != nil {
		return nil, err
	}

	return &NavigationMetrics{navigations: navigations, lookups: lookups}, nil
}

// RecordNavigation increments the navigation counter.
func (m *NavigationMetrics) RecordNavigation(action, outcome string) {
	m.navigations.WithLabelValues(action, outcome).Inc()
}

// RecordLookup increments the direct lookup counter.
func (m *NavigationMetrics) RecordLookup(kind, outcome string) {
	m.lookups.WithLabelValues(kind, outcome).Inc()
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}

		return nil, err
	}

	return c, nil
}
