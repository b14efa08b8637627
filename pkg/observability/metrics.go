// Package observability bridges the engine's lifecycle hooks to
// Prometheus collectors. The HTTP adapter serves the registry on /metrics.
package observability

import (
	"context"

	"github.com/aretw0/canopy/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	registry *prometheus.Registry

	nodeVisits   *prometheus.CounterVec
	routes       *prometheus.CounterVec
	nodeDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canopy_node_visits_total",
				Help: "Total number of pipeline node visits",
			},
			[]string{"node_id", "is_error"},
		),
		routes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "canopy_route_decisions_total",
				Help: "Routing decisions by route and category",
			},
			[]string{"route", "category"},
		),
		nodeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "canopy_node_duration_seconds",
				Help: "Duration of pipeline node executions",
			},
			[]string{"node_id"},
		),
	}
	m.registry.MustRegister(m.nodeVisits, m.routes, m.nodeDuration)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that feed the collectors. Chain them with
// any user-supplied hooks before constructing the engine.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			isError := "false"
			if e.IsError {
				isError = "true"
			}
			m.nodeVisits.WithLabelValues(e.NodeID, isError).Inc()
			m.nodeDuration.WithLabelValues(e.NodeID).Observe(e.Duration.Seconds())
		},
		OnRouteDecision: func(_ context.Context, e *domain.RouteEvent) {
			m.routes.WithLabelValues(e.Route, string(e.Category)).Inc()
		},
	}
}

// Chain merges hook sets so several observers can watch one engine.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			for _, h := range hooks {
				if h.OnNodeEnter != nil {
					h.OnNodeEnter(ctx, e)
				}
			}
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			for _, h := range hooks {
				if h.OnNodeLeave != nil {
					h.OnNodeLeave(ctx, e)
				}
			}
		},
		OnRouteDecision: func(ctx context.Context, e *domain.RouteEvent) {
			for _, h := range hooks {
				if h.OnRouteDecision != nil {
					h.OnRouteDecision(ctx, e)
				}
			}
		},
	}
}
