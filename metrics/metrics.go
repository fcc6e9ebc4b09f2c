// Package metrics exports Binspire tool and entity activity as Prometheus
// metrics. The Collector is an engine plugin; register it with
// binspire.WithPlugin and serve Handler on /metrics.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xraph/binspire/plugin"
)

var (
	_ plugin.ToolCalled    = (*Collector)(nil)
	_ plugin.EntityCreated = (*Collector)(nil)
	_ plugin.EntityUpdated = (*Collector)(nil)
	_ plugin.EntityDeleted = (*Collector)(nil)
)

// Collector counts tool calls and entity lifecycle events.
type Collector struct {
	registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	entityEvents *prometheus.CounterVec
}

// New creates a Collector backed by its own registry, which also carries
// the Go runtime and process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "binspire",
			Name:      "tool_calls_total",
			Help:      "MCP tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "binspire",
			Name:      "tool_duration_seconds",
			Help:      "MCP tool latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		entityEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "binspire",
			Name:      "entity_events_total",
			Help:      "Entity writes by entity and event.",
		}, []string{"entity", "event"}),
	}
	c.registry.MustRegister(
		c.toolCalls,
		c.toolDuration,
		c.entityEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Name implements plugin.Plugin.
func (c *Collector) Name() string { return "metrics" }

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// OnToolCalled implements plugin.ToolCalled.
func (c *Collector) OnToolCalled(_ context.Context, call plugin.ToolCall) error {
	c.toolCalls.WithLabelValues(call.Name, call.Outcome).Inc()
	c.toolDuration.WithLabelValues(call.Name).Observe(call.Duration.Seconds())
	return nil
}

// OnEntityCreated implements plugin.EntityCreated.
func (c *Collector) OnEntityCreated(_ context.Context, entity, _ string, _ any) error {
	c.entityEvents.WithLabelValues(entity, "created").Inc()
	return nil
}

// OnEntityUpdated implements plugin.EntityUpdated.
func (c *Collector) OnEntityUpdated(_ context.Context, entity, _ string, _ any) error {
	c.entityEvents.WithLabelValues(entity, "updated").Inc()
	return nil
}

// OnEntityDeleted implements plugin.EntityDeleted.
func (c *Collector) OnEntityDeleted(_ context.Context, entity, _ string) error {
	c.entityEvents.WithLabelValues(entity, "deleted").Inc()
	return nil
}
