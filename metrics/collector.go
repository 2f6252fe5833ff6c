// Package metrics exposes promise lifecycle activity as Prometheus metrics.
// Attach a Collector to a deferred with promise.WithObserver; everything
// derived from that deferred reports to the same collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ccbrown/promise"
)

// Collector implements promise.Observer with Prometheus counters for the
// deferreds created, resolved, and rejected, a gauge for the ones still
// pending, and a counter for callback panics contained by the engine.
type Collector struct {
	created  prometheus.Counter
	resolved prometheus.Counter
	rejected prometheus.Counter
	panics   prometheus.Counter
	pending  prometheus.Gauge
}

var _ promise.Observer = (*Collector)(nil)

// New creates a Collector with the given namespace, registering its metrics
// with reg. A nil reg means prometheus.DefaultRegisterer.
func New(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Collector{
		created: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deferreds_created_total",
			Help:      "Number of deferreds created.",
		}),
		resolved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deferreds_resolved_total",
			Help:      "Number of deferreds that settled successfully.",
		}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deferreds_rejected_total",
			Help:      "Number of deferreds that settled with a failure.",
		}),
		panics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_panics_total",
			Help:      "Number of callback panics contained by the engine.",
		}),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deferreds_pending",
			Help:      "Number of deferreds created but not yet settled.",
		}),
	}
}

// Created implements promise.Observer.
func (c *Collector) Created() {
	c.created.Inc()
	c.pending.Inc()
}

// Settled implements promise.Observer.
func (c *Collector) Settled(s promise.State) {
	switch s {
	case promise.Resolved:
		c.resolved.Inc()
	case promise.Rejected:
		c.rejected.Inc()
	}
	c.pending.Dec()
}

// CallbackPanic implements promise.Observer.
func (c *Collector) CallbackPanic(v any) {
	c.panics.Inc()
}
