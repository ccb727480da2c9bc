// Package metrics exposes the batch orchestrator's Prometheus
// instrumentation (SPEC_FULL.md §4 domain stack): counts of items by
// terminal status and error kind, plus a histogram of per-item
// wall-clock duration. It is the production-grade implementation of the
// C9 "opaque progress sink" spec.md §4.9 requires alongside the plain
// console/callback/discard sinks, following the same constructor-
// injected-registry idiom the teacher's own metrics code uses rather
// than registering against the global default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector wraps a dedicated Prometheus registry so a batch run's
// metrics never collide with another collector registered elsewhere in
// the same process (spec.md §9 "avoid process-wide singletons").
type Collector struct {
	registry *prometheus.Registry
	items    *prometheus.CounterVec
	duration prometheus.Histogram
}

// New builds a Collector with its own registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pmcgrab",
		Subsystem: "batch",
		Name:      "items_total",
		Help:      "Count of batch items by terminal status and error kind.",
	}, []string{"status", "error_kind"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pmcgrab",
		Subsystem: "batch",
		Name:      "item_duration_seconds",
		Help:      "Per-item wall-clock duration from dequeue to ledger write.",
		Buckets:   prometheus.DefBuckets,
	})
	reg.MustRegister(items, duration)
	return &Collector{registry: reg, items: items, duration: duration}
}

// ObserveItem increments the items_total counter for one completed item.
func (c *Collector) ObserveItem(status, errorKind string) {
	if c == nil {
		return
	}
	c.items.WithLabelValues(status, errorKind).Inc()
}

// ObserveDuration records one item's wall-clock processing time.
func (c *Collector) ObserveDuration(d time.Duration) {
	if c == nil {
		return
	}
	c.duration.Observe(d.Seconds())
}

// Handler returns the HTTP handler for this collector's /metrics
// endpoint, served by the CLI when --metrics-addr is set.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
