// Package promcollector provides a Prometheus implementation of
// docidx.MetricsCollector.
//
//	reg := prometheus.NewRegistry()
//	mc, _ := promcollector.New(reg)
//	c, _ := docidx.New(fields, docidx.WithMetricsCollector(mc))
package promcollector

import (
	"time"

	"github.com/hupe1980/docidx"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Collector records collection operations as Prometheus metrics.
type Collector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	matched   prometheus.Histogram
	removed   prometheus.Counter
}

// Ensure Collector implements docidx.MetricsCollector.
var _ docidx.MetricsCollector = (*Collector)(nil)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes every metric name. Defaults to "docidx".
	Namespace string
	// ConstLabels are attached to every metric.
	ConstLabels prometheus.Labels
	// LatencyBuckets default to prometheus.DefBuckets.
	LatencyBuckets []float64
}

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer, optFns ...func(o *Options)) (*Collector, error) {
	opts := Options{
		Namespace:      "docidx",
		LatencyBuckets: prometheus.DefBuckets,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        "operation_latency_seconds",
			Help:        "Latency of collection operations",
			ConstLabels: opts.ConstLabels,
			Buckets:     opts.LatencyBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "operations_total",
			Help:        "Total collection operations",
			ConstLabels: opts.ConstLabels,
		}, []string{"op", "status"}),
		matched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        "find_matched_documents",
			Help:        "Number of documents matched per query",
			ConstLabels: opts.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 10),
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "removed_matched_documents_total",
			Help:        "Total documents removed by query",
			ConstLabels: opts.ConstLabels,
		}),
	}

	for _, m := range []prometheus.Collector{c.opLatency, c.ops, c.matched, c.removed} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	c.opLatency.WithLabelValues(op, status).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
}

// RecordAdd implements docidx.MetricsCollector.
func (c *Collector) RecordAdd(d time.Duration, err error) { c.observe("add", d, err) }

// RecordUpdate implements docidx.MetricsCollector.
func (c *Collector) RecordUpdate(d time.Duration, err error) { c.observe("update", d, err) }

// RecordRemove implements docidx.MetricsCollector.
func (c *Collector) RecordRemove(d time.Duration, err error) { c.observe("remove", d, err) }

// RecordFind implements docidx.MetricsCollector.
func (c *Collector) RecordFind(clauses, matched int, d time.Duration, err error) {
	c.observe("find", d, err)
	if err == nil {
		c.matched.Observe(float64(matched))
	}
}

// RecordRemoveMatched implements docidx.MetricsCollector.
func (c *Collector) RecordRemoveMatched(removed int, d time.Duration, err error) {
	c.observe("remove_matched", d, err)
	c.removed.Add(float64(removed))
}
