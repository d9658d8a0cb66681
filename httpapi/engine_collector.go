package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tolgauslu/authgate"
)

// engineCollector bridges the engine's in-process counters into the API's
// Prometheus registry. Counters are read as const metrics at scrape time, so
// the engine keeps its lock-free atomic representation.
type engineCollector struct {
	engine  *authgate.Engine
	ops     *prometheus.Desc
	dropped *prometheus.Desc
}

func newEngineCollector(engine *authgate.Engine) *engineCollector {
	return &engineCollector{
		engine: engine,
		ops: prometheus.NewDesc(
			"authgate_operations_total",
			"Engine operation outcomes by counter name.",
			[]string{"counter"}, nil,
		),
		dropped: prometheus.NewDesc(
			"authgate_audit_dropped_total",
			"Audit events dropped by dispatcher backpressure.",
			nil, nil,
		),
	}
}

func (c *engineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ops
	ch <- c.dropped
}

func (c *engineCollector) Collect(ch chan<- prometheus.Metric) {
	if c.engine == nil {
		return
	}

	snap := c.engine.MetricsSnapshot()
	for id, value := range snap.Counters {
		name := authgate.MetricName(id)
		if name == "" {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(value), name)
	}

	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(c.engine.AuditDropped()))
}
