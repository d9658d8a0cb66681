package authgate

import "sync/atomic"

// MetricID identifies a counter in the in-process metrics system.
type MetricID uint8

const (
	MetricRegisterSuccess MetricID = iota
	MetricRegisterDuplicate
	MetricLoginSuccess
	MetricLoginFailure
	MetricRefreshSuccess
	MetricRefreshFailure
	MetricLogout
	MetricValidateSuccess
	MetricValidateFailure

	metricIDCount
)

// metricNames maps counter ids to stable export names. Order must match the
// MetricID constants.
var metricNames = [metricIDCount]string{
	"register_success",
	"register_duplicate",
	"login_success",
	"login_failure",
	"refresh_success",
	"refresh_failure",
	"logout",
	"validate_success",
	"validate_failure",
}

// MetricName returns the stable export name for id, or "" for unknown ids.
func MetricName(id MetricID) string {
	if id >= metricIDCount {
		return ""
	}
	return metricNames[id]
}

// Metrics holds lock-free counters. All operations are no-ops when the
// metrics subsystem is disabled, so call sites never need to branch.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// NewMetrics creates a Metrics instance. When cfg.Enabled is false every
// write is a no-op and Snapshot returns zeroes.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot returns a consistent-enough copy of the counters. Individual
// reads are atomic; the set as a whole is not, which is acceptable for
// monitoring output.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
