package sessionkit

import "sync/atomic"

// MetricID identifies one in-process counter.
type MetricID uint16

const (
	// MetricLoginSuccess counts 2xx login outcomes.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts every non-success login outcome.
	MetricLoginFailure
	// MetricRegisterSuccess counts 201 register outcomes.
	MetricRegisterSuccess
	// MetricRegisterFailure counts every non-success register outcome.
	MetricRegisterFailure
	// MetricRefreshSuccess counts refresh round trips that stored a new pair.
	MetricRefreshSuccess
	// MetricRefreshFailure counts refresh round trips that cleared the session.
	MetricRefreshFailure
	// MetricRefreshCoalesced counts callers that adopted an in-flight
	// refresh instead of issuing their own.
	MetricRefreshCoalesced
	// MetricLogout counts Logout calls.
	MetricLogout
	// MetricDecodeFailure counts access tokens whose claims failed to decode.
	MetricDecodeFailure

	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds the session's atomic counters. Disabled metrics cost one
// branch per increment.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics returns a counter set honoring cfg.Enabled.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled: cfg.Enabled,
	}
}

// Enabled reports whether increments are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter. Safe on a nil or disabled receiver.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}

	s := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, int(metricIDCount)),
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return s
}
