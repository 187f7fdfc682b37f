package ecs

import "sync"

// MetricsCollector tracks simple point-in-time counters and gauges for a
// world. The world reports the allocated-entity gauge and the
// destroyed-entity counter. It does not attempt histograms or percentiles;
// the world only ever reports coarse gauges and counters.
type MetricsCollector interface {
	RecordCounter(name string, delta int64)
	RecordGauge(name string, value int64)
	Snapshot() map[string]int64
	Reset()
}

type metricsCollectorImpl struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]int64
}

// NewMetricsCollector returns a MetricsCollector with empty state.
func NewMetricsCollector() MetricsCollector {
	return &metricsCollectorImpl{
		counters: make(map[string]int64),
		gauges:   make(map[string]int64),
	}
}

func (m *metricsCollectorImpl) RecordCounter(name string, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += delta
}

func (m *metricsCollectorImpl) RecordGauge(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// Snapshot returns a copy of every counter and gauge currently tracked.
func (m *metricsCollectorImpl) Snapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.counters)+len(m.gauges))
	for k, v := range m.counters {
		out[k] = v
	}
	for k, v := range m.gauges {
		out[k] = v
	}
	return out
}

func (m *metricsCollectorImpl) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.gauges = make(map[string]int64)
}
