package measure

import (
	"sync"
)

// DefaultMeasure keeps metrics in memory.
type DefaultMeasure struct {
	mu    sync.Mutex
	Steps map[string]Metric
}

// NewDefaultMeasure creates an empty measure.
func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[string]Metric),
	}
}

// AddMetric registers a metric for a step, keeping an existing one.
func (m *DefaultMeasure) AddMetric(stepID string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Steps[stepID]; ok {
		return mt
	}

	mt := &DefaultMetric{mu: &sync.Mutex{}}
	m.Steps[stepID] = mt

	return mt
}

// GetMetric returns the metric of a step, or nil.
func (m *DefaultMeasure) GetMetric(stepID string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Steps[stepID]
}

// AllMetrics returns every metric keyed by step ID.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(map[string]Metric, len(m.Steps))
	for k, v := range m.Steps {
		res[k] = v
	}

	return res
}

var _ Measure = (*DefaultMeasure)(nil)
