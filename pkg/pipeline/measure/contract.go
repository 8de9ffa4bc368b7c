// Package measure records how long pipeline steps take.
package measure

import "time"

// Measure holds one Metric per pipeline step.
type Measure interface {
	AddMetric(stepID string) Metric
	GetMetric(stepID string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations of one step across runs.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	Runs() int64
	SetTotalDuration(total time.Duration)
	GetTotalDuration() time.Duration
}
