// Package metrics records scenario execution counters.
package metrics

import "time"

// Recorder defines the interface for recording scenario
// metrics.
type Recorder interface {
	// RecordExecution records a scenario execution.
	RecordExecution(scenarioID, status string, duration time.Duration)
	// RecordAssertion records an assertion evaluation.
	RecordAssertion(scenarioID, assertionType string, passed bool)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActive sets the gauge of scenarios currently running.
	SetActive(count int)
}

// NoopMetrics is a no-op implementation of Recorder useful for
// testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordExecution(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordAssertion(_, _ string, _ bool)          {}
func (NoopMetrics) IncrementRunTotal()                           {}
func (NoopMetrics) SetActive(_ int)                              {}
