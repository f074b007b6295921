// Package monitor collects scenario lifecycle events and
// streams them to live dashboards over WebSocket.
package monitor

import (
	"time"

	"digital.vasic.evaluator/pkg/scenario"
)

// EventType represents the type of scenario event.
type EventType string

const (
	EventStarted  EventType = "started"
	EventPassed   EventType = "passed"
	EventFailed   EventType = "failed"
	EventSkipped  EventType = "skipped"
	EventXFail    EventType = "xfail"
	EventXPass    EventType = "xpass"
	EventTimedOut EventType = "timed_out"
	EventError    EventType = "error"
)

// ScenarioEvent represents a lifecycle event during scenario
// execution.
type ScenarioEvent struct {
	Type       EventType     `json:"type"`
	ScenarioID scenario.ID   `json:"scenario_id"`
	Name       string        `json:"name"`
	Category   string        `json:"category,omitempty"`
	Status     string        `json:"status,omitempty"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// IsFinal reports whether the event ends a scenario.
func (e ScenarioEvent) IsFinal() bool {
	return e.Type != EventStarted
}

// eventTypeFor maps a result status to its event type.
func eventTypeFor(status string) EventType {
	switch status {
	case scenario.StatusPassed:
		return EventPassed
	case scenario.StatusFailed:
		return EventFailed
	case scenario.StatusSkipped:
		return EventSkipped
	case scenario.StatusXFail:
		return EventXFail
	case scenario.StatusXPass:
		return EventXPass
	case scenario.StatusTimedOut:
		return EventTimedOut
	default:
		return EventError
	}
}
