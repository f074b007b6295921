package monitor

import (
	"sync"
	"time"

	"digital.vasic.evaluator/pkg/scenario"
)

// EventCollector captures scenario events and timing data. It
// is safe for concurrent use.
type EventCollector struct {
	mu       sync.RWMutex
	events   []ScenarioEvent
	handlers []func(ScenarioEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics over final events.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	XFail     int           `json:"xfail"`
	XPass     int           `json:"xpass"`
	TimedOut  int           `json:"timed_out"`
	Errors    int           `json:"errors"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]ScenarioEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(ScenarioEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers. Handlers run
// on the caller's goroutine, outside the collector lock.
func (c *EventCollector) Emit(event ScenarioEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	if event.IsFinal() {
		c.stats.Total++
	}
	switch event.Type {
	case EventPassed:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventSkipped:
		c.stats.Skipped++
	case EventXFail:
		c.stats.XFail++
	case EventXPass:
		c.stats.XPass++
	case EventTimedOut:
		c.stats.TimedOut++
	case EventError:
		c.stats.Errors++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(ScenarioEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitStarted emits a scenario started event.
func (c *EventCollector) EmitStarted(def *scenario.Definition) {
	c.Emit(ScenarioEvent{
		Type:       EventStarted,
		ScenarioID: def.ID,
		Name:       def.DisplayName(),
		Category:   def.Category,
		Status:     scenario.StatusRunning,
	})
}

// EmitResult emits the final event for a scenario result.
func (c *EventCollector) EmitResult(
	def *scenario.Definition,
	res *scenario.Result,
) {
	c.Emit(ScenarioEvent{
		Type:       eventTypeFor(res.Status),
		ScenarioID: res.ScenarioID,
		Name:       res.ScenarioName,
		Category:   def.Category,
		Status:     res.Status,
		Message:    resultMessage(res),
		Duration:   res.Duration,
	})
}

// resultMessage picks the most useful line to show for a
// result: the error, the first failed assertion, or the marker
// reason.
func resultMessage(res *scenario.Result) string {
	if res.Error != "" {
		return res.Error
	}
	for _, a := range res.Assertions {
		if !a.Passed {
			return a.Message
		}
	}
	return res.Reason
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []ScenarioEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]ScenarioEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
