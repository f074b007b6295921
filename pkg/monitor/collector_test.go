package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/scenario"
)

func testDefinition() *scenario.Definition {
	return &scenario.Definition{
		ID:       "addition",
		Name:     "adds two numbers",
		Category: "arithmetic",
	}
}

func TestEventCollector_Emit(t *testing.T) {
	c := NewEventCollector()

	var received []ScenarioEvent
	var mu sync.Mutex
	c.OnEvent(func(e ScenarioEvent) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
	})

	c.Emit(ScenarioEvent{Type: EventStarted, ScenarioID: "s-1"})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, EventStarted, received[0].Type)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestEventCollector_EmitStarted(t *testing.T) {
	c := NewEventCollector()
	c.EmitStarted(testDefinition())

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventStarted, events[0].Type)
	assert.Equal(t, scenario.ID("addition"), events[0].ScenarioID)
	assert.Equal(t, "arithmetic", events[0].Category)
	assert.Equal(t, 0, c.Stats().Total)
}

func TestEventCollector_EmitResult(t *testing.T) {
	tests := []struct {
		status string
		want   EventType
	}{
		{scenario.StatusPassed, EventPassed},
		{scenario.StatusFailed, EventFailed},
		{scenario.StatusSkipped, EventSkipped},
		{scenario.StatusXFail, EventXFail},
		{scenario.StatusXPass, EventXPass},
		{scenario.StatusTimedOut, EventTimedOut},
		{scenario.StatusError, EventError},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			c := NewEventCollector()
			c.EmitResult(testDefinition(), &scenario.Result{
				ScenarioID: "addition",
				Status:     tt.status,
				Duration:   time.Millisecond,
			})

			events := c.Events()
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].Type)
			assert.Equal(t, time.Millisecond, events[0].Duration)
		})
	}
}

func TestEventCollector_Stats(t *testing.T) {
	c := NewEventCollector()
	def := testDefinition()
	for _, status := range []string{
		scenario.StatusPassed,
		scenario.StatusPassed,
		scenario.StatusFailed,
		scenario.StatusSkipped,
		scenario.StatusXFail,
		scenario.StatusXPass,
		scenario.StatusTimedOut,
		scenario.StatusError,
	} {
		c.EmitStarted(def)
		c.EmitResult(def, &scenario.Result{Status: status})
	}

	stats := c.Stats()
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 2, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.XFail)
	assert.Equal(t, 1, stats.XPass)
	assert.Equal(t, 1, stats.TimedOut)
	assert.Equal(t, 1, stats.Errors)
	assert.Len(t, c.Events(), 16)
}

func TestResultMessage(t *testing.T) {
	assert.Equal(t, "boom", resultMessage(&scenario.Result{
		Error: "boom",
	}))
	assert.Equal(t, "expected 2, got 3", resultMessage(&scenario.Result{
		Assertions: []assertion.Result{
			{Passed: true, Message: "ok"},
			{Passed: false, Message: "expected 2, got 3"},
		},
		Reason: "ignored",
	}))
	assert.Equal(t, "Not yet implemented", resultMessage(&scenario.Result{
		Reason: "Not yet implemented",
	}))
}

func TestEventCollector_Reset(t *testing.T) {
	c := NewEventCollector()
	c.EmitResult(testDefinition(), &scenario.Result{
		Status: scenario.StatusPassed,
	})
	c.Reset()

	assert.Empty(t, c.Events())
	assert.Equal(t, 0, c.Stats().Total)
}

func TestEventCollector_Concurrent(t *testing.T) {
	c := NewEventCollector()
	def := testDefinition()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.EmitResult(def, &scenario.Result{
				Status: scenario.StatusPassed,
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, c.Stats().Passed)
}
