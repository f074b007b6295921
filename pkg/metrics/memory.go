package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// InMemoryMetrics implements Recorder with counters and
// duration samples held in memory. It is safe for concurrent
// use.
type InMemoryMetrics struct {
	mu         sync.RWMutex
	executions map[string]int
	assertions map[string]int
	durations  map[string][]time.Duration
	runTotal   int
	active     int
}

// NewInMemoryMetrics creates a new InMemoryMetrics instance.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		executions: make(map[string]int),
		assertions: make(map[string]int),
		durations:  make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetrics) RecordExecution(
	scenarioID, status string,
	duration time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executions[scenarioID+":"+status]++
	m.durations[scenarioID] = append(m.durations[scenarioID], duration)
}

func (m *InMemoryMetrics) RecordAssertion(
	scenarioID, assertionType string,
	passed bool,
) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assertions[scenarioID+":"+assertionType+":"+outcome]++
}

func (m *InMemoryMetrics) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

func (m *InMemoryMetrics) SetActive(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = count
}

// ExecutionCount returns the count for a scenario+status
// combination.
func (m *InMemoryMetrics) ExecutionCount(scenarioID, status string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.executions[scenarioID+":"+status]
}

// AssertionCount returns how many times an assertion type on a
// scenario passed or failed.
func (m *InMemoryMetrics) AssertionCount(
	scenarioID, assertionType string,
	passed bool,
) int {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assertions[scenarioID+":"+assertionType+":"+outcome]
}

// Durations returns a copy of the recorded durations for a
// scenario.
func (m *InMemoryMetrics) Durations(scenarioID string) []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]time.Duration, len(m.durations[scenarioID]))
	copy(out, m.durations[scenarioID])
	return out
}

// StatusTotals sums executions per status across all
// scenarios.
func (m *InMemoryMetrics) StatusTotals() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := make(map[string]int)
	for key, n := range m.executions {
		totals[statusOf(key)] += n
	}
	return totals
}

// Scenarios returns the IDs that have recorded executions, in
// sorted order.
func (m *InMemoryMetrics) Scenarios() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.durations))
	for id := range m.durations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RunTotal returns the total number of runs.
func (m *InMemoryMetrics) RunTotal() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runTotal
}

// Active returns the current active scenarios gauge.
func (m *InMemoryMetrics) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// statusOf returns the text after the last colon of an
// execution key. Scenario IDs may themselves contain colons.
func statusOf(key string) string {
	return key[strings.LastIndexByte(key, ':')+1:]
}
