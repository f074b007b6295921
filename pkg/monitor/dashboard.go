package monitor

import (
	"sort"
	"sync"
	"time"

	"digital.vasic.evaluator/pkg/scenario"
)

// Run states reported by the dashboard.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Dashboard tracks the live state of every scenario in a run.
type Dashboard struct {
	mu        sync.RWMutex
	runID     string
	startTime time.Time
	status    string
	scenarios map[scenario.ID]ScenarioState
}

// ScenarioState represents the current state of a scenario on
// the dashboard.
type ScenarioState struct {
	ID        scenario.ID   `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category,omitempty"`
	Status    string        `json:"status"`
	StartTime *time.Time    `json:"start_time,omitempty"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	XFail    int     `json:"xfail"`
	XPass    int     `json:"xpass"`
	Running  int     `json:"running"`
	Errors   int     `json:"errors"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// Snapshot is a point-in-time copy of the dashboard, ordered by
// scenario ID.
type Snapshot struct {
	RunID     string           `json:"run_id"`
	StartTime time.Time        `json:"start_time"`
	Status    string           `json:"status"`
	Scenarios []ScenarioState  `json:"scenarios"`
	Summary   DashboardSummary `json:"summary"`
}

// NewDashboard creates a new dashboard for the given run.
func NewDashboard(runID string) *Dashboard {
	return &Dashboard{
		runID:     runID,
		startTime: time.Now(),
		status:    RunRunning,
		scenarios: make(map[scenario.ID]ScenarioState),
	}
}

// UpdateFromEvent updates dashboard state from a scenario event.
func (d *Dashboard) UpdateFromEvent(event ScenarioEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	state, exists := d.scenarios[event.ScenarioID]
	if !exists {
		state = ScenarioState{
			ID:       event.ScenarioID,
			Name:     event.Name,
			Category: event.Category,
		}
	}

	if event.Type == EventStarted {
		state.Status = scenario.StatusRunning
		state.StartTime = &ts
	} else {
		state.Status = string(event.Type)
		state.EndTime = &ts
		state.Duration = event.Duration
		state.Message = event.Message
	}

	d.scenarios[event.ScenarioID] = state
}

// SetStatus sets the overall run status.
func (d *Dashboard) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}

// Snapshot returns a copy of the current dashboard state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := Snapshot{
		RunID:     d.runID,
		StartTime: d.startTime,
		Status:    d.status,
		Scenarios: make([]ScenarioState, 0, len(d.scenarios)),
	}
	for _, st := range d.scenarios {
		snap.Scenarios = append(snap.Scenarios, st)
	}
	sort.Slice(snap.Scenarios, func(i, j int) bool {
		return snap.Scenarios[i].ID < snap.Scenarios[j].ID
	})
	snap.Summary = summarize(snap.Scenarios, d.startTime)
	return snap
}

func summarize(
	states []ScenarioState,
	start time.Time,
) DashboardSummary {
	s := DashboardSummary{Total: len(states)}
	for _, st := range states {
		switch EventType(st.Status) {
		case EventPassed:
			s.Passed++
		case EventFailed:
			s.Failed++
		case EventSkipped:
			s.Skipped++
		case EventXFail:
			s.XFail++
		case EventXPass:
			s.XPass++
		case EventTimedOut, EventError:
			s.Errors++
		default:
			s.Running++
		}
	}
	if completed := s.Passed + s.Failed; completed > 0 {
		s.PassRate = float64(s.Passed) / float64(completed) * 100
	}
	s.Elapsed = time.Since(start).Round(time.Millisecond).String()
	return s
}

// BuildDashboard creates a Dashboard by replaying all events
// held by a collector.
func BuildDashboard(collector *EventCollector) *Dashboard {
	d := NewDashboard("snapshot")
	for _, event := range collector.Events() {
		d.UpdateFromEvent(event)
	}
	return d
}
