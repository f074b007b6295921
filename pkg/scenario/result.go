package scenario

import (
	"time"

	"digital.vasic.evaluator/pkg/assertion"
)

// Status constants for scenario outcomes.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusPassed   = "passed"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
	StatusXFail    = "xfail"
	StatusXPass    = "xpass"
	StatusTimedOut = "timed_out"
	StatusError    = "error"
)

// Well-known output and value keys.
const (
	// TargetResult holds the operation's return value.
	TargetResult = "result"

	// TargetError holds the error kind name, or "" on success.
	TargetError = "error"

	// TargetOutput holds anything the operation wrote to its
	// output stream.
	TargetOutput = "output"
)

// Result captures the outcome of one scenario execution.
type Result struct {
	ScenarioID   ID     `json:"scenario_id"`
	ScenarioName string `json:"scenario_name"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	Marker Marker `json:"marker,omitempty"`
	Reason string `json:"reason,omitempty"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	Assertions []assertion.Result `json:"assertions"`

	// Outputs holds the stringified values that assertions
	// were evaluated against.
	Outputs map[string]string `json:"outputs"`

	// Error contains the message of an unexpected error that
	// prevented evaluation.
	Error string `json:"error,omitempty"`
}

// AllPassed returns true if every assertion in the result
// passed.
func (r *Result) AllPassed() bool {
	for _, a := range r.Assertions {
		if !a.Passed {
			return false
		}
	}
	return true
}

// IsFinal returns true if the status is a terminal state.
func (r *Result) IsFinal() bool {
	switch r.Status {
	case StatusPassed, StatusFailed, StatusSkipped,
		StatusXFail, StatusXPass, StatusTimedOut, StatusError:
		return true
	}
	return false
}

// IsSuccess reports whether the result should count as a
// success for the suite. Skipped and xfail results count as
// successes. An xpass counts as a success only when strict is
// false.
func (r *Result) IsSuccess(strict bool) bool {
	switch r.Status {
	case StatusPassed, StatusSkipped, StatusXFail:
		return true
	case StatusXPass:
		return !strict
	}
	return false
}

// Finish stamps the end time and duration.
func (r *Result) Finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}
