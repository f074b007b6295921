package report

import (
	"time"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/scenario"
)

func makeTestResults() []*scenario.Result {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []*scenario.Result{
		{
			ScenarioID:   "addition",
			ScenarioName: "adds two numbers",
			Status:       scenario.StatusPassed,
			StartTime:    start,
			Duration:     2 * time.Millisecond,
			Assertions: []assertion.Result{
				{Type: "equals", Passed: true, Message: "equals 4"},
				{Type: "no_error", Passed: true, Message: "no error"},
			},
		},
		{
			ScenarioID:   "subtraction-wrong-expectation",
			ScenarioName: "asserts a wrong difference",
			Status:       scenario.StatusXFail,
			Marker:       scenario.MarkerExpectedFailure,
			Reason:       "deliberately wrong expectation",
			Duration:     time.Millisecond,
			Assertions: []assertion.Result{
				{Type: "equals", Passed: false, Message: "expected 2, got 3"},
			},
		},
		{
			ScenarioID:   "power-pending",
			ScenarioName: "raises two to the third power",
			Status:       scenario.StatusSkipped,
			Marker:       scenario.MarkerSkip,
			Reason:       "Not yet implemented",
		},
	}
}
