package runner

import (
	"context"
	"testing"

	"digital.vasic.evaluator/pkg/scenario"
)

// RunTests runs each scenario as a subtest of t. Skipped
// scenarios call t.Skip, expected failures pass with a log
// line, and any result that is not a success under the
// runner's strictness fails the subtest.
func RunTests(
	t *testing.T,
	r *DefaultRunner,
	defs []*scenario.Definition,
) {
	t.Helper()
	for _, def := range defs {
		t.Run(string(def.ID), func(t *testing.T) {
			res, err := r.Run(context.Background(), def)
			if err != nil {
				t.Fatalf("run %s: %v", def.ID, err)
			}
			reportResult(t, res, r.Strict())
		})
	}
}

// testReporter is the subset of testing.TB used to report a
// scenario result.
type testReporter interface {
	Skip(args ...any)
	Logf(format string, args ...any)
	Errorf(format string, args ...any)
}

func reportResult(t testReporter, res *scenario.Result, strict bool) {
	switch res.Status {
	case scenario.StatusSkipped:
		t.Skip(res.Reason)
		return
	case scenario.StatusXFail:
		t.Logf("expected failure: %s", res.Reason)
		return
	}
	if res.IsSuccess(strict) {
		if res.Status == scenario.StatusXPass {
			t.Logf("unexpectedly passed: %s", res.Reason)
		}
		return
	}
	t.Errorf("%s: %s", res.ScenarioID, res.Status)
	if res.Error != "" {
		t.Errorf("  %s", res.Error)
	}
	for _, a := range res.Assertions {
		if !a.Passed {
			t.Errorf("  %s", a.Message)
		}
	}
}
