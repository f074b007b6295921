package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.evaluator/pkg/scenario"
)

func TestTextReporter_GenerateReport(t *testing.T) {
	results := makeTestResults()
	r := NewTextReporter(false)

	pass, err := r.GenerateReport(results[0])
	require.NoError(t, err)
	assert.Equal(t, "PASS  addition (2ms)\n", string(pass))

	xfail, err := r.GenerateReport(results[1])
	require.NoError(t, err)
	assert.Equal(t,
		"XFAIL subtraction-wrong-expectation (1ms)\n"+
			"      deliberately wrong expectation\n"+
			"      equals: expected 2, got 3\n",
		string(xfail),
	)

	skip, err := r.GenerateReport(results[2])
	require.NoError(t, err)
	assert.Equal(t,
		"SKIP  power-pending (0s)\n      Not yet implemented\n",
		string(skip),
	)
}

func TestTextReporter_ErrorAndUnknownStatus(t *testing.T) {
	r := NewTextReporter(false)

	out, err := r.GenerateReport(&scenario.Result{
		ScenarioID: "slow",
		Status:     scenario.StatusTimedOut,
		Error:      "scenario execution timed out after 5s",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"TIME  slow (0s)\n      scenario execution timed out after 5s\n",
		string(out),
	)

	out, err = r.GenerateReport(&scenario.Result{
		ScenarioID: "odd", Status: scenario.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING odd (0s)\n", string(out))
}

func TestTextReporter_GenerateSummary(t *testing.T) {
	out, err := NewTextReporter(true).GenerateSummary(makeTestResults())
	require.NoError(t, err)
	assert.Contains(t, string(out),
		"OK: 3 scenarios, 1 passed, 0 failed, 1 skipped, "+
			"1 xfail, 0 xpass, 0 errors in 3ms\n")
}

func TestTextReporter_GenerateSummary_StrictXPass(t *testing.T) {
	results := []*scenario.Result{
		{ScenarioID: "lucky", Status: scenario.StatusXPass},
	}

	lenient, err := NewTextReporter(false).GenerateSummary(results)
	require.NoError(t, err)
	assert.Contains(t, string(lenient), "\nOK: ")

	strict, err := NewTextReporter(true).GenerateSummary(results)
	require.NoError(t, err)
	assert.Contains(t, string(strict), "\nFAILED: ")
}

func TestTextReporter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t,
		NewTextReporter(false).WriteReport(&buf, makeTestResults()[0]),
	)
	assert.Equal(t, "PASS  addition (2ms)\n", buf.String())
}

func TestReporterInterface(t *testing.T) {
	var _ Reporter = NewJSONReporter(false, false)
	var _ Reporter = NewTextReporter(false)
}
