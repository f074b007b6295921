package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.evaluator/pkg/scenario"
)

// statusTags are the fixed-width labels printed for each
// status.
var statusTags = map[string]string{
	scenario.StatusPassed:   "PASS ",
	scenario.StatusFailed:   "FAIL ",
	scenario.StatusSkipped:  "SKIP ",
	scenario.StatusXFail:    "XFAIL",
	scenario.StatusXPass:    "XPASS",
	scenario.StatusTimedOut: "TIME ",
	scenario.StatusError:    "ERROR",
}

// TextReporter writes one line per scenario in the style of a
// test runner, with failure details indented underneath.
type TextReporter struct {
	strict bool
}

// NewTextReporter creates a TextReporter.
func NewTextReporter(strict bool) *TextReporter {
	return &TextReporter{strict: strict}
}

// GenerateReport renders a single result.
func (r *TextReporter) GenerateReport(
	result *scenario.Result,
) ([]byte, error) {
	var sb strings.Builder

	tag, ok := statusTags[result.Status]
	if !ok {
		tag = strings.ToUpper(result.Status)
	}
	fmt.Fprintf(&sb, "%s %s (%v)\n",
		tag, result.ScenarioID,
		result.Duration.Round(time.Microsecond),
	)

	switch result.Status {
	case scenario.StatusSkipped, scenario.StatusXFail,
		scenario.StatusXPass:
		if result.Reason != "" {
			fmt.Fprintf(&sb, "      %s\n", result.Reason)
		}
	}
	if result.Error != "" {
		fmt.Fprintf(&sb, "      %s\n", result.Error)
	}
	if result.Status == scenario.StatusFailed ||
		result.Status == scenario.StatusXFail {
		for _, a := range result.Assertions {
			if !a.Passed {
				fmt.Fprintf(&sb, "      %s: %s\n", a.Type, a.Message)
			}
		}
	}
	return []byte(sb.String()), nil
}

// GenerateSummary renders every result followed by a totals
// line.
func (r *TextReporter) GenerateSummary(
	results []*scenario.Result,
) ([]byte, error) {
	var sb strings.Builder
	for _, res := range results {
		line, _ := r.GenerateReport(res)
		sb.Write(line)
	}

	s := BuildSummary(results, r.strict)
	verdict := "OK"
	if !s.Success {
		verdict = "FAILED"
	}
	fmt.Fprintf(&sb,
		"\n%s: %d scenarios, %d passed, %d failed, %d skipped, "+
			"%d xfail, %d xpass, %d errors in %v\n",
		verdict, s.Total, s.Passed, s.Failed, s.Skipped,
		s.XFail, s.XPass, s.Errors+s.TimedOut,
		s.TotalDuration.Round(time.Microsecond),
	)
	return []byte(sb.String()), nil
}

// WriteReport writes a single result line to w.
func (r *TextReporter) WriteReport(
	w io.Writer,
	result *scenario.Result,
) error {
	return writeReport(w, r, result)
}
