// Package report renders scenario results as JSON, plain text
// and Markdown summaries.
package report

import (
	"io"

	"digital.vasic.evaluator/pkg/scenario"
)

// Reporter defines the interface for generating scenario
// reports.
type Reporter interface {
	// GenerateReport creates a report for a single scenario
	// result.
	GenerateReport(result *scenario.Result) ([]byte, error)

	// GenerateSummary creates a report covering all results of
	// a run.
	GenerateSummary(results []*scenario.Result) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, result *scenario.Result) error
}

// writeReport renders result with r and writes it to w.
func writeReport(
	w io.Writer,
	r Reporter,
	result *scenario.Result,
) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
