package report

import (
	"encoding/json"
	"io"

	"digital.vasic.evaluator/pkg/scenario"
)

// JSONReporter generates JSON reports from scenario results.
type JSONReporter struct {
	pretty bool
	strict bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability. strict decides
// whether an unexpected pass counts against the run.
func NewJSONReporter(pretty, strict bool) *JSONReporter {
	return &JSONReporter{pretty: pretty, strict: strict}
}

// GenerateReport creates a JSON report for a single scenario
// result.
func (r *JSONReporter) GenerateReport(
	result *scenario.Result,
) ([]byte, error) {
	return r.marshal(result)
}

// GenerateSummary creates a JSON summary of all scenario
// results.
func (r *JSONReporter) GenerateSummary(
	results []*scenario.Result,
) ([]byte, error) {
	return r.marshal(BuildSummary(results, r.strict))
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(
	w io.Writer,
	result *scenario.Result,
) error {
	return writeReport(w, r, result)
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
