package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.evaluator/pkg/scenario"
)

// Summary aggregates the results of one suite run.
type Summary struct {
	ID            string            `json:"id"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Scenarios     []ScenarioSummary `json:"scenarios"`
	Total         int               `json:"total"`
	Passed        int               `json:"passed"`
	Failed        int               `json:"failed"`
	Skipped       int               `json:"skipped"`
	XFail         int               `json:"xfail"`
	XPass         int               `json:"xpass"`
	TimedOut      int               `json:"timed_out"`
	Errors        int               `json:"errors"`
	TotalDuration time.Duration     `json:"total_duration"`
	PassRate      float64           `json:"pass_rate"`
	Strict        bool              `json:"strict"`
	Success       bool              `json:"success"`
}

// ScenarioSummary represents a summary of a single scenario.
type ScenarioSummary struct {
	ScenarioID       scenario.ID   `json:"scenario_id"`
	ScenarioName     string        `json:"scenario_name"`
	Status           string        `json:"status"`
	Reason           string        `json:"reason,omitempty"`
	Duration         time.Duration `json:"duration"`
	AssertionsPassed int           `json:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total"`
}

// BuildSummary creates a summary from scenario results. The run
// is successful when every result is a success under strict.
// PassRate is the share of executed scenarios, skips excluded,
// that ended passed or xfail.
func BuildSummary(
	results []*scenario.Result,
	strict bool,
) *Summary {
	now := time.Now()
	summary := &Summary{
		ID:          fmt.Sprintf("summary_%s", now.Format("20060102_150405")),
		GeneratedAt: now,
		Scenarios:   make([]ScenarioSummary, 0, len(results)),
		Strict:      strict,
		Success:     true,
	}

	for _, r := range results {
		assertionsPassed := 0
		for _, a := range r.Assertions {
			if a.Passed {
				assertionsPassed++
			}
		}

		summary.Scenarios = append(summary.Scenarios, ScenarioSummary{
			ScenarioID:       r.ScenarioID,
			ScenarioName:     r.ScenarioName,
			Status:           r.Status,
			Reason:           r.Reason,
			Duration:         r.Duration,
			AssertionsPassed: assertionsPassed,
			AssertionsTotal:  len(r.Assertions),
		})
		summary.Total++
		summary.TotalDuration += r.Duration

		switch r.Status {
		case scenario.StatusPassed:
			summary.Passed++
		case scenario.StatusFailed:
			summary.Failed++
		case scenario.StatusSkipped:
			summary.Skipped++
		case scenario.StatusXFail:
			summary.XFail++
		case scenario.StatusXPass:
			summary.XPass++
		case scenario.StatusTimedOut:
			summary.TimedOut++
		default:
			summary.Errors++
		}
		if !r.IsSuccess(strict) {
			summary.Success = false
		}
	}

	if executed := summary.Total - summary.Skipped; executed > 0 {
		summary.PassRate = float64(summary.Passed+summary.XFail) /
			float64(executed)
	}

	return summary
}

// SaveSummary saves the summary to both JSON and Markdown files
// in the given output directory and points latest_summary.json
// and latest_summary.md at them.
func SaveSummary(summary *Summary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir, fmt.Sprintf("summary_%s.json", ts),
	)
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}

	mdPath := filepath.Join(
		outputDir, fmt.Sprintf("summary_%s.md", ts),
	)
	md := GenerateMarkdown(summary)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// GenerateMarkdown renders a summary as a Markdown document.
func GenerateMarkdown(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Evaluator Suite Summary\n\n")
	fmt.Fprintf(&sb, "**Summary ID:** %s\n\n", summary.ID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n",
		summary.GeneratedAt.Format(time.RFC3339))

	verdict := "PASSED"
	if !summary.Success {
		verdict = "FAILED"
	}
	fmt.Fprintf(&sb, "**Result:** %s", verdict)
	if summary.Strict {
		sb.WriteString(" (strict)")
	}
	sb.WriteString("\n\n")

	sb.WriteString("## Scenarios\n\n")
	sb.WriteString("| Scenario | Status | Duration | Assertions | Note |\n")
	sb.WriteString("|----------|--------|----------|------------|------|\n")
	for _, s := range summary.Scenarios {
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d | %s |\n",
			s.ScenarioID, strings.ToUpper(s.Status), s.Duration,
			s.AssertionsPassed, s.AssertionsTotal, s.Reason,
		)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	rows := []struct {
		name  string
		value int
	}{
		{"Total", summary.Total},
		{"Passed", summary.Passed},
		{"Failed", summary.Failed},
		{"Skipped", summary.Skipped},
		{"Expected failures", summary.XFail},
		{"Unexpected passes", summary.XPass},
		{"Timed out", summary.TimedOut},
		{"Errors", summary.Errors},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "| %s | %d |\n", row.name, row.value)
	}
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	return sb.String()
}
