package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/fsorg/pkg/executor"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/arthur-debert/fsorg/pkg/ui/json"
	"github.com/arthur-debert/fsorg/pkg/ui/styles"
)

// Failure is one action that could not be carried out
type Failure struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Error       string `json:"error"`
}

// RunReport is what an executed run prints
type RunReport struct {
	RunID    string              `json:"run_id"`
	Stats    types.RunStatistics `json:"stats"`
	Failures []Failure           `json:"failures"`
}

// NewRunReport collects the failed outcomes of a run
func NewRunReport(runID string, stats types.RunStatistics, outcomes []executor.Outcome) RunReport {
	report := RunReport{RunID: runID, Stats: stats, Failures: []Failure{}}
	for _, o := range outcomes {
		if o.Status != executor.StatusFailed {
			continue
		}
		f := Failure{Source: o.Action.Source, Destination: o.Action.Destination}
		if o.Err != nil {
			f.Error = o.Err.Error()
		}
		report.Failures = append(report.Failures, f)
	}
	return report
}

// RenderRun writes the failed actions of a run followed by its summary.
// JSON output is a single object.
func RenderRun(w io.Writer, report RunReport, format Format) error {
	format = Resolve(format, w)
	if format == FormatJSON {
		r, err := json.New(w)
		if err != nil {
			return err
		}
		return r.RenderResult(report)
	}

	for _, f := range report.Failures {
		var line string
		if format == FormatTerminal {
			line = styles.Render("Errored", "✗ ") + styles.Render("FilePath", f.Source) +
				" " + styles.Render("Muted", f.Error)
		} else {
			line = fmt.Sprintf("Failed: %s -> %s: %s", f.Source, f.Destination, f.Error)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return RenderSummary(w, report.Stats, format)
}
