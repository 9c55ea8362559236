package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/arthur-debert/fsorg/pkg/ui/json"
	"github.com/arthur-debert/fsorg/pkg/ui/styles"
)

// SummaryRule separates the run output from the final counts
const SummaryRule = "***"

type summaryLine struct {
	label string
	value int
	style string
}

func summaryLines(stats types.RunStatistics) []summaryLine {
	return []summaryLine{
		{"Total files scanned", stats.Scanned, "Count"},
		{"Total files moved", stats.Moved, "Moved"},
		{"Total files skipped", stats.Skipped, "Skipped"},
		{"Total errors encountered", stats.Errored, "Errored"},
	}
}

// RenderSummary writes the end-of-run counts
func RenderSummary(w io.Writer, stats types.RunStatistics, format Format) error {
	switch Resolve(format, w) {
	case FormatJSON:
		r, err := json.New(w)
		if err != nil {
			return err
		}
		return r.RenderResult(stats)
	case FormatTerminal:
		if _, err := fmt.Fprintln(w, styles.Render("Rule", SummaryRule)); err != nil {
			return err
		}
		for _, line := range summaryLines(stats) {
			style := line.style
			if line.value == 0 {
				style = "Muted"
			}
			text := styles.Render("Label", line.label+":") + " " + styles.Render(style, strconv.Itoa(line.value))
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
		}
		return nil
	default:
		if _, err := fmt.Fprintln(w, SummaryRule); err != nil {
			return err
		}
		for _, line := range summaryLines(stats) {
			if _, err := fmt.Fprintf(w, "%s: %d\n", line.label, line.value); err != nil {
				return err
			}
		}
		return nil
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
