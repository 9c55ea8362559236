package ui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/arthur-debert/fsorg/pkg/journal"
	"github.com/arthur-debert/fsorg/pkg/ui/json"
	"github.com/arthur-debert/fsorg/pkg/ui/styles"
	"github.com/pterm/pterm"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// RenderRuns writes journaled runs, newest first
func RenderRuns(w io.Writer, runs []journal.Run, format Format) error {
	switch Resolve(format, w) {
	case FormatJSON:
		r, err := json.New(w)
		if err != nil {
			return err
		}
		if runs == nil {
			runs = []journal.Run{}
		}
		return r.RenderResult(runs)
	case FormatTerminal:
		if len(runs) == 0 {
			_, err := fmt.Fprintln(w, styles.Render("Muted", "No runs recorded"))
			return err
		}
		data := [][]string{{"Run", "Mode", "Started", "Moved", "Skipped", "Errors"}}
		for _, run := range runs {
			errored := strconv.Itoa(run.Stats.Errored)
			if run.Stats.Errored > 0 {
				errored = styles.Render("Errored", errored)
			}
			data = append(data, []string{
				shortID(run.ID),
				string(run.Mode),
				run.StartedAt.Local().Format(historyTimeLayout),
				strconv.Itoa(run.Stats.Moved),
				strconv.Itoa(run.Stats.Skipped),
				errored,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, table)
		return err
	default:
		for _, run := range runs {
			if _, err := fmt.Fprintln(w, runLine(run)); err != nil {
				return err
			}
		}
		return nil
	}
}

// RenderRunDetail writes one run and every move it recorded
func RenderRunDetail(w io.Writer, run journal.Run, moves []journal.Move, format Format) error {
	format = Resolve(format, w)
	if format == FormatJSON {
		r, err := json.New(w)
		if err != nil {
			return err
		}
		if moves == nil {
			moves = []journal.Move{}
		}
		return r.RenderResult(struct {
			journal.Run
			Moves []journal.Move `json:"moves"`
		}{run, moves})
	}

	header := runLine(run)
	if format == FormatTerminal {
		header = styles.Render("Header", header)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, m := range moves {
		var line string
		switch {
		case format == FormatTerminal && m.Error != "":
			line = styles.Render("Errored", "✗ ") + m.Source + " " + styles.Render("Muted", m.Error)
		case format == FormatTerminal:
			line = styles.Render("Moved", "✓ ") + m.Source + " -> " + styles.Render("FilePath", m.Destination)
		case m.Error != "":
			line = fmt.Sprintf("  %s %s -> %s: %s", m.Status, m.Source, m.Destination, m.Error)
		default:
			line = fmt.Sprintf("  %s %s -> %s (%s)", m.Status, m.Source, m.Destination, m.Method)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func runLine(run journal.Run) string {
	origin := run.Source
	if run.PlanFile != "" {
		origin = run.PlanFile
	}
	return fmt.Sprintf("%s %s %s %s moved=%d skipped=%d errored=%d",
		run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.Mode, origin,
		run.Stats.Moved, run.Stats.Skipped, run.Stats.Errored)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
