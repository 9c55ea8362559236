package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fsorg/pkg/plan"
	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/arthur-debert/fsorg/pkg/ui/json"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// previewWidth is the word wrap used for terminal plan previews
const previewWidth = 100

// RenderPlan writes a preview of the planned moves
func RenderPlan(w io.Writer, p *types.Plan, format Format) error {
	switch Resolve(format, w) {
	case FormatJSON:
		r, err := json.New(w)
		if err != nil {
			return err
		}
		out := types.Plan{Actions: []types.Action{}}
		if p != nil {
			out.Stats = p.Stats
			if p.Actions != nil {
				out.Actions = p.Actions
			}
		}
		return r.RenderResult(out)
	case FormatTerminal:
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithColorProfile(termenv.ColorProfile()),
			glamour.WithWordWrap(previewWidth),
		)
		if err != nil {
			return err
		}
		rendered, err := renderer.Render(PlanMarkdown(p))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, rendered)
		return err
	default:
		return plan.Write(w, p)
	}
}

// PlanMarkdown renders the plan as a markdown table, one row per action
func PlanMarkdown(p *types.Plan) string {
	var b strings.Builder
	b.WriteString("# Planned moves\n\n")
	if p.Len() == 0 {
		b.WriteString("_Nothing to move._\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d file(s) will be moved.\n\n", p.Len())
	b.WriteString("| File | Destination |\n")
	b.WriteString("|------|-------------|\n")
	for _, a := range p.Actions {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(filepath.Base(a.Source)), escapeCell(filepath.Dir(a.Destination)))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
