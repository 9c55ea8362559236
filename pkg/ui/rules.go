package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/fsorg/pkg/types"
	"github.com/arthur-debert/fsorg/pkg/ui/json"
	"github.com/arthur-debert/fsorg/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// RenderRules writes the rule list in precedence order
func RenderRules(w io.Writer, rules []types.Rule, format Format) error {
	switch Resolve(format, w) {
	case FormatJSON:
		r, err := json.New(w)
		if err != nil {
			return err
		}
		if rules == nil {
			rules = []types.Rule{}
		}
		return r.RenderResult(rules)
	case FormatTerminal:
		if len(rules) == 0 {
			_, err := fmt.Fprintln(w, styles.Render("Muted", "No rules defined"))
			return err
		}
		data := [][]string{{"#", "Pattern", "Destination"}}
		for i, rule := range rules {
			data = append(data, []string{
				fmt.Sprintf("%d", i+1),
				styles.Render("Pattern", rule.Pattern),
				rule.Destination,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, table)
		return err
	default:
		for _, rule := range rules {
			if _, err := fmt.Fprintf(w, "%s -> %s\n", rule.Pattern, rule.Destination); err != nil {
				return err
			}
		}
		return nil
	}
}
