// Package ui renders fsorg's reports: the end-of-run summary, the rule
// table, plan previews and errors. Every renderer supports terminal (rich),
// text (plain) and JSON output.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/ui/json"
	"github.com/arthur-debert/fsorg/pkg/ui/styles"
)

// RenderError writes err in the requested format. FsorgError details are
// listed below the message.
func RenderError(w io.Writer, err error, format Format) error {
	switch Resolve(format, w) {
	case FormatJSON:
		r, jerr := json.New(w)
		if jerr != nil {
			return jerr
		}
		return r.RenderError(err)
	case FormatTerminal:
		if _, werr := fmt.Fprintln(w, styles.Render("Error", "Error: ")+err.Error()); werr != nil {
			return werr
		}
		return writeDetails(w, err, func(s string) string { return styles.Render("ErrorDetail", s) })
	default:
		if _, werr := fmt.Fprintln(w, "Error: "+err.Error()); werr != nil {
			return werr
		}
		return writeDetails(w, err, func(s string) string { return "  " + s })
	}
}

func writeDetails(w io.Writer, err error, style func(string) string) error {
	details := errors.GetErrorDetails(err)
	for _, key := range sortedKeys(details) {
		if _, werr := fmt.Fprintln(w, style(fmt.Sprintf("%s: %v", key, details[key]))); werr != nil {
			return werr
		}
	}
	return nil
}
