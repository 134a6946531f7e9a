// Package renderer prints a compiled ReportSpec to a terminal stream.
// Rendering is best-effort: a write failure is returned to the caller to
// log as a warning, but never fails the lint call itself.
package renderer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"phenolint/internal/report"
)

// source is the single input label every diagnostic is rendered against.
const source = "stdin"

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	helpColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Faint)
)

// Render writes spec to w in a compact, colorized single-diagnostic
// format: "severity[code] message", followed by one line per label.
func Render(w io.Writer, spec report.ReportSpec) error {
	bw := bufio.NewWriter(w)

	sevColor, sevText := severityStyle(spec.Severity)
	if _, err := fmt.Fprintf(bw, "%s%s %s\n", sevColor.Sprint(sevText), codeColor.Sprintf("[%s]", spec.Code), spec.Message); err != nil {
		return err
	}
	for _, label := range spec.Labels {
		style := "note"
		if label.Style == report.Primary {
			style = "here"
		}
		if _, err := fmt.Fprintf(bw, "  --> %s:%d:%d %s: %s\n", source, label.Range.Start, label.Range.End, style, label.Message); err != nil {
			return err
		}
	}
	for _, note := range spec.Notes {
		if _, err := fmt.Fprintf(bw, "  = note: %s\n", note); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func severityStyle(sev report.Severity) (*color.Color, string) {
	switch sev {
	case report.SeverityError:
		return errorColor, "error"
	case report.SeverityWarning:
		return warningColor, "warning"
	case report.SeverityHelp:
		return helpColor, "help"
	default:
		return errorColor, "error"
	}
}
