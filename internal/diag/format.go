package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan, color.Bold)
)

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityError:
		return errorColor
	case SeverityWarning:
		return warningColor
	default:
		return noteColor
	}
}

// Format renders one diagnostic for terminal output:
// <path>:<line>:<col>: <severity>[<code>]: <message>
// The location prefix is omitted for spanless diagnostics.
func Format(d Diagnostic) string {
	label := severityColor(d.Severity).Sprint(d.Severity.String())
	if d.Code != "" {
		label += fmt.Sprintf(" [%s]", d.Code)
	}
	if d.Span == nil {
		return fmt.Sprintf("%s: %s", label, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Span.File, d.Span.Start.Line, d.Span.Start.Col, label, d.Message)
}

// Fprint writes every diagnostic to w, one per line, and returns the number
// of errors encountered.
func Fprint(w io.Writer, diags []Diagnostic) int {
	errors := 0
	for _, d := range diags {
		if d.Severity == SeverityError {
			errors++
		}
		fmt.Fprintln(w, Format(d))
	}
	return errors
}
