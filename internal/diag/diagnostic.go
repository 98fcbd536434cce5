// Package diag defines the diagnostic model shared by the compiler adapter,
// the session layer and the publishers.
package diag

import "slice-language-server/internal/source"

// Severity is the reported level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityNote:    "note",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Diagnostic is a single compiler finding. Span is nil for diagnostics that
// are not attributable to a file location; those are surfaced as popups
// instead of inline markers. Code carries the lint name and is empty for
// hard errors.
type Diagnostic struct {
	Span     *source.FileSpan
	Severity Severity
	Code     string
	Message  string
}

type dedupKey struct {
	hasSpan bool
	file    string
	span    source.Span
	message string
}

func keyOf(d Diagnostic) dedupKey {
	key := dedupKey{message: d.Message}
	if d.Span != nil {
		key.hasSpan = true
		key.file = d.Span.File
		key.span = d.Span.Span
	}
	return key
}

// Dedup drops diagnostics that duplicate an earlier entry. Two diagnostics
// are duplicates when their spans (including the file) and messages are
// equal; the first occurrence survives and input order is otherwise kept.
func Dedup(diags []Diagnostic) []Diagnostic {
	seen := make(map[dedupKey]struct{}, len(diags))
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		key := keyOf(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}
