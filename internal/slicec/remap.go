package slicec

import (
	"strings"

	"slice-language-server/internal/diag"
)

// RemapDiagnostics applies the configured lint levels to raw compiler
// diagnostics: lints set to "allow" are dropped, "error" promotes, "warn"
// demotes. Hard errors carry no lint code and are never remapped. The result
// preserves input order and the inputs are not mutated.
func RemapDiagnostics(diags []diag.Diagnostic, opts Options) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Code == "" {
			out = append(out, d)
			continue
		}
		switch strings.ToLower(opts.LintLevels[d.Code]) {
		case "allow", "off":
			continue
		case "error":
			d.Severity = diag.SeverityError
		case "warn", "warning":
			d.Severity = diag.SeverityWarning
		}
		out = append(out, d)
	}
	return out
}
