package lsp

import (
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"slice-language-server/internal/diag"
	"slice-language-server/internal/source"
)

// LSP positions are 0-based; compiler locations are 1-based. Column units
// are taken as-is, matching the reference client behavior.

func toLocation(pos protocol.Position) source.Location {
	return source.Location{Line: int(pos.Line) + 1, Col: int(pos.Character) + 1}
}

func toPosition(loc source.Location) protocol.Position {
	line := loc.Line - 1
	col := loc.Col - 1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}

func toRange(span source.Span) protocol.Range {
	return protocol.Range{Start: toPosition(span.Start), End: toPosition(span.End)}
}

func toSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

// toProtocolDiagnostics converts spanned diagnostics for publication.
// Spanless diagnostics must not reach this function; they are delivered as
// popups instead.
func toProtocolDiagnostics(diags []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		pd := protocol.Diagnostic{
			Severity: toSeverity(d.Severity),
			Source:   "slice",
			Message:  d.Message,
		}
		if d.Code != "" {
			pd.Code = d.Code
		}
		if d.Span != nil {
			pd.Range = toRange(d.Span.Span)
		}
		out = append(out, pd)
	}
	return out
}

func unmarshalParams(req jsonrpc2.Request, v any) error {
	if len(req.Params()) == 0 {
		return jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%s: missing params", req.Method())
	}
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%s: %v", req.Method(), err)
	}
	return nil
}
