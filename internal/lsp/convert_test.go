package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"

	"slice-language-server/internal/diag"
	"slice-language-server/internal/source"
)

func TestPositionConversionRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pos  protocol.Position
		loc  source.Location
	}{
		{name: "origin", pos: protocol.Position{Line: 0, Character: 0}, loc: source.Location{Line: 1, Col: 1}},
		{name: "interior", pos: protocol.Position{Line: 4, Character: 11}, loc: source.Location{Line: 5, Col: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.loc, toLocation(tt.pos))
			assert.Equal(t, tt.pos, toPosition(tt.loc))
		})
	}
}

func TestToPositionClampsUnderflow(t *testing.T) {
	// Defensive clamp: a zero-value location must not wrap to a huge uint32.
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, toPosition(source.Location{Line: 0, Col: 0}))
}

func TestToRange(t *testing.T) {
	span := source.Span{
		Start: source.Location{Line: 3, Col: 5},
		End:   source.Location{Line: 3, Col: 12},
	}
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 4},
		End:   protocol.Position{Line: 2, Character: 11},
	}, toRange(span))
}

func TestToProtocolDiagnostics(t *testing.T) {
	diags := []diag.Diagnostic{
		{
			Severity: diag.SeverityError,
			Code:     "E042",
			Message:  "bad things",
			Span: &source.FileSpan{
				File: "/ws/a.slice",
				Span: source.Span{
					Start: source.Location{Line: 2, Col: 1},
					End:   source.Location{Line: 2, Col: 4},
				},
			},
		},
		{Severity: diag.SeverityWarning, Message: "iffy things", Span: &source.FileSpan{File: "/ws/a.slice"}},
		{Severity: diag.SeverityNote, Message: "minor things", Span: &source.FileSpan{File: "/ws/a.slice"}},
	}

	out := toProtocolDiagnostics(diags)

	assert.Len(t, out, 3)
	assert.Equal(t, protocol.DiagnosticSeverityError, out[0].Severity)
	assert.Equal(t, "slice", out[0].Source)
	assert.Equal(t, "E042", out[0].Code)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 0},
		End:   protocol.Position{Line: 1, Character: 3},
	}, out[0].Range)

	assert.Equal(t, protocol.DiagnosticSeverityWarning, out[1].Severity)
	assert.Nil(t, out[1].Code, "diagnostics without a lint code publish none")
	assert.Equal(t, protocol.DiagnosticSeverityInformation, out[2].Severity)
}

func TestSanitizedFilePath(t *testing.T) {
	tests := []struct {
		name string
		uri  protocol.DocumentURI
		path string
		ok   bool
	}{
		{name: "plain file uri", uri: "file:///ws/a.slice", path: "/ws/a.slice", ok: true},
		{name: "escaped characters decode", uri: "file:///ws/with%20space.slice", path: "/ws/with space.slice", ok: true},
		{name: "redundant segments clean up", uri: "file:///ws/api/../a.slice", path: "/ws/a.slice", ok: true},
		{name: "non-file scheme rejected", uri: "untitled:Untitled-1", ok: false},
		{name: "http rejected", uri: "http://example.com/a.slice", ok: false},
		{name: "empty rejected", uri: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := sanitizedFilePath(tt.uri)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}

func TestFileURI(t *testing.T) {
	assert.Equal(t, protocol.DocumentURI("file:///ws/a.slice"), fileURI("/ws/a.slice"))
}
