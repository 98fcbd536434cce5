package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slice-language-server/internal/diag"
	"slice-language-server/internal/source"
)

func spanned(file string, line int, message string) diag.Diagnostic {
	return diag.Diagnostic{
		Span: &source.FileSpan{
			File: file,
			Span: source.Span{
				Start: source.Location{Line: line, Col: 1},
				End:   source.Location{Line: line, Col: 10},
			},
		},
		Message: message,
	}
}

func TestBuildSeedsClearsForEveryFile(t *testing.T) {
	batch := Build([]string{"/ws/a.slice", "/ws/b.slice"}, nil)

	assert.Len(t, batch.FileDiagnostics, 2)
	assert.Empty(t, batch.FileDiagnostics["/ws/a.slice"])
	assert.Empty(t, batch.FileDiagnostics["/ws/b.slice"])
	assert.Empty(t, batch.Spanless)

	// The entries must exist even though they are empty: they are the
	// explicit clears sent to the editor.
	_, ok := batch.FileDiagnostics["/ws/a.slice"]
	assert.True(t, ok)
}

func TestBuildGroupsBySpanFile(t *testing.T) {
	diags := []diag.Diagnostic{
		spanned("/ws/a.slice", 3, "first"),
		spanned("/ws/b.slice", 1, "second"),
		spanned("/ws/a.slice", 7, "third"),
	}

	batch := Build([]string{"/ws/a.slice", "/ws/b.slice", "/ws/c.slice"}, diags)

	assert.Len(t, batch.FileDiagnostics["/ws/a.slice"], 2)
	assert.Len(t, batch.FileDiagnostics["/ws/b.slice"], 1)
	assert.Empty(t, batch.FileDiagnostics["/ws/c.slice"])
	assert.Equal(t, "first", batch.FileDiagnostics["/ws/a.slice"][0].Message)
	assert.Equal(t, "third", batch.FileDiagnostics["/ws/a.slice"][1].Message)
}

func TestBuildPartitionsSpanless(t *testing.T) {
	diags := []diag.Diagnostic{
		{Message: "no span here"},
		spanned("/ws/a.slice", 3, "spanned"),
	}

	batch := Build([]string{"/ws/a.slice"}, diags)

	assert.Len(t, batch.Spanless, 1)
	assert.Equal(t, "no span here", batch.Spanless[0].Message)
	assert.Len(t, batch.FileDiagnostics["/ws/a.slice"], 1)
}

// Diagnostics can name files outside the compiled set, e.g. a reference
// file pulled in from another directory. They still get an entry.
func TestAddCreatesEntriesForUnseededFiles(t *testing.T) {
	batch := Build([]string{"/ws/a.slice"}, []diag.Diagnostic{spanned("/other/x.slice", 1, "stray")})

	assert.Len(t, batch.FileDiagnostics, 2)
	assert.Len(t, batch.FileDiagnostics["/other/x.slice"], 1)
}

func TestClearDoesNotOverwriteDiagnostics(t *testing.T) {
	batch := NewBatch()
	batch.Add([]diag.Diagnostic{spanned("/ws/a.slice", 3, "kept")})
	batch.Clear("/ws/a.slice")

	assert.Len(t, batch.FileDiagnostics["/ws/a.slice"], 1)
}
