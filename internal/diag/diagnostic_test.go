package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slice-language-server/internal/source"
)

func spanAt(file string, line int) *source.FileSpan {
	return &source.FileSpan{
		File: file,
		Span: source.Span{
			Start: source.Location{Line: line, Col: 1},
			End:   source.Location{Line: line, Col: 10},
		},
	}
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name     string
		input    []Diagnostic
		expected []string // surviving messages, in order
	}{
		{
			name: "identical span and message collapse",
			input: []Diagnostic{
				{Span: spanAt("/ws/a.slice", 3), Message: "x"},
				{Span: spanAt("/ws/a.slice", 3), Message: "x"},
			},
			expected: []string{"x"},
		},
		{
			name: "different message survives",
			input: []Diagnostic{
				{Span: spanAt("/ws/a.slice", 3), Message: "x"},
				{Span: spanAt("/ws/a.slice", 3), Message: "y"},
			},
			expected: []string{"x", "y"},
		},
		{
			name: "different file survives",
			input: []Diagnostic{
				{Span: spanAt("/ws/a.slice", 3), Message: "x"},
				{Span: spanAt("/ws/b.slice", 3), Message: "x"},
			},
			expected: []string{"x", "x"},
		},
		{
			name: "duplicates need not be adjacent",
			input: []Diagnostic{
				{Span: spanAt("/ws/a.slice", 3), Message: "x"},
				{Span: spanAt("/ws/a.slice", 5), Message: "y"},
				{Span: spanAt("/ws/a.slice", 3), Message: "x"},
			},
			expected: []string{"x", "y"},
		},
		{
			name: "spanless duplicates collapse",
			input: []Diagnostic{
				{Message: "compiler exploded"},
				{Message: "compiler exploded"},
			},
			expected: []string{"compiler exploded"},
		},
		{
			name: "spanless and spanned are distinct",
			input: []Diagnostic{
				{Message: "x"},
				{Span: spanAt("/ws/a.slice", 3), Message: "x"},
			},
			expected: []string{"x", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Dedup(tt.input)
			messages := make([]string, 0, len(result))
			for _, d := range result {
				messages = append(messages, d.Message)
			}
			assert.Equal(t, tt.expected, messages)
		})
	}
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	first := Diagnostic{Span: spanAt("/ws/a.slice", 3), Severity: SeverityWarning, Code: "W1", Message: "x"}
	second := Diagnostic{Span: spanAt("/ws/a.slice", 3), Severity: SeverityError, Code: "E1", Message: "x"}

	result := Dedup([]Diagnostic{first, second})
	assert.Len(t, result, 1)
	assert.Equal(t, first, result[0])
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "note", SeverityNote.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
