// Package publish computes the per-file publish/clear notification sets sent
// to the editor after a compilation pass.
package publish

import "slice-language-server/internal/diag"

// Batch is one round of diagnostic notifications. FileDiagnostics is keyed
// by absolute file path; an entry with an empty list is an explicit clear.
// Spanless diagnostics cannot be attached to a file and are delivered as
// standalone popups.
type Batch struct {
	FileDiagnostics map[string][]diag.Diagnostic
	Spanless        []diag.Diagnostic
}

// NewBatch returns an empty batch.
func NewBatch() Batch {
	return Batch{FileDiagnostics: make(map[string][]diag.Diagnostic)}
}

// Clear seeds an explicit empty entry for each file, so the editor drops any
// stale markers even when a file no longer has diagnostics.
func (b Batch) Clear(files ...string) {
	for _, file := range files {
		if _, ok := b.FileDiagnostics[file]; !ok {
			b.FileDiagnostics[file] = []diag.Diagnostic{}
		}
	}
}

// Add partitions diagnostics into the batch: spanned ones are grouped under
// the file their span names, spanless ones are collected for popup delivery.
func (b *Batch) Add(diags []diag.Diagnostic) {
	for _, d := range diags {
		if d.Span == nil {
			b.Spanless = append(b.Spanless, d)
			continue
		}
		b.FileDiagnostics[d.Span.File] = append(b.FileDiagnostics[d.Span.File], d)
	}
}

// Build is the full publisher pipeline for one compilation pass: seed a
// clear entry per compiled file, then group the diagnostics.
func Build(files []string, diags []diag.Diagnostic) Batch {
	batch := NewBatch()
	batch.Clear(files...)
	batch.Add(diags)
	return batch
}
