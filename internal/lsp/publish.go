package lsp

import (
	"context"
	"sort"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"slice-language-server/internal/diag"
	"slice-language-server/internal/publish"
)

// publishBatch delivers one batch of notifications: a publishDiagnostics per
// file (empty lists clear stale markers) and a showMessage popup per
// spanless diagnostic. Files are sent in path order so deliveries are
// deterministic.
func (s *Server) publishBatch(ctx context.Context, batch publish.Batch) {
	paths := make([]string, 0, len(batch.FileDiagnostics))
	for path := range batch.FileDiagnostics {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		params := &protocol.PublishDiagnosticsParams{
			URI:         fileURI(path),
			Diagnostics: toProtocolDiagnostics(batch.FileDiagnostics[path]),
		}
		if err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, params); err != nil {
			s.logger.Warn("failed to publish diagnostics", zap.String("path", path), zap.Error(err))
		}
	}

	for _, d := range batch.Spanless {
		s.showPopup(ctx, d)
	}
}

// showPopup surfaces a diagnostic that has no file location.
func (s *Server) showPopup(ctx context.Context, d diag.Diagnostic) {
	typ := protocol.MessageTypeWarning
	if d.Severity == diag.SeverityError {
		typ = protocol.MessageTypeError
	}
	params := &protocol.ShowMessageParams{Type: typ, Message: d.Message}
	if err := s.conn.Notify(ctx, protocol.MethodWindowShowMessage, params); err != nil {
		s.logger.Warn("failed to show message", zap.Error(err))
	}
}

// newBatchClearing builds a batch that only clears the given files.
func newBatchClearing(files []string) publish.Batch {
	batch := publish.NewBatch()
	batch.Clear(files...)
	return batch
}
