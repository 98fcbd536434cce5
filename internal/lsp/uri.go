package lsp

import (
	"path/filepath"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// sanitizedFilePath converts a document URI to a cleaned absolute file path.
// Non-file and malformed URIs yield false; callers degrade to a no-op
// response rather than erroring.
func sanitizedFilePath(docURI protocol.DocumentURI) (path string, ok bool) {
	raw := string(docURI)
	if !strings.HasPrefix(raw, "file://") {
		return "", false
	}
	// uri.URI.Filename panics on URIs it cannot parse.
	defer func() {
		if recover() != nil {
			path, ok = "", false
		}
	}()
	return filepath.Clean(uri.New(raw).Filename()), true
}

// fileURI converts an absolute path back to a document URI.
func fileURI(path string) protocol.DocumentURI {
	return protocol.DocumentURI(uri.File(path))
}
