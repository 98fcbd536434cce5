// Package session maintains the server-wide configuration and the ordered
// collection of configuration sets, and orchestrates which sets recompile
// when a file changes.
package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"slice-language-server/internal/config"
	"slice-language-server/internal/diag"
	"slice-language-server/internal/publish"
	"slice-language-server/internal/resolver"
	"slice-language-server/internal/slicec"
	"slice-language-server/internal/source"
)

// Fatal initialization errors: the session refuses to start without a
// workspace root and the path to the built-in Slice files.
var (
	ErrMissingWorkspaceRoot = errors.New("no workspace root was provided by the client")
	ErrMissingBuiltinPath   = errors.New("builtInSlicePath not found in initialization options")
)

// Session is the single mutable state of the language server. All access
// goes through its methods; each method acquires the session lock for its
// duration and returns computed notification batches so callers can deliver
// them after the lock is released.
type Session struct {
	mu       sync.Mutex
	compiler slicec.Compiler
	logger   *zap.Logger

	serverConfig config.ServerConfig
	sets         []*ConfigurationSet
}

// New creates a session with a single default configuration set.
func New(compiler slicec.Compiler, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		compiler: compiler,
		logger:   logger,
		sets:     []*ConfigurationSet{NewConfigurationSet(config.Default())},
	}
}

// Initialize installs the server-wide configuration from the initialize
// request and parses the optional per-set configuration list from the
// initialization options. Both the workspace root and the built-in Slice
// path are required; a missing one is a fatal startup error.
func (s *Session) Initialize(workspaceRoot string, initOptions any) error {
	if workspaceRoot == "" {
		return ErrMissingWorkspaceRoot
	}
	builtinPath, ok := config.LookupString(initOptions, "builtInSlicePath")
	if !ok || builtinPath == "" {
		return ErrMissingBuiltinPath
	}

	var sets []config.SliceConfig
	if raw, ok := config.LookupList(initOptions, "configuration"); ok {
		sets = config.ParseConfigurationSets(raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverConfig = config.ServerConfig{WorkspaceRoot: workspaceRoot, BuiltinSlicePath: builtinPath}
	s.replaceLocked(sets)
	return nil
}

// ReplaceConfigurations swaps the session's configuration sets for fresh,
// uncompiled sets built from cfgs. The previous sets are discarded in full.
func (s *Session) ReplaceConfigurations(cfgs []config.SliceConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(cfgs)
}

// ReplaceFromSettings re-parses the full configuration set list from a
// workspace/didChangeConfiguration settings blob. Absent or malformed
// settings yield the default single set.
func (s *Session) ReplaceFromSettings(settings any) {
	var cfgs []config.SliceConfig
	if raw, ok := config.LookupList(settings, "slice", "configurations"); ok {
		cfgs = config.ParseConfigurationSets(raw)
	}
	s.ReplaceConfigurations(cfgs)
}

// replaceLocked substitutes the default single-entry list when cfgs is
// empty, keeping the invariant that the session always has at least one set.
func (s *Session) replaceLocked(cfgs []config.SliceConfig) {
	sets := make([]*ConfigurationSet, 0, len(cfgs))
	for _, cfg := range cfgs {
		sets = append(sets, NewConfigurationSet(cfg))
	}
	if len(sets) == 0 {
		sets = append(sets, NewConfigurationSet(config.Default()))
	}
	s.sets = sets
}

// ServerConfig returns a copy of the server-wide configuration.
func (s *Session) ServerConfig() config.ServerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverConfig
}

// SetCount returns the number of configuration sets.
func (s *Session) SetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets)
}

// TrackedFiles returns the paths of every file tracked by any set. It is
// used to clear stale diagnostics before a reconfiguration replaces the
// sets wholesale.
func (s *Session) TrackedFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var paths []string
	for _, set := range s.sets {
		paths = append(paths, set.FilePaths()...)
	}
	return paths
}

// CompileAll unconditionally recompiles every configuration set and returns
// one publish batch per set. Configuration changes invalidate everything, so
// there is no cross-set deduplication here — unlike the scoped pass in
// HandleFileChange.
func (s *Session) CompileAll(ctx context.Context) []publish.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()

	batches := make([]publish.Batch, 0, len(s.sets))
	for _, set := range s.sets {
		diags := set.Recompile(ctx, s.serverConfig, s.compiler)
		s.logger.Debug("recompiled configuration set",
			zap.Strings("references", config.ResolveSearchPaths(s.serverConfig, set.Config)),
			zap.Int("diagnostics", len(diags)))
		batches = append(batches, publish.Build(set.FilePaths(), diags))
	}
	return batches
}

// HandleFileChange recompiles every configuration set whose resolved
// reference paths cover the changed file and computes the combined publish
// batch. Diagnostics collected across the affected sets are deduplicated,
// first occurrence winning. The second return is false when no set covers
// the file; nothing was recompiled in that case.
func (s *Session) HandleFileChange(ctx context.Context, path string) (publish.Batch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := publish.NewBatch()
	var collected []diag.Diagnostic
	affected := false

	for _, set := range s.sets {
		if !coversFile(config.ResolveSearchPaths(s.serverConfig, set.Config), path) {
			continue
		}
		affected = true
		collected = append(collected, set.Recompile(ctx, s.serverConfig, s.compiler)...)
		batch.Clear(set.FilePaths()...)
	}
	if !affected {
		return batch, false
	}

	batch.Add(diag.Dedup(collected))
	return batch, true
}

// coversFile reports whether the changed file equals one of the resolved
// reference paths or lies beneath one of them.
func coversFile(references []string, path string) bool {
	for _, ref := range references {
		if ref == path {
			return true
		}
		if strings.HasPrefix(path, strings.TrimSuffix(ref, string(filepath.Separator))+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Definition resolves a goto-definition query. The boolean reports whether
// any configuration set tracks the file; a tracked file with no entity under
// the cursor yields a nil span, which is a normal empty result.
func (s *Session) Definition(path string, loc source.Location) (*source.Span, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range s.sets {
		if file, ok := set.File(path); ok {
			return resolver.DefinitionSpan(file, loc), true
		}
	}
	return nil, false
}

// Hover resolves a hover query. The boolean reports whether the file is
// tracked; the string is empty when nothing is under the cursor.
func (s *Session) Hover(path string, loc source.Location) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range s.sets {
		if file, ok := set.File(path); ok {
			return resolver.HoverText(file, loc), true
		}
	}
	return "", false
}
