package session

import (
	"context"
	"fmt"

	"slice-language-server/internal/ast"
	"slice-language-server/internal/config"
	"slice-language-server/internal/diag"
	"slice-language-server/internal/slicec"
)

// ConfigurationSet owns one compiled view of the workspace: the slice
// configuration it was built from, the files of the most recent successful
// compilation, and the diagnostics that compilation reported.
type ConfigurationSet struct {
	Config config.SliceConfig

	files       map[string]*ast.File
	diagnostics []diag.Diagnostic
}

// NewConfigurationSet creates an uncompiled set. The first compilation is
// triggered by the session, not by construction.
func NewConfigurationSet(cfg config.SliceConfig) *ConfigurationSet {
	return &ConfigurationSet{Config: cfg, files: make(map[string]*ast.File)}
}

// Recompile resolves the set's search paths, runs the compiler and replaces
// the compiled files and diagnostics with the result. The files and
// diagnostics are swapped together, never partially. When the compiler
// invocation itself fails the previous tree is left untouched and the
// failure is reported as a single spanless error diagnostic.
func (s *ConfigurationSet) Recompile(ctx context.Context, server config.ServerConfig, compiler slicec.Compiler) []diag.Diagnostic {
	opts := slicec.Options{
		References: config.ResolveSearchPaths(server, s.Config),
		LintLevels: s.Config.LintLevels,
	}

	state, err := compiler.Compile(ctx, opts)
	if err != nil {
		failure := diag.Diagnostic{
			Severity: diag.SeverityError,
			Message:  fmt.Sprintf("the Slice compiler could not be run: %v", err),
		}
		s.diagnostics = []diag.Diagnostic{failure}
		return s.diagnostics
	}

	s.files = state.Files
	s.diagnostics = slicec.RemapDiagnostics(state.Diagnostics, opts)
	return s.diagnostics
}

// File returns the compiled file for the given absolute path, if the set
// tracks it.
func (s *ConfigurationSet) File(path string) (*ast.File, bool) {
	file, ok := s.files[path]
	return file, ok
}

// FilePaths returns the paths of every file in the most recent compilation.
func (s *ConfigurationSet) FilePaths() []string {
	paths := make([]string, 0, len(s.files))
	for path := range s.files {
		paths = append(paths, path)
	}
	return paths
}

// Diagnostics returns the diagnostics of the most recent compilation.
func (s *ConfigurationSet) Diagnostics() []diag.Diagnostic {
	return s.diagnostics
}
