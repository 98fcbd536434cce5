// Package config holds the server-wide and per-set configuration records and
// the search-path resolution that feeds the external Slice compiler.
package config

import "path/filepath"

// ServerConfig holds configuration that affects the entire server. It is set
// once during initialize and shared read-only by every configuration set.
type ServerConfig struct {
	// WorkspaceRoot is the root path of the workspace; relative reference
	// directories are resolved against it.
	WorkspaceRoot string `yaml:"workspaceRoot" json:"workspaceRoot"`
	// BuiltinSlicePath is the path to the built-in Slice files
	// (WellKnownTypes and friends) bundled with the editor extension.
	BuiltinSlicePath string `yaml:"builtinSlicePath" json:"builtinSlicePath"`
}

// SliceConfig holds the configuration for a single compilation set.
type SliceConfig struct {
	// Paths are the reference directories passed to the compiler.
	Paths []string `yaml:"paths" json:"paths"`
	// IncludeBuiltinTypes controls whether the built-in Slice files are
	// appended as a final reference path.
	IncludeBuiltinTypes bool `yaml:"addWellKnownTypes" json:"addWellKnownTypes"`
	// LintLevels overrides the reported level of individual lints. Valid
	// levels are "allow", "warn" and "error".
	LintLevels map[string]string `yaml:"lints,omitempty" json:"lints,omitempty"`
}

// Default returns the configuration used when the client supplies none:
// no explicit reference directories, built-in types included.
func Default() SliceConfig {
	return SliceConfig{IncludeBuiltinTypes: true}
}

// ResolveSearchPaths computes the ordered reference paths handed to the
// compiler for one configuration set. Relative entries are joined onto the
// workspace root; an empty list falls back to the workspace root itself; the
// built-in path is appended last when enabled. Order is significant and
// duplicates are kept — the compiler consults paths in exactly this order.
func ResolveSearchPaths(server ServerConfig, set SliceConfig) []string {
	refs := make([]string, 0, len(set.Paths)+2)
	for _, p := range set.Paths {
		if filepath.IsAbs(p) {
			refs = append(refs, p)
		} else {
			refs = append(refs, filepath.Join(server.WorkspaceRoot, p))
		}
	}
	if len(refs) == 0 {
		refs = append(refs, server.WorkspaceRoot)
	}
	if set.IncludeBuiltinTypes {
		refs = append(refs, server.BuiltinSlicePath)
	}
	return refs
}
