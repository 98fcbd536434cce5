package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSearchPaths(t *testing.T) {
	server := ServerConfig{WorkspaceRoot: "/ws", BuiltinSlicePath: "/builtins"}

	tests := []struct {
		name     string
		set      SliceConfig
		expected []string
	}{
		{
			name:     "empty paths fall back to workspace root",
			set:      SliceConfig{IncludeBuiltinTypes: true},
			expected: []string{"/ws", "/builtins"},
		},
		{
			name:     "empty paths without builtins",
			set:      SliceConfig{IncludeBuiltinTypes: false},
			expected: []string{"/ws"},
		},
		{
			name:     "relative paths are joined onto the root",
			set:      SliceConfig{Paths: []string{"slice", "vendored/slice"}},
			expected: []string{"/ws/slice", "/ws/vendored/slice"},
		},
		{
			name:     "absolute paths pass through unchanged",
			set:      SliceConfig{Paths: []string{"/other/slice"}},
			expected: []string{"/other/slice"},
		},
		{
			name:     "builtins are appended last",
			set:      SliceConfig{Paths: []string{"a", "/b"}, IncludeBuiltinTypes: true},
			expected: []string{"/ws/a", "/b", "/builtins"},
		},
		{
			name:     "duplicates are kept and order preserved",
			set:      SliceConfig{Paths: []string{"a", "a", "/b", "a"}},
			expected: []string{"/ws/a", "/ws/a", "/b", "/ws/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveSearchPaths(server, tt.set))
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Paths)
	assert.True(t, cfg.IncludeBuiltinTypes)
	assert.Nil(t, cfg.LintLevels)
}

func TestParseConfigurationSets(t *testing.T) {
	raw := []any{
		map[string]any{
			"paths":             []any{"slice", 42, "/abs"},
			"addWellKnownTypes": false,
			"lints":             map[string]any{"Deprecated": "allow", "bogus": 7},
		},
		map[string]any{},
		"not an object",
	}

	sets := ParseConfigurationSets(raw)
	assert.Len(t, sets, 3)

	assert.Equal(t, []string{"slice", "/abs"}, sets[0].Paths)
	assert.False(t, sets[0].IncludeBuiltinTypes)
	assert.Equal(t, map[string]string{"Deprecated": "allow"}, sets[0].LintLevels)

	// Absent fields default.
	assert.Empty(t, sets[1].Paths)
	assert.True(t, sets[1].IncludeBuiltinTypes)

	// Malformed entries degrade to the default configuration.
	assert.Equal(t, Default(), sets[2])
}

func TestLookupHelpers(t *testing.T) {
	blob := map[string]any{
		"slice": map[string]any{
			"configurations": []any{map[string]any{}},
			"builtInPath":    "/builtins",
		},
	}

	list, ok := LookupList(blob, "slice", "configurations")
	assert.True(t, ok)
	assert.Len(t, list, 1)

	_, ok = LookupList(blob, "slice", "missing")
	assert.False(t, ok)

	_, ok = LookupList(nil, "slice")
	assert.False(t, ok)

	s, ok := LookupString(blob, "slice", "builtInPath")
	assert.True(t, ok)
	assert.Equal(t, "/builtins", s)

	_, ok = LookupString(blob, "slice", "configurations")
	assert.False(t, ok)
}
