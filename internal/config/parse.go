package config

// Parsing of the JSON-ish configuration blobs the client sends in
// initializationOptions and workspace/didChangeConfiguration. Malformed or
// absent fields degrade to defaults; parsing never fails.

// ParseConfigurationSets converts the user-supplied configuration list into
// one SliceConfig per entry. Entries that are not objects yield the default
// configuration.
func ParseConfigurationSets(raw []any) []SliceConfig {
	sets := make([]SliceConfig, 0, len(raw))
	for _, entry := range raw {
		sets = append(sets, parseSet(entry))
	}
	return sets
}

func parseSet(raw any) SliceConfig {
	set := Default()
	obj, ok := raw.(map[string]any)
	if !ok {
		return set
	}
	if paths, ok := obj["paths"].([]any); ok {
		for _, p := range paths {
			if s, ok := p.(string); ok {
				set.Paths = append(set.Paths, s)
			}
		}
	}
	if include, ok := obj["addWellKnownTypes"].(bool); ok {
		set.IncludeBuiltinTypes = include
	}
	if lints, ok := obj["lints"].(map[string]any); ok {
		for lint, level := range lints {
			if s, ok := level.(string); ok {
				if set.LintLevels == nil {
					set.LintLevels = make(map[string]string, len(lints))
				}
				set.LintLevels[lint] = s
			}
		}
	}
	return set
}

// LookupList walks nested objects by key and returns the array at the end of
// the path, if any. It is the tolerant accessor used for fields like
// settings.slice.configurations.
func LookupList(raw any, path ...string) ([]any, bool) {
	current := raw
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current = obj[key]
	}
	list, ok := current.([]any)
	return list, ok
}

// LookupString walks nested objects by key and returns the string at the end
// of the path, if any.
func LookupString(raw any, path ...string) (string, bool) {
	current := raw
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current = obj[key]
	}
	s, ok := current.(string)
	return s, ok
}
