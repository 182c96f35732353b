package index

import (
	"strings"

	"pytoy/src/internal/model"
)

// comparisonOperators is in scan order; first match wins.
var comparisonOperators = []string{"==", ">=", "<=", "~=", "!="}

// ParseDependency turns one requires_dist entry into a Dependency, following the
// grammar:
//  1. truncate at the first ';' (environment marker) and '[' (extras), trim whitespace
//  2. if '(' is present, split name (before) from spec (between parens)
//  3. else scan for ==, >=, <=, ~=, != and split at the first match
//  4. else emit {name, "*"}
//
// Returns ok=false for an entry that reduces to an empty name.
func ParseDependency(raw string) (model.Dependency, bool) {
	s := raw
	if idx := strings.Index(s, ";"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, "["); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Dependency{}, false
	}

	if open := strings.Index(s, "("); open >= 0 {
		name := strings.TrimSpace(s[:open])
		closeIdx := strings.Index(s[open:], ")")
		spec := "*"
		if closeIdx >= 0 {
			spec = strings.TrimSpace(s[open+1 : open+closeIdx])
		}
		if spec == "" {
			spec = "*"
		}
		if name == "" {
			return model.Dependency{}, false
		}
		return model.Dependency{Name: name, VersionSpec: spec}, true
	}

	for _, op := range comparisonOperators {
		if idx := strings.Index(s, op); idx >= 0 {
			name := strings.TrimSpace(s[:idx])
			spec := strings.TrimSpace(s[idx:])
			if name == "" {
				return model.Dependency{}, false
			}
			return model.Dependency{Name: name, VersionSpec: spec}, true
		}
	}

	return model.Dependency{Name: strings.TrimSpace(s), VersionSpec: "*"}, true
}

// StripOperator strips a leading comparison operator (==, >=, <=, ~=, ^) from a
// manifest version_spec, returning the bare version the index path component
// needs. A spec of "*" or "" maps to the empty string, signalling "latest".
func StripOperator(spec string) string {
	s := strings.TrimSpace(spec)
	if s == "" || s == "*" {
		return ""
	}
	for _, op := range []string{"==", ">=", "<=", "~=", "^"} {
		if strings.HasPrefix(s, op) {
			return strings.TrimSpace(strings.TrimPrefix(s, op))
		}
	}
	return s
}
