// File: strata/helper.go
package strata

import "strings"

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist. If a segment exists
// but is not a map, it is replaced by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if !exists {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
			continue
		}

		if nextMap, isMap := next.(map[string]any); isMap {
			current = nextMap
		} else {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
		}
	}

	current[segments[len(segments)-1]] = value
}

// isValidKeySegment checks if a single path segment is a valid bare key:
// ASCII letters, digits, underscores, and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'

		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// splitPath splits a dotted path into segments, tolerating a trailing dot.
func splitPath(path string) []string {
	return strings.Split(strings.TrimSuffix(path, "."), ".")
}

// joinPath concatenates a dotted path prefix and a key.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
