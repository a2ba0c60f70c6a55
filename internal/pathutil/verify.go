// Package pathutil contains the path validation rule applied to paths
// before they are staged
package pathutil

import "strings"

// IsValid reports whether a path may be added to the index.
//
// A path is rejected if any of its components starts with a dot (which
// includes "." and ".."), or if any component is empty (leading slash,
// trailing slash, or a double slash). The rule is deliberately strict:
// even names like ".gitignore" are rejected.
func IsValid(path string) bool {
	if path == "" {
		return false
	}
	for _, component := range strings.Split(path, "/") {
		if component == "" {
			return false
		}
		if component[0] == '.' {
			return false
		}
	}
	return true
}
