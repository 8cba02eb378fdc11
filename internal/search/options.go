package search

import "strings"

// Query describes one search request.
type Query struct {
	// Text is the free-text query.
	Text string

	// Limit is the maximum number of results. Non-positive means none.
	Limit int

	// Scopes restricts results to files under these path prefixes.
	// Multiple scopes use OR logic. Empty means no restriction.
	Scopes []string
}

// NormalizeScope trims surrounding slashes and leading "./" from a scope.
func NormalizeScope(scope string) string {
	scope = strings.ReplaceAll(scope, "\\", "/")
	scope = strings.TrimPrefix(scope, "./")
	return strings.Trim(scope, "/")
}

// scopeMatcher returns a predicate over file paths. Scopes match on
// directory boundaries: "docs/api" matches "docs/api/x.md" but not
// "docs/api-v2/x.md". A scope naming a file matches that file.
func scopeMatcher(scopes []string) func(filePath string) bool {
	normalized := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if n := NormalizeScope(s); n != "" {
			normalized = append(normalized, n+"/")
		}
	}

	if len(normalized) == 0 {
		return func(string) bool { return true }
	}

	return func(filePath string) bool {
		p := NormalizeScope(filePath) + "/"
		for _, scope := range normalized {
			if strings.HasPrefix(p, scope) {
				return true
			}
		}
		return false
	}
}
