package walker

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ImagePatterns match the image formats the catalogue can reference.
var ImagePatterns = []string{"**/*.{png,jpg,jpeg,gif,svg,webp,avif}"}

// DefaultExcludes are directory and file names skipped during traversal.
var DefaultExcludes = []string{
	".git",
	".DS_Store",
	"Thumbs.db",
	"node_modules",
	"__MACOSX",
}

// shouldExclude checks whether a path element matches a default exclusion.
func shouldExclude(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath, then its base name, against each pattern.
// Patterns are case-insensitive so PNG and png both match.
func matchesAny(relPath string, patterns []string) bool {
	normalized := strings.ToLower(relPath)
	base := path.Base(normalized)

	for _, pattern := range patterns {
		pattern = strings.ToLower(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
