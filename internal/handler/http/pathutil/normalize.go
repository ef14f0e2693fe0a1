package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance (<1μs per operation).
var pathPatterns = []*PathPattern{
	// Story routes with a story_id segment
	{Pattern: regexp.MustCompile(`^/stories/[^/]+/similar$`), Template: "/stories/:story_id/similar"},
	{Pattern: regexp.MustCompile(`^/stories/[^/]+$`), Template: "/stories/:story_id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /stories/314159) to template format
// (e.g., /stories/:story_id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/stories/314159")          // "/stories/:story_id"
//	NormalizePath("/stories/314159/similar")  // "/stories/:story_id/similar"
//	NormalizePath("/stories")                 // "/stories" (unchanged)
//	NormalizePath("/healthz")                 // "/healthz" (unchanged)
//	NormalizePath("/metrics")                 // "/metrics" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/stories/314159?page=1")   // "/stories/:story_id"
//	NormalizePath("/stories/314159/")         // "/stories/:story_id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Static paths like /stories, /healthz, /metrics pass through unchanged
	return path
}
