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
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/players/[^/]+/games$`), Template: "/players/:id/games"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// Player identifiers are replaced by a placeholder; static paths are returned unchanged.
//
//	NormalizePath("/players/alice/games")  // "/players/:id/games"
//	NormalizePath("/players/alice/games/") // "/players/:id/games"
//	NormalizePath("/games/history?c=x")    // "/games/history"
//	NormalizePath("/health")               // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
