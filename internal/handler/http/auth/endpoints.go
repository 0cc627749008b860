package auth

import (
	"net/http"
	"strings"
)

// PublicEndpoints defines endpoints that don't require authentication.
// These endpoints are accessible without a valid JWT token.
//
// - /health, /ready, /live: orchestration probes
// - /metrics: Prometheus scraping
// - /swagger/: API documentation for developers
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
}

// readEndpoints are the history endpoints that are public when reads are not protected.
var readEndpoints = []string{
	"/players/",
	"/games/history",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Endpoints ending with '/' use prefix matching. Other endpoints match exactly,
// with an optional trailing slash.
//
//	IsPublicEndpoint("/health")        // true
//	IsPublicEndpoint("/health/")       // true
//	IsPublicEndpoint("/health/detail") // false
//	IsPublicEndpoint("/healthcheck")   // false
//	IsPublicEndpoint("/games")         // false
func IsPublicEndpoint(path string) bool {
	return matchesEndpoint(path, PublicEndpoints)
}

// IsReadEndpoint reports whether the request only reads game history.
func IsReadEndpoint(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	return matchesEndpoint(r.URL.Path, readEndpoints)
}

func matchesEndpoint(path string, endpoints []string) bool {
	for _, endpoint := range endpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
	}
	return false
}
