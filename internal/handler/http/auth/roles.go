package auth

import "strings"

// Role constants define the available user roles in the system.
// These roles are used in JWT claims and permission checks.
const (
	// RoleRecorder may record finished games and read history.
	// Game servers are issued tokens with this role.
	RoleRecorder = "recorder"
	// RoleReader may only read history
	RoleReader = "reader"
)

// Permission defines the allowed operations for a role.
type Permission struct {
	// AllowedMethods specifies which HTTP methods this role can use
	AllowedMethods []string

	// AllowedPaths specifies which URL paths this role can access.
	// "/games/*" matches /games and everything below it.
	AllowedPaths []string
}

// RolePermissions maps each role to its allowed permissions.
var RolePermissions = map[string]Permission{
	RoleRecorder: {
		AllowedMethods: []string{"GET", "HEAD", "POST"},
		AllowedPaths:   []string{"/games/*", "/players/*"},
	},
	RoleReader: {
		AllowedMethods: []string{"GET", "HEAD"},
		AllowedPaths:   []string{"/games/history", "/players/*"},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Returns false if the role doesn't exist or lacks permission.
//
//	checkRolePermission("recorder", "POST", "/games")         // true
//	checkRolePermission("reader", "GET", "/players/p1/games") // true
//	checkRolePermission("reader", "POST", "/games")           // false
//	checkRolePermission("", "GET", "/games/history")          // false
func checkRolePermission(role, method, path string) bool {
	if role == "" {
		return false
	}

	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	methodAllowed := false
	for _, allowedMethod := range perm.AllowedMethods {
		if allowedMethod == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
// Patterns ending with "/*" match the prefix itself and everything below it.
// Other patterns match exactly.
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}

		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}

		if path == pattern {
			return true
		}
	}
	return false
}
