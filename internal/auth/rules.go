package auth

import (
	"strings"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
)

// RouteRule maps an HTTP method and path pattern to the authorities allowed
// to call it. An empty Method matches any verb. Patterns are segment based:
// "*" matches one segment, a trailing "**" matches the rest of the path.
// Public short-circuits authentication entirely; an empty Roles slice on a
// non-public rule means any authenticated caller.
type RouteRule struct {
	Method  string
	Pattern string
	Public  bool
	Roles   []domain.Role
}

// DefaultRules is the ordered authorization table. Evaluation is first match
// wins, so specific entries sit above the wildcards they override.
var DefaultRules = []RouteRule{
	{Pattern: "/api/auth/**", Public: true},

	{Pattern: "/api/user/**", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},

	{Method: "POST", Pattern: "/api/ticket/add", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{Method: "GET", Pattern: "/api/ticket/all", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{Method: "GET", Pattern: "/api/ticket/dashboard", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleOperator}},
	{Method: "GET", Pattern: "/api/ticket/my-tickets", Roles: []domain.Role{domain.RoleOperator}},
	{Method: "POST", Pattern: "/api/ticket/*/accept", Roles: []domain.Role{domain.RoleOperator}},
	{Method: "POST", Pattern: "/api/ticket/*/complete", Roles: []domain.Role{domain.RoleOperator}},
	{Method: "PUT", Pattern: "/api/ticket/**", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{Method: "DELETE", Pattern: "/api/ticket/**", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{Method: "GET", Pattern: "/api/ticket/*", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleOperator}},

	{Method: "GET", Pattern: "/api/animal/**", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleOperator}},
	{Method: "GET", Pattern: "/api/enclosure/**", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleOperator}},
	{Pattern: "/api/animal/**", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{Pattern: "/api/enclosure/**", Roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
}

// anyAuthenticated is the fallback when no rule matches: the caller must be
// authenticated but any role is acceptable.
var anyAuthenticated = RouteRule{}

// MatchRule returns the first rule matching the method and path, or the
// authenticated-any-role fallback.
func MatchRule(rules []RouteRule, method, path string) RouteRule {
	for _, rule := range rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule
		}
	}
	return anyAuthenticated
}

func matchPattern(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	for i, part := range patternParts {
		if part == "**" {
			return true
		}
		if i >= len(pathParts) {
			return false
		}
		if part != "*" && part != pathParts[i] {
			return false
		}
	}
	return len(patternParts) == len(pathParts)
}
