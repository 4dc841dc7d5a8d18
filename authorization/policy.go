package authorization

import (
	"strings"

	"github.com/casbin/casbin"

	"rental_frontend/domain"
)

const anyRole = "*"

// RolePolicy is the page to role table loaded from the casbin model and
// policy files. A route open to several roles has one line per role.
type RolePolicy struct {
	enforcer *casbin.Enforcer
}

func NewRolePolicy(modelPath, policyPath string) (*RolePolicy, error) {
	e, err := casbin.NewEnforcerSafe(modelPath, policyPath)
	if err != nil {
		return nil, err
	}
	e.EnableLog(false)
	return &RolePolicy{enforcer: e}, nil
}

func (p *RolePolicy) Guarded(route string) bool {
	return len(p.enforcer.GetFilteredPolicy(1, route)) > 0
}

// RequiredRoles is empty for routes open to any authenticated user.
func (p *RolePolicy) RequiredRoles(route string) []domain.Role {
	roles := []domain.Role{}
	for _, rule := range p.enforcer.GetFilteredPolicy(1, route) {
		if rule[0] == anyRole {
			return []domain.Role{}
		}
		roles = append(roles, domain.Role(rule[0]))
	}
	return roles
}

func (p *RolePolicy) Allows(role domain.Role, route string) bool {
	allowed, err := p.enforcer.EnforceSafe(string(role), route)
	return err == nil && allowed
}

// Navigation lists the parameterless routes role may open, in policy order.
func (p *RolePolicy) Navigation(role domain.Role) []string {
	routes := []string{}
	seen := map[string]bool{}
	for _, rule := range p.enforcer.GetPolicy() {
		route := rule[1]
		if strings.Contains(route, "{") || seen[route] {
			continue
		}
		seen[route] = true
		if p.Allows(role, route) {
			routes = append(routes, route)
		}
	}
	return routes
}
