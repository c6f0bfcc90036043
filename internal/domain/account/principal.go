package account

import "strings"

const RoleAdmin = "admin"

// Principal is the authenticated caller attached to a request after token
// introspection.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	for _, candidate := range p.Roles {
		if strings.EqualFold(candidate, role) {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
