package identity

import "strings"

// Role identifies a user's role within their company
type Role int

const (
	RoleAdmin      Role = 1
	RoleManager    Role = 2
	RoleAccountant Role = 3
	RoleSales      Role = 4
	RoleViewer     Role = 5
)

var roleNames = map[Role]string{
	RoleAdmin:      "admin",
	RoleManager:    "manager",
	RoleAccountant: "accountant",
	RoleSales:      "sales",
	RoleViewer:     "viewer",
}

// AllRoles lists every defined role
var AllRoles = []Role{RoleAdmin, RoleManager, RoleAccountant, RoleSales, RoleViewer}

// String returns the role name, or "unknown"
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r is a defined role
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole resolves a role by name
func ParseRole(name string) (Role, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for r, n := range roleNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

// Roles is an allowlist of roles
type Roles []Role

// Contains reports whether r is in the list
func (rs Roles) Contains(r Role) bool {
	for _, candidate := range rs {
		if candidate == r {
			return true
		}
	}
	return false
}
