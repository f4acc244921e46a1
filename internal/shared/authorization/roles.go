// Package authorization defines the global user role model. Per-producer and
// per-state management rights are modeled as grant rows, not roles; see
// internal/domain/access.
package authorization

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

// IsAdmin reports whether the role is the global admin role, which supersedes
// all producer and state grants.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseUserRole parses a role string, defaulting to the regular user role for
// unknown values so a malformed claim can never escalate privileges.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
