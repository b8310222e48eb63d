package authz

import "strings"

// Role identifies one of the three console access tiers. A Role is fixed for
// the lifetime of a session; the zero value means "no role".
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RoleUser      Role = "USER"
)

// Roles lists every recognized role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleModerator, RoleUser}
}

// ParseRole normalizes raw into a known role. Unknown or empty input yields
// ok=false and the zero Role; callers must treat that as an unauthenticated
// subject, not an error.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleModerator:
		return RoleModerator, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the three recognized roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// HasRole reports whether r equals one of want. It is false for an invalid
// or absent role and false for an empty want list.
func HasRole(r Role, want ...Role) bool {
	if !r.Valid() {
		return false
	}
	for _, w := range want {
		if r == w {
			return true
		}
	}
	return false
}
