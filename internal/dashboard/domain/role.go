package domain

// Role is the closed set of account roles. Access checks go through
// Satisfies rather than string comparison so the admin override lives in
// exactly one place.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a stored or requested label to a Role. Unknown labels
// report ok=false; an empty label defaults to RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser, "":
		return RoleUser, true
	default:
		return RoleUser, false
	}
}

// Satisfies reports whether r meets the required role. Admin satisfies any
// requirement; every role satisfies itself.
func (r Role) Satisfies(required Role) bool {
	return r == required || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
