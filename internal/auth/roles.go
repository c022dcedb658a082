package auth

// UserRole is the role carried by an account and its tokens.
type UserRole = string

const (
	// RoleAdmin may read and mutate every record type.
	RoleAdmin UserRole = "ADMIN"
	// RoleEmployee may read records but not mutate them.
	RoleEmployee UserRole = "EMPLOYEE"
)

// IsValidRole checks the role is one of the predefined values.
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole.
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}

// GetAllRoles returns the predefined roles.
func GetAllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleEmployee}
}
