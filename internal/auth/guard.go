package auth

// Requirement is the minimum credential an operation declares.
type Requirement int

const (
	// RequirementNone marks a public operation.
	RequirementNone Requirement = iota
	// RequirementAuthenticated requires any verified identity.
	RequirementAuthenticated
	// RequirementAdmin requires a verified identity holding RoleAdmin.
	RequirementAdmin
)

// String implements fmt.Stringer for log output.
func (r Requirement) String() string {
	switch r {
	case RequirementNone:
		return "none"
	case RequirementAuthenticated:
		return "authenticated"
	case RequirementAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Authorize checks a decoded identity (nil when the request carried no
// verified token) against an operation's requirement.
//
// A caller without any credential gets ErrUnauthorized; a caller with a valid
// but insufficient credential gets ErrForbidden. The distinction is part of
// the contract and must not be collapsed.
func Authorize(claims AuthClaims, requirement Requirement) error {
	switch requirement {
	case RequirementNone:
		return nil
	case RequirementAuthenticated:
		if claims == nil {
			return ErrUnauthorized
		}
		return nil
	case RequirementAdmin:
		if claims == nil {
			return ErrUnauthorized
		}
		if claims.Role() != RoleAdmin {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
