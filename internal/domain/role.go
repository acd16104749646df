package domain

import "fmt"

// Role enumerates the operator roles accepted by the front end.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// Landing paths per role.
const (
	AdminLandingPath = "/admin"
	StaffLandingPath = "/staff"
	LoginPath        = "/login"
)

// ParseRole maps a wire value onto the closed role set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// LandingPath returns the screen an identity with this role lands on.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return AdminLandingPath
	case RoleStaff:
		return StaffLandingPath
	default:
		return LoginPath
	}
}
