package auth

import "fmt"

// Role is the closed set of account categories, fixed at registration.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleCompany  Role = "company"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleEmployee, RoleCompany:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleCompany
}

func (r Role) String() string { return string(r) }
