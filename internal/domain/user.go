package domain

import "fmt"

// Role enumerates staff authority levels.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleOperator Role = "OPERATOR"
)

// OperatorType sub-classifies operators for ticket routing.
type OperatorType string

const (
	OperatorZookeeper     OperatorType = "ZOOKEEPER"
	OperatorVeterinarian  OperatorType = "VETERINARIAN"
	OperatorSecurityGuard OperatorType = "SECURITY_GUARD"
)

// User is a staff account. Animals, enclosures and tickets reference the
// user by foreign key; the user side holds no collections.
type User struct {
	ID           int64
	Name         string
	LastName     string
	Username     string
	PasswordHash string
	Role         Role
	OperatorType *OperatorType
}

// IsOperator reports whether the user holds the OPERATOR role.
func (u *User) IsOperator() bool {
	return u.Role == RoleOperator
}

// HasAuthority reports whether the user's role is one of the given roles.
func (u *User) HasAuthority(roles ...Role) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// Validate checks enum membership and the coupling invariant:
// a non-nil OperatorType requires Role == OPERATOR.
func (u *User) Validate() error {
	switch u.Role {
	case RoleAdmin, RoleManager, RoleOperator:
	default:
		return fmt.Errorf("unknown role %q", u.Role)
	}
	if u.OperatorType != nil {
		if !u.IsOperator() {
			return fmt.Errorf("operator type set on role %s", u.Role)
		}
		switch *u.OperatorType {
		case OperatorZookeeper, OperatorVeterinarian, OperatorSecurityGuard:
		default:
			return fmt.Errorf("unknown operator type %q", *u.OperatorType)
		}
	}
	return nil
}
