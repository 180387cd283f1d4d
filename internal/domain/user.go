package domain

import "time"

// Role identifies what a user may do in the system.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEngineer Role = "engineer"
	RoleManager  Role = "manager"
	RoleLeader   Role = "leader"
)

// KnownRole reports whether the value is one of the supported roles.
func KnownRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleEngineer, RoleManager, RoleLeader:
		return true
	}
	return false
}

// User is an account able to authenticate against the service.
// Accounts are never deleted; only the password hash is mutable.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Company      string
	Role         Role
	CreatedAt    time.Time
}
