package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles an authenticated user can hold.
// Roles are assigned by an out-of-band provisioning process and are
// immutable for the lifetime of a session.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEngineer Role = "engineer"
	RoleObserver Role = "observer"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleEngineer, RoleObserver:
		return true
	}
	return false
}

// User represents an account that can author defects and comments.
// Stored in the users table.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
